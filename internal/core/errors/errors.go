package errors

import (
	"errors"
	"fmt"
)

// Domain errors - these represent pipeline-level failures
var (
	// Storage
	ErrSchemaCreation = errors.New("schema creation failed")
	ErrInsertFailed   = errors.New("ticket insert failed")
	ErrQueryFailed    = errors.New("ticket query failed")

	// Export
	ErrExportFailed = errors.New("export write failed")

	// Generic
	ErrNotFound = errors.New("resource not found")
	ErrInternal = errors.New("internal error")
)

// AppError wraps errors with the operation context the batch job reports
// before aborting. There is no partial-success mode: the first AppError
// terminates the run.
type AppError struct {
	Err     error  // The underlying error
	Message string // Human-readable message
	Code    string // Machine-readable error code
	Op      string // Operation that failed (e.g. "sqlite.InsertTickets")
}

func (e *AppError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps a storage-engine failure (connection, schema, query).
// Fatal: the caller aborts the run after releasing the storage handle.
func NewStorageError(op string, err error) *AppError {
	return &AppError{
		Err:     err,
		Message: "storage operation failed",
		Code:    "STORAGE_ERROR",
		Op:      op,
	}
}

// NewIOError wraps an export/filesystem failure. Fatal, reported to the caller.
func NewIOError(op, path string, err error) *AppError {
	return &AppError{
		Err:     err,
		Message: fmt.Sprintf("write to %s failed", path),
		Code:    "IO_ERROR",
		Op:      op,
	}
}

// IsStorageError reports whether err is (or wraps) a storage failure.
func IsStorageError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == "STORAGE_ERROR"
}

// IsIOError reports whether err is (or wraps) an export/filesystem failure.
func IsIOError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == "IO_ERROR"
}
