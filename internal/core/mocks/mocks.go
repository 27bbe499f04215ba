package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/itops/support-analyzer/internal/core/domain"
	"github.com/itops/support-analyzer/internal/core/ports"
)

// MockTicketRepository is a mock implementation of ports.TicketRepository
type MockTicketRepository struct {
	mock.Mock
}

func NewMockTicketRepository() *MockTicketRepository {
	return &MockTicketRepository{}
}

func (m *MockTicketRepository) CreateSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTicketRepository) InsertTickets(ctx context.Context, tickets []*domain.Ticket) (int, error) {
	args := m.Called(ctx, tickets)
	return args.Int(0), args.Error(1)
}

func (m *MockTicketRepository) ListAll(ctx context.Context) ([]*domain.Ticket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Ticket), args.Error(1)
}

// MockSampleGenerator is a mock implementation of ports.SampleGenerator
type MockSampleGenerator struct {
	mock.Mock
}

func NewMockSampleGenerator() *MockSampleGenerator {
	return &MockSampleGenerator{}
}

func (m *MockSampleGenerator) Generate(n int, seed int64) []*domain.Ticket {
	args := m.Called(n, seed)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*domain.Ticket)
}

// MockExportService is a mock implementation of ports.ExportService
type MockExportService struct {
	mock.Mock
}

func NewMockExportService() *MockExportService {
	return &MockExportService{}
}

func (m *MockExportService) ExportJSON(snapshot *domain.MetricsSnapshot, tickets []*domain.Ticket, path string) error {
	args := m.Called(snapshot, tickets, path)
	return args.Error(0)
}

// MockNotificationSink is a mock implementation of ports.NotificationSink
type MockNotificationSink struct {
	mock.Mock
}

func NewMockNotificationSink() *MockNotificationSink {
	return &MockNotificationSink{}
}

func (m *MockNotificationSink) Send(ctx context.Context, record ports.NotificationRecord) (*domain.Acknowledgement, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Acknowledgement), args.Error(1)
}
