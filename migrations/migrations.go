// Package migrations embeds the versioned SQL schema so the binaries can
// migrate any database file they are pointed at.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
