package migrations

import "embed"

// FS contains the embedded progress schema
//
//go:embed *.sql
var FS embed.FS
