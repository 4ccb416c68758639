// Package migrations embeds the PostgreSQL schema migrations run by goose.
package migrations

import "embed"

// FS holds the numbered goose migration files.
//
//go:embed *.sql
var FS embed.FS
