// Package migrations embeds the SQL schema migrations for the bookstore
// database.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
