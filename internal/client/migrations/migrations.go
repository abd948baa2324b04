// Package migrations embeds the schema migrations for the local
// credentials database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
