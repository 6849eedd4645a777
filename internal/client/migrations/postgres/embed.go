// Package postgres embeds the goose migrations of the remote Postgres store.
package postgres

import "embed"

//go:embed *.sql
var Migrations embed.FS
