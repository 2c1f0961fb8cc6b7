// Package migrations provides embedded SQL migration files.
// They are applied by the repository layer at startup via goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
