// Package migrations embeds the journal database schema.
package migrations

import "embed"

// FS holds the SQL migrations, one directory per driver.
//
//go:embed sqlite/*.sql
var FS embed.FS
