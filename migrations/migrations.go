// Package migrations embeds the SQL schema so the server and tests can
// apply it without locating files on disk.
package migrations

import "embed"

//go:embed *.up.sql
var FS embed.FS

// InitUp is the path of the bootstrap migration inside FS.
const InitUp = "000001_init.up.sql"
