package configi18n

import (
	"embed"
	"io/fs"
)

//go:embed data/sql/migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "data/sql/migrations"

// GetMigrationsFS returns the embedded migration files for this package.
// Statements inside a file are separated by "---bun:split".
func GetMigrationsFS() embed.FS {
	return migrationsFS
}

// Migrations returns the migration files rooted at their directory, named
// <version>_<comment>.up.sql / .down.sql as golang-migrate expects.
func Migrations() (fs.FS, error) {
	return fs.Sub(migrationsFS, migrationsDir)
}
