package migrations

import (
	"embed"
	"io/fs"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

// GetFS returns the migration files for a database driver.
func GetFS(driver string) fs.FS {
	sub, err := fs.Sub(files, driver)
	if err != nil {
		// Both embedded directories exist; an unknown driver fails at
		// connection time before migrations run.
		return files
	}
	return sub
}
