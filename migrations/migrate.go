// Package migrations embeds the SQL schema for every supported backend and
// applies it with goose.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var embedMigrations embed.FS

// goose keeps its base FS and dialect in package-level state.
var gooseMu sync.Mutex

// gooseDialects maps a configured driver name to the goose dialect and the
// embedded directory holding its migrations.
var gooseDialects = map[string]struct {
	dialect string
	dir     string
}{
	"sqlite":   {dialect: "sqlite3", dir: "sqlite"},
	"postgres": {dialect: "postgres", dir: "postgres"},
}

// Migrate applies all pending migrations for driver ("sqlite" or "postgres")
// to db.
func Migrate(db *sql.DB, driver string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	target, ok := gooseDialects[driver]
	if !ok {
		return fmt.Errorf("migration error: unsupported driver %q", driver)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(target.dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, target.dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
