// Package migrations embeds the schema for every supported database driver
// and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql mysql/*.sql
var Migrations embed.FS

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// dialects maps a database/sql driver name to the goose dialect and the
// embedded directory holding its migrations.
var dialects = map[string]struct {
	dialect string
	dir     string
}{
	"pgx":   {dialect: "pgx", dir: "postgres"},
	"mysql": {dialect: "mysql", dir: "mysql"},
}

// Run applies all pending migrations for driver.
func Run(ctx context.Context, db *sql.DB, driver string) error {
	d, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect(d.dialect); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, d.dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
