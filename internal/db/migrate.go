package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"todo_webapp/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migration is a single schema file. Every file is idempotent
// (CREATE ... IF NOT EXISTS) so they are re-applied on each start.
type Migration struct {
	Name string
	SQL  string
}

// Migrations returns the embedded schema files in lexical order.
func Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	res := make([]Migration, 0, len(names))
	for _, name := range names {
		b, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		res = append(res, Migration{Name: name, SQL: string(b)})
	}
	return res, nil
}

// EnsureSchema creates the todos table if it is absent.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	migs, err := Migrations()
	if err != nil {
		return err
	}
	for _, m := range migs {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.Name, err)
		}
		logger.Debug("migration applied", "name", m.Name)
	}
	return nil
}
