package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/senseandsay/internal/client/migrations"
	"github.com/dmitrijs2005/senseandsay/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/senseandsay/internal/filex"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

type Repositories struct {
	DB       *sql.DB
	Metadata metadata.Repository
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the SQLite file at path, creating its directory when
// needed, and migrates it.
func InitDatabase(ctx context.Context, path string) (*Repositories, error) {
	if _, err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &Repositories{
		DB:       db,
		Metadata: metadata.NewSQLiteRepository(db),
	}, nil
}
