package migrations

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

var (
	ErrDatabaseRequired   = errors.New("migrations: database is required")
	ErrSourceRequired     = errors.New("migrations: migration files are required")
	ErrDialectUnsupported = errors.New("migrations: dialect is not supported")
)

// Runner applies versioned SQL migrations (<version>_<name>.up.sql and
// .down.sql) to a Bun database. The database stays owned by the caller.
type Runner struct {
	db   *bun.DB
	fsys fs.FS
}

// NewRunner creates a runner for the migration files found at the root of fsys.
func NewRunner(db *bun.DB, fsys fs.FS) *Runner {
	return &Runner{db: db, fsys: fsys}
}

// Up applies every pending migration. Having nothing to apply is not an error.
func (r *Runner) Up(ctx context.Context) error {
	return r.run(ctx, func(m *migrate.Migrate) error { return m.Up() })
}

// Down reverts every applied migration.
func (r *Runner) Down(ctx context.Context) error {
	return r.run(ctx, func(m *migrate.Migrate) error { return m.Down() })
}

// Version reports the current schema version. ok is false when no migration
// has been applied yet.
func (r *Runner) Version(ctx context.Context) (version uint, dirty bool, ok bool, err error) {
	err = r.run(ctx, func(m *migrate.Migrate) error {
		v, d, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			return nil
		}
		if verr != nil {
			return verr
		}
		version, dirty, ok = v, d, true
		return nil
	})
	return version, dirty, ok, err
}

func (r *Runner) run(ctx context.Context, step func(*migrate.Migrate) error) error {
	if r == nil || r.db == nil {
		return ErrDatabaseRequired
	}
	if r.fsys == nil {
		return ErrSourceRequired
	}

	src, err := iofs.New(r.fsys, ".")
	if err != nil {
		return fmt.Errorf("migrations: open source: %w", err)
	}
	defer src.Close()

	driver, release, err := r.databaseDriver(ctx)
	if err != nil {
		return err
	}
	defer release()

	m, err := migrate.NewWithInstance("iofs", src, r.db.Dialect().Name().String(), driver)
	if err != nil {
		return fmt.Errorf("migrations: init: %w", err)
	}
	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// databaseDriver wraps the Bun connection pool without handing it over:
// closing the returned driver would close the caller's database.
func (r *Runner) databaseDriver(ctx context.Context) (database.Driver, func(), error) {
	switch r.db.Dialect().Name() {
	case dialect.SQLite:
		driver, err := sqlite3.WithInstance(r.db.DB, &sqlite3.Config{})
		if err != nil {
			return nil, nil, fmt.Errorf("migrations: sqlite driver: %w", err)
		}
		return driver, func() {}, nil
	case dialect.PG:
		conn, err := r.db.DB.Conn(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("migrations: acquire connection: %w", err)
		}
		driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{})
		if err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("migrations: postgres driver: %w", err)
		}
		return driver, func() { _ = driver.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrDialectUnsupported, r.db.Dialect().Name())
	}
}
