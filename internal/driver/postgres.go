package driver

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresDriver holds a single Postgres session. The pool underneath is
// pinned to one connection so BEGIN/COMMIT issued as plain statements apply
// to every subsequent call; see pin().
type PostgresDriver struct {
	dsn string
	db  *sql.DB
}

var _ Driver = (*PostgresDriver)(nil)

func NewPostgresDriver(dsn string) *PostgresDriver {
	return &PostgresDriver{dsn: dsn}
}

func (d *PostgresDriver) Name() string {
	return "postgres"
}

func (d *PostgresDriver) Connect(ctx context.Context) error {
	if err := d.open(); err != nil {
		return err
	}
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres connect: %w", err)
	}
	return nil
}

func (d *PostgresDriver) Ping(ctx context.Context) error {
	if err := d.open(); err != nil {
		return err
	}
	return d.db.PingContext(ctx)
}

func (d *PostgresDriver) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	if err := d.open(); err != nil {
		return nil, err
	}
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (d *PostgresDriver) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	if err := d.open(); err != nil {
		return -1, err
	}
	res, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return -1, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return -1, nil
	}
	return n, nil
}

func (d *PostgresDriver) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

func (d *PostgresDriver) open() error {
	if d.db != nil {
		return nil
	}
	db, err := sql.Open("postgres", d.dsn)
	if err != nil {
		return err
	}
	pin(db)
	d.db = db
	return nil
}

// pin restricts the pool to exactly one connection that is never recycled
// for being idle. Transaction state set by a bare BEGIN therefore persists
// until COMMIT/ROLLBACK, and concurrent callers queue on the pool rather
// than fanning out to fresh sessions.
func pin(db *sql.DB) {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(0)
	db.SetConnMaxLifetime(0)
}
