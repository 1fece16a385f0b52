package driver

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLDriver holds a single MySQL session with the same one-connection pin
// as PostgresDriver.
type MySQLDriver struct {
	dsn string
	db  *sql.DB
}

var _ Driver = (*MySQLDriver)(nil)

func NewMySQLDriver(dsn string) *MySQLDriver {
	return &MySQLDriver{dsn: dsn}
}

func (d *MySQLDriver) Name() string {
	return "mysql"
}

func (d *MySQLDriver) Connect(ctx context.Context) error {
	if err := d.open(); err != nil {
		return err
	}
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("mysql connect: %w", err)
	}
	return nil
}

func (d *MySQLDriver) Ping(ctx context.Context) error {
	if err := d.open(); err != nil {
		return err
	}
	return d.db.PingContext(ctx)
}

func (d *MySQLDriver) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	if err := d.open(); err != nil {
		return nil, err
	}
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (d *MySQLDriver) Exec(ctx context.Context, query string, args ...any) (int64, error) {
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

func (d *MySQLDriver) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

func (d *MySQLDriver) open() error {
	if d.db != nil {
		return nil
	}
	db, err := sql.Open("mysql", d.dsn)
	if err != nil {
		return err
	}
	pin(db)
	d.db = db
	return nil
}
