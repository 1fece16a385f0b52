package driver

import (
	"context"
)

// Driver is the connection handle the engine orchestrates: one live session
// to a relational database. Implementations must pin themselves to a single
// underlying connection so that session state (an open transaction, session
// variables) survives across calls, and so that concurrent callers are
// serialized by the driver's own queuing rather than by this layer.
type Driver interface {
	// Name returns the driver name (e.g., "mysql", "postgres").
	Name() string

	// Connect establishes the session. Other methods connect lazily, so
	// calling Connect first is optional but surfaces dial errors early.
	Connect(ctx context.Context) error

	// Ping verifies the connection to the database.
	Ping(ctx context.Context) error

	// Query executes a row-returning statement and returns a Rows iterator.
	Query(ctx context.Context, query string, args ...any) (Rows, error)

	// Exec executes a statement that returns no rows and reports the number
	// of rows affected, or -1 when the backend does not say.
	Exec(ctx context.Context, query string, args ...any) (int64, error)

	// Close terminates the session. No further calls are valid afterwards.
	Close() error
}

// Rows iterates over query results. It mirrors the subset of *sql.Rows the
// engine needs, so fakes can stand in for a live session.
type Rows interface {
	// Columns returns the column names. Safe to call after Query returns.
	Columns() ([]string, error)

	// Next advances to the next row. Returns false when there are no more
	// rows or an error occurs.
	Next() bool

	// Scan copies the columns in the current row into the values pointed at
	// by dest. The number of values must match the number of columns.
	Scan(dest ...any) error

	// Err returns the error, if any, encountered during iteration.
	Err() error

	// Close closes the iterator and frees resources.
	Close() error
}
