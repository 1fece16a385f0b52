package engine

import (
	"errors"
	"fmt"
)

// ErrNoRows marks a batch item that executed cleanly but produced no data.
// The batch runner's success policy is "produced data", not "executed
// without error", so zero-row results are recorded as item failures.
var ErrNoRows = errors.New("query returned no rows")

// ConnError reports a failure to establish or verify the session.
type ConnError struct {
	Driver string
	Err    error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("connection failed (%s): %v", e.Driver, e.Err)
}

func (e *ConnError) Unwrap() error { return e.Err }

// QueryError reports a single statement execution failure.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %v", e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// TxError reports a transaction that was rolled back. Step is the index of
// the failing statement in submission order, or -1 when the failure came
// from BEGIN/COMMIT rather than a step.
type TxError struct {
	Step int
	Err  error
}

func (e *TxError) Error() string {
	return fmt.Sprintf("transaction failed: %v", e.Err)
}

func (e *TxError) Unwrap() error { return e.Err }
