package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sql-conductor/internal/driver"
)

// fakeConn is a scripted stand-in for a live session. Statements are
// matched by text; anything unscripted succeeds with one affected row so
// BEGIN/COMMIT/ROLLBACK flow through without ceremony.
type fakeConn struct {
	mu       sync.Mutex
	executed []string
	script   map[string]fakeOutcome
}

type fakeOutcome struct {
	columns  []string
	rows     [][]any
	affected int64
	err      error
	delay    time.Duration
	panics   bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{script: make(map[string]fakeOutcome)}
}

func (c *fakeConn) on(text string, out fakeOutcome) {
	c.script[text] = out
}

func (c *fakeConn) log(text string) fakeOutcome {
	c.mu.Lock()
	c.executed = append(c.executed, text)
	out := c.script[text]
	c.mu.Unlock()
	if out.delay > 0 {
		time.Sleep(out.delay)
	}
	if out.panics {
		panic("scripted panic: " + text)
	}
	return out
}

func (c *fakeConn) statements() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.executed...)
}

func (c *fakeConn) Name() string                  { return "fake" }
func (c *fakeConn) Connect(context.Context) error { return nil }
func (c *fakeConn) Ping(context.Context) error    { return nil }
func (c *fakeConn) Close() error                  { return nil }

func (c *fakeConn) Query(_ context.Context, text string, _ ...any) (driver.Rows, error) {
	out := c.log(text)
	if out.err != nil {
		return nil, out.err
	}
	return &fakeRows{columns: out.columns, rows: out.rows, idx: -1}, nil
}

func (c *fakeConn) Exec(_ context.Context, text string, _ ...any) (int64, error) {
	out := c.log(text)
	if out.err != nil {
		return -1, out.err
	}
	if _, scripted := c.script[text]; !scripted {
		return 1, nil
	}
	return out.affected, nil
}

type fakeRows struct {
	columns []string
	rows    [][]any
	idx     int
	closed  bool
}

func (r *fakeRows) Columns() ([]string, error) { return r.columns, nil }
func (r *fakeRows) Err() error                 { return nil }
func (r *fakeRows) Close() error               { r.closed = true; return nil }

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx < len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.idx < 0 || r.idx >= len(r.rows) {
		return fmt.Errorf("scan called without next")
	}
	row := r.rows[r.idx]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: want %d dests, got %d", len(row), len(dest))
	}
	for i, v := range row {
		p, ok := dest[i].(*any)
		if !ok {
			return fmt.Errorf("scan: dest %d is %T, want *any", i, dest[i])
		}
		*p = v
	}
	return nil
}
