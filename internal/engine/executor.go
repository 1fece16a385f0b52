package engine

import (
	"context"
	"log/slog"

	"sql-conductor/internal/driver"
)

// Executor runs one statement at a time against the connection handle and
// normalizes the outcome into a Result. It emits exactly one log event per
// attempt: info (blue) on success, warn (yellow) on failure, with the
// statement text as the message.
type Executor struct {
	conn driver.Driver
	log  *slog.Logger
	sink ExportSink
}

// NewExecutor builds an executor over conn. sink may be nil, in which case
// results never carry an export hook.
func NewExecutor(conn driver.Driver, log *slog.Logger, sink ExportSink) *Executor {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Executor{conn: conn, log: log, sink: sink}
}

// Execute runs q and returns its normalized result. Failures from the
// connection handle are wrapped in *QueryError.
func (e *Executor) Execute(ctx context.Context, q Query) (*Result, error) {
	tag := CommandTag(q.Text)

	var res *Result
	var err error
	if returnsRows(tag) {
		res, err = e.executeQuery(ctx, tag, q)
	} else {
		res, err = e.executeExec(ctx, tag, q)
	}
	if err != nil {
		e.log.Warn(q.Text, "error", err)
		return nil, &QueryError{Query: q.Text, Err: err}
	}

	e.log.Info(q.Text, "command", res.Command, "rows", res.RowCount)

	if res.Command == "SELECT" && e.sink != nil {
		columns, rows := res.Columns, res.Rows
		res.Export = func() error {
			location, err := e.sink.Export(ctx, columns, rows)
			if err != nil {
				e.log.Error("export failed", "error", err)
				return err
			}
			e.log.Info("export written", "location", location)
			return nil
		}
	}
	return res, nil
}

func (e *Executor) executeQuery(ctx context.Context, tag string, q Query) (*Result, error) {
	rows, err := e.conn.Query(ctx, q.Text, q.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	collected, err := collectRows(rows, columns)
	if err != nil {
		return nil, err
	}

	return &Result{
		Command:  tag,
		Columns:  columns,
		Rows:     collected,
		RowCount: int64(len(collected)),
	}, nil
}

func (e *Executor) executeExec(ctx context.Context, tag string, q Query) (*Result, error) {
	n, err := e.conn.Exec(ctx, q.Text, q.Args...)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}
	return &Result{Command: tag, RowCount: n}, nil
}

// collectRows drains the iterator into Row records. Drivers hand back
// strings as []byte; those are converted so rows survive the iterator.
func collectRows(rows driver.Rows, columns []string) ([]Row, error) {
	values := make([]any, len(columns))
	scanArgs := make([]any, len(columns))
	for i := range values {
		scanArgs[i] = &values[i]
	}

	var out []Row
	for rows.Next() {
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, err
		}
		record := make(Row, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				record[col] = string(b)
			} else {
				record[col] = values[i]
			}
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
