package engine

import (
	"context"
	"fmt"
	"log/slog"
)

// TxCoordinator runs an ordered list of statements as one atomic unit.
// BEGIN, COMMIT and ROLLBACK are issued as ordinary statements through the
// Executor; the connection handle's single-session pin is what makes them
// apply to every step in between.
type TxCoordinator struct {
	exec *Executor
	log  *slog.Logger
}

func NewTxCoordinator(exec *Executor, log *slog.Logger) *TxCoordinator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &TxCoordinator{exec: exec, log: log}
}

// Run executes queries strictly in submission order, each step awaited
// before the next is issued. The first step that errors, or whose result
// carries no command tag, rolls the transaction back immediately; no later
// step executes. On success the final step's result is returned after
// COMMIT. Any panic out of a step triggers a best-effort rollback and is
// re-raised.
func (c *TxCoordinator) Run(ctx context.Context, queries []Query) (*Result, error) {
	if _, err := c.exec.Execute(ctx, Query{Text: "BEGIN"}); err != nil {
		return nil, &TxError{Step: -1, Err: err}
	}

	defer func() {
		if p := recover(); p != nil {
			c.rollback(ctx)
			panic(p)
		}
	}()

	var last *Result
	for i, q := range queries {
		res, err := c.exec.Execute(ctx, q)
		if err == nil && res.Command == "" {
			err = fmt.Errorf("step %d finished without a command tag", i)
		}
		if err != nil {
			c.rollback(ctx)
			return nil, &TxError{Step: i, Err: err}
		}
		last = res
	}

	if _, err := c.exec.Execute(ctx, Query{Text: "COMMIT"}); err != nil {
		c.rollback(ctx)
		return nil, &TxError{Step: -1, Err: err}
	}
	return last, nil
}

// rollback is best-effort: a rollback failure is logged but never masks
// the error that caused it.
func (c *TxCoordinator) rollback(ctx context.Context) {
	if _, err := c.exec.Execute(ctx, Query{Text: "ROLLBACK"}); err != nil {
		c.log.Error("rollback failed", "error", err)
	}
}
