package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"sql-conductor/internal/logging"
)

// BatchRequest is an unordered collection of independent statements.
// Indices in the resulting report refer to positions in Queries even though
// execution interleaves freely.
type BatchRequest struct {
	Queries []Query
	// RetainSuccessRows keeps successful row sets in the report. Off by
	// default: large batches of wide SELECTs get expensive to hold.
	RetainSuccessRows bool
}

// BatchReport aggregates per-item outcomes of one batch run. Once Run
// returns, the report is settled and owned by the caller.
//
// Invariants: CompletedCount + len(Failed) == TotalCount, and
// OverallSuccess == (len(Errors) == 0 && FatalError == nil).
type BatchReport struct {
	// ID identifies the batch in log output and export keys.
	ID             string
	CompletedCount int
	TotalCount     int
	// SuccessRows maps item index to its rows. Nil unless the request set
	// RetainSuccessRows.
	SuccessRows map[int][]Row
	// Failed maps item index to the submitted query, Errors to the reason.
	Failed map[int]Query
	Errors map[int]error
	// FatalError is an orchestration failure not attributable to any one
	// item. The run still settles; Run never panics through to the caller.
	FatalError     error
	ElapsedMillis  int64
	OverallSuccess bool
}

// BatchRunner dispatches every statement of a request without waiting for
// earlier ones to finish, then joins and aggregates. All items share the
// one pinned session, so true wire order is whatever the driver's queuing
// decides; items are not isolated from one another and there are no
// per-item transactions.
type BatchRunner struct {
	exec *Executor
	log  *slog.Logger
	sem  *semaphore.Weighted
}

// NewBatchRunner builds a runner. maxInFlight caps concurrently dispatched
// items; zero or negative means no cap (every item fires at once).
func NewBatchRunner(exec *Executor, log *slog.Logger, maxInFlight int64) *BatchRunner {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	r := &BatchRunner{exec: exec, log: log}
	if maxInFlight > 0 {
		r.sem = semaphore.NewWeighted(maxInFlight)
	}
	return r
}

// Run executes the batch and always returns a settled report, never an
// error: per-item failures are data, and orchestration failures (including
// recovered panics) land in FatalError.
//
// An item counts as completed only when it produced data (RowCount > 0).
// A statement that runs cleanly but touches zero rows is recorded as a
// failure with ErrNoRows. That deliberately misclassifies e.g. an UPDATE
// matching nothing; callers who care must inspect Errors for ErrNoRows.
func (r *BatchRunner) Run(ctx context.Context, req BatchRequest) (report *BatchReport) {
	report = &BatchReport{
		ID:         uuid.New().String(),
		TotalCount: len(req.Queries),
		Failed:     make(map[int]Query),
		Errors:     make(map[int]error),
	}
	if req.RetainSuccessRows {
		report.SuccessRows = make(map[int][]Row)
	}

	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			report.FatalError = fmt.Errorf("batch orchestration panic: %v", p)
		}
		report.ElapsedMillis = time.Since(start).Milliseconds()
		report.OverallSuccess = len(report.Errors) == 0 && report.FatalError == nil

		level := logging.LevelNotice
		if !report.OverallSuccess {
			level = slog.LevelWarn
		}
		r.log.Log(ctx, level, "batch settled",
			"batch_id", report.ID,
			"completed", report.CompletedCount,
			"failed", len(report.Failed),
			"total", report.TotalCount,
			"elapsed_ms", report.ElapsedMillis,
		)
	}()

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for i, q := range req.Queries {
		wg.Add(1)
		go func(i int, q Query) {
			defer wg.Done()
			err := r.runItem(ctx, q, func(res *Result) {
				mu.Lock()
				defer mu.Unlock()
				report.CompletedCount++
				if report.SuccessRows != nil {
					report.SuccessRows[i] = res.Rows
				}
			})
			if err != nil {
				mu.Lock()
				defer mu.Unlock()
				report.Failed[i] = q
				report.Errors[i] = err
			}
		}(i, q)
	}
	wg.Wait()
	return report
}

// runItem executes one batch item, applying the dispatch cap and panic
// containment. onSuccess runs under the caller's lock via the closure.
func (r *BatchRunner) runItem(ctx context.Context, q Query, onSuccess func(*Result)) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("batch item panic: %v", p)
		}
	}()

	if r.sem != nil {
		if err := r.sem.Acquire(ctx, 1); err != nil {
			return fmt.Errorf("dispatch: %w", err)
		}
		defer r.sem.Release(1)
	}

	res, err := r.exec.Execute(ctx, q)
	if err != nil {
		return err
	}
	if res.RowCount == 0 {
		return ErrNoRows
	}
	onSuccess(res)
	return nil
}
