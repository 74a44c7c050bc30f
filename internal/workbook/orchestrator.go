package workbook

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Submitter persists one record. An error marks only that row as failed.
type Submitter interface {
	Submit(ctx context.Context, rec *Record) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, rec *Record) error

// Submit calls f.
func (f SubmitterFunc) Submit(ctx context.Context, rec *Record) error { return f(ctx, rec) }

// RowError a failed submission
type RowError struct {
	Row    int    `json:"row"`
	Label  string `json:"label"`
	Reason string `json:"reason"`
}

func (e RowError) String() string {
	return fmt.Sprintf("%s: %s", e.Label, e.Reason)
}

// Result tally of one import run.
// Total = Success + Failed + Skipped; Skipped counts rows that were not valid.
type Result struct {
	Total   int        `json:"total"`
	Success int        `json:"success"`
	Failed  int        `json:"failed"`
	Skipped int        `json:"skipped"`
	Errors  []RowError `json:"errors"`
}

// Queue ordered, single-consumer iterator over rows awaiting submission.
type Queue struct {
	rows []ValidatedRow
	next int
}

// NewQueue queues rows in the given order.
func NewQueue(rows []ValidatedRow) *Queue {
	return &Queue{rows: rows}
}

// Next pops the next row.
func (q *Queue) Next() (ValidatedRow, bool) {
	if q.next >= len(q.rows) {
		return ValidatedRow{}, false
	}
	row := q.rows[q.next]
	q.next++
	return row, true
}

// Remaining rows not yet popped.
func (q *Queue) Remaining() int {
	return len(q.rows) - q.next
}

// Orchestrator submits valid rows one at a time, in order.
type Orchestrator struct {
	submitter Submitter
	logger    *zap.Logger
}

// NewOrchestrator creates an Orchestrator
func NewOrchestrator(submitter Submitter, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{submitter: submitter, logger: logger}
}

// Run submits every valid row and returns the tally. Invalid rows are
// skipped. A failed row never stops the run, nothing is retried, and earlier
// successes stay committed. The run ignores cancellation of ctx: once
// started, every queued row is attempted.
func (o *Orchestrator) Run(ctx context.Context, rows []ValidatedRow) *Result {
	ctx = context.WithoutCancel(ctx)
	res := &Result{Total: len(rows), Errors: []RowError{}}

	q := NewQueue(rows)
	for {
		row, ok := q.Next()
		if !ok {
			break
		}
		if !row.Valid() {
			res.Skipped++
			continue
		}

		rec := row.Record
		if err := o.submitter.Submit(ctx, &rec); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, RowError{Row: row.Row, Label: rec.Label(), Reason: err.Error()})
			o.logger.Warn("import row rejected",
				zap.Int("row", row.Row),
				zap.String("label", rec.Label()),
				zap.Error(err),
			)
			continue
		}
		res.Success++
	}

	o.logger.Info("import finished",
		zap.Int("total", res.Total),
		zap.Int("success", res.Success),
		zap.Int("failed", res.Failed),
		zap.Int("skipped", res.Skipped),
	)
	return res
}
