package workbook

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSubmitter struct {
	calls  []int
	failOn map[int]error
}

func (s *recordingSubmitter) Submit(_ context.Context, rec *Record) error {
	n := *rec.Seniority
	s.calls = append(s.calls, n)
	if err, ok := s.failOn[n]; ok {
		return err
	}
	return nil
}

func validRows(n int) []ValidatedRow {
	rows := make([]RawRow, n)
	for i := range rows {
		rows[i] = RawRow{Row: i + 2, Values: map[string]any{
			HeaderSeniority: float64(i + 1),
			HeaderFullName:  fmt.Sprintf("person %d", i+1),
			HeaderPosition:  "ผกก.",
		}}
	}
	return ValidateRows(rows, false)
}

func TestOrchestrator_PartialFailureContinues(t *testing.T) {
	sub := &recordingSubmitter{failOn: map[int]error{5: errors.New("National ID already exists")}}
	o := NewOrchestrator(sub, zap.NewNop())

	res := o.Run(context.Background(), validRows(10))

	assert.Equal(t, 10, res.Total)
	assert.Equal(t, 9, res.Success)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 0, res.Skipped)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 6, res.Errors[0].Row)
	assert.Equal(t, "person 5", res.Errors[0].Label)
	assert.Equal(t, "person 5: National ID already exists", res.Errors[0].String())

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, sub.calls, "rows are submitted once each, in order")
}

func TestOrchestrator_SkipsInvalidRows(t *testing.T) {
	rows := validRows(3)
	rows[1].Status = StatusInvalid
	rows[1].Error = ErrPositionRequired.Error()

	sub := &recordingSubmitter{}
	res := NewOrchestrator(sub, zap.NewNop()).Run(context.Background(), rows)

	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Success)
	assert.Equal(t, 1, res.Skipped)
	assert.Empty(t, res.Errors)
	assert.Equal(t, []int{1, 3}, sub.calls)
}

func TestOrchestrator_IgnoresCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var seen []error
	sub := SubmitterFunc(func(ctx context.Context, _ *Record) error {
		seen = append(seen, ctx.Err())
		return nil
	})

	res := NewOrchestrator(sub, zap.NewNop()).Run(ctx, validRows(3))

	assert.Equal(t, 3, res.Success)
	for _, err := range seen {
		assert.NoError(t, err)
	}
}

func TestOrchestrator_Empty(t *testing.T) {
	res := NewOrchestrator(&recordingSubmitter{}, zap.NewNop()).Run(context.Background(), nil)
	assert.Equal(t, 0, res.Total)
	assert.NotNil(t, res.Errors)
}

func TestQueue(t *testing.T) {
	q := NewQueue(validRows(2))
	assert.Equal(t, 2, q.Remaining())

	first, ok := q.Next()
	require.True(t, ok)
	assert.Equal(t, 2, first.Row)

	_, ok = q.Next()
	require.True(t, ok)
	_, ok = q.Next()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Remaining())
}
