package batch

import (
	"context"
	"time"
)

// Progress is the live state of one batch run. It belongs to the run that
// created it and is dropped when the run ends.
type Progress struct {
	Current      int
	Total        int
	SuccessCount int
	FailCount    int
}

// Done reports whether every planned call has been attempted
func (p Progress) Done() bool {
	return p.Current >= p.Total
}

// Result is what a batch run hands back to its caller
type Result struct {
	Success      bool
	Progress     *Progress // nil when nothing ran
	StoppedEarly bool
}

// Kind names the workflow a run belongs to
type Kind string

const (
	KindSearch     Kind = "search"
	KindCollect    Kind = "collect"
	KindSupplement Kind = "supplement"
	KindStart      Kind = "start"
)

// Run is the stored summary of a finished batch. Only counts are kept;
// projections are always recomputed from fresh snapshots.
type Run struct {
	ID           string
	Kind         Kind
	Total        int
	SuccessCount int
	FailCount    int
	StoppedEarly bool
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Duration returns how long the run took
func (r *Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// RunRepository stores batch run summaries
type RunRepository interface {
	Add(ctx context.Context, run *Run) error
	ListRecent(ctx context.Context, limit int) ([]*Run, error)
}
