package batch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andrescamacho/eartask-go/internal/application/interaction"
	"github.com/andrescamacho/eartask-go/internal/application/logging"
	domainBatch "github.com/andrescamacho/eartask-go/internal/domain/batch"
	"github.com/andrescamacho/eartask-go/internal/domain/shared"
)

// Operation performs one remote call of a batch. attempt is 1-based.
// The bool reports whether the call counts as a success; an error is a failure.
type Operation func(ctx context.Context, attempt int) (bool, error)

// RunRecorder receives batch metrics
type RunRecorder interface {
	RecordCall(kind domainBatch.Kind, success bool, duration time.Duration)
	RecordRun(kind domainBatch.Kind, progress domainBatch.Progress, stoppedEarly bool)
}

// RunnerConfig configures a Runner
type RunnerConfig struct {
	Kind                   domainBatch.Kind
	Label                  string // used in notifications, e.g. "Search"
	PacingDelay            time.Duration
	MaxConsecutiveFailures int
}

// Runner executes N repetitions of a remote operation strictly one at a time.
//
// Between calls it waits the pacing delay. Every outcome updates the live
// progress, which is published to the observer before the next call starts.
// After MaxConsecutiveFailures failures in a row the run stops early.
//
// A Runner handles a single run at a time but does not lock: callers must check
// Running before starting another run.
type Runner struct {
	cfg      RunnerConfig
	clock    shared.Clock
	notifier interaction.Notifier
	recorder RunRecorder
	observer func(domainBatch.Progress)

	running  atomic.Bool
	mu       sync.RWMutex
	progress *domainBatch.Progress
}

// RunnerOption customises a Runner
type RunnerOption func(*Runner)

// WithObserver registers a callback receiving progress after every call
func WithObserver(observer func(domainBatch.Progress)) RunnerOption {
	return func(r *Runner) {
		r.observer = observer
	}
}

// WithRecorder registers a metrics recorder
func WithRecorder(recorder RunRecorder) RunnerOption {
	return func(r *Runner) {
		r.recorder = recorder
	}
}

// NewRunner creates a Runner. A nil clock uses the real clock.
func NewRunner(cfg RunnerConfig, clock shared.Clock, notifier interaction.Notifier, opts ...RunnerOption) *Runner {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if cfg.Label == "" {
		cfg.Label = "Batch"
	}
	if cfg.MaxConsecutiveFailures <= 0 {
		cfg.MaxConsecutiveFailures = DefaultMaxConsecutiveFailures
	}

	r := &Runner{
		cfg:      cfg,
		clock:    clock,
		notifier: notifier,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Running reports whether a run is in progress
func (r *Runner) Running() bool {
	return r.running.Load()
}

// Progress returns a snapshot of the live progress, or nil when idle
func (r *Runner) Progress() *domainBatch.Progress {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.progress == nil {
		return nil
	}
	snapshot := *r.progress
	return &snapshot
}

// Run executes total calls of op. total <= 0 is a no-op returning
// {Success: false, Progress: nil}.
func (r *Runner) Run(ctx context.Context, total int, op Operation) domainBatch.Result {
	if total <= 0 {
		return domainBatch.Result{}
	}

	logger := logging.LoggerFromContext(ctx)

	r.running.Store(true)
	defer func() {
		r.setProgress(nil)
		r.running.Store(false)
	}()

	breaker := NewCircuitBreaker(r.cfg.MaxConsecutiveFailures)
	pacer := NewPacer(r.clock, r.cfg.PacingDelay)
	progress := domainBatch.Progress{Total: total}
	stoppedEarly := false

	for attempt := 1; attempt <= total; attempt++ {
		pacer.Wait()

		success := r.call(ctx, logger, attempt, op)

		progress.Current = attempt
		if success {
			progress.SuccessCount++
		} else {
			progress.FailCount++
		}
		r.setProgress(&progress)

		if breaker.Record(success) == CircuitOpen {
			stoppedEarly = true
			logger.Log("WARNING", fmt.Sprintf("%s stopped after consecutive failures", r.cfg.Label), map[string]interface{}{
				"attempt":              attempt,
				"total":                total,
				"consecutive_failures": breaker.GetFailureCount(),
			})
			r.notify("Too many consecutive failures, stopped", interaction.KindFail)
			break
		}
	}

	final := domainBatch.Progress{
		Current:      progress.SuccessCount + progress.FailCount,
		Total:        total,
		SuccessCount: progress.SuccessCount,
		FailCount:    progress.FailCount,
	}

	kind := interaction.KindFail
	if final.SuccessCount > 0 {
		kind = interaction.KindSuccess
	}
	r.notify(SummaryMessage(r.cfg.Label, final.SuccessCount, final.FailCount), kind)

	if r.recorder != nil {
		r.recorder.RecordRun(r.cfg.Kind, final, stoppedEarly)
	}

	logger.Log("INFO", fmt.Sprintf("%s finished", r.cfg.Label), map[string]interface{}{
		"total":         total,
		"success_count": final.SuccessCount,
		"fail_count":    final.FailCount,
		"stopped_early": stoppedEarly,
	})

	return domainBatch.Result{
		Success:      final.SuccessCount > 0,
		Progress:     &final,
		StoppedEarly: stoppedEarly,
	}
}

func (r *Runner) call(ctx context.Context, logger logging.OperationLogger, attempt int, op Operation) bool {
	start := r.clock.Now()
	success, err := op(ctx, attempt)
	if err != nil {
		logger.Log("ERROR", fmt.Sprintf("%s call failed", r.cfg.Label), map[string]interface{}{
			"attempt": attempt,
			"error":   err.Error(),
		})
		success = false
	}

	if r.recorder != nil {
		r.recorder.RecordCall(r.cfg.Kind, success, r.clock.Now().Sub(start))
	}
	return success
}

func (r *Runner) setProgress(progress *domainBatch.Progress) {
	r.mu.Lock()
	if progress == nil {
		r.progress = nil
	} else {
		snapshot := *progress
		r.progress = &snapshot
	}
	r.mu.Unlock()

	if progress != nil && r.observer != nil {
		r.observer(*progress)
	}
}

func (r *Runner) notify(message string, kind interaction.Kind) {
	if r.notifier != nil {
		r.notifier.Notify(message, kind)
	}
}

// SummaryMessage renders "<label> finished: 5 succeeded, 2 failed"; the failure
// part is omitted when nothing failed.
func SummaryMessage(label string, successCount, failCount int) string {
	msg := fmt.Sprintf("%s finished: %d succeeded", label, successCount)
	if failCount > 0 {
		msg += fmt.Sprintf(", %d failed", failCount)
	}
	return msg
}
