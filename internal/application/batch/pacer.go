package batch

import (
	"sync/atomic"
	"time"

	"github.com/andrescamacho/eartask-go/internal/domain/shared"
)

// DefaultPacingDelay is the pause between consecutive remote calls of a batch
const DefaultPacingDelay = 800 * time.Millisecond

// Pacer spaces out sequential remote calls. Wait is called before every call;
// it returns immediately the first time and sleeps the delay afterwards.
type Pacer struct {
	clock shared.Clock
	delay time.Duration
	calls int
}

// NewPacer creates a pacer; a nil clock uses the real clock
func NewPacer(clock shared.Clock, delay time.Duration) *Pacer {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Pacer{clock: clock, delay: delay}
}

// Wait blocks for the pacing delay unless this is the first call
func (p *Pacer) Wait() {
	if p.calls > 0 && p.delay > 0 {
		p.clock.Sleep(p.delay)
	}
	p.calls++
}

// Indicator exposes whether a workflow is currently running
type Indicator interface {
	Running() bool
}

// BusyFlag is the "operating" flag a workflow raises for its whole duration.
// It is not a lock: callers check Running before starting a new workflow.
type BusyFlag struct {
	active atomic.Bool
}

// Set raises the flag
func (f *BusyFlag) Set() {
	f.active.Store(true)
}

// Clear lowers the flag
func (f *BusyFlag) Clear() {
	f.active.Store(false)
}

// Running reports whether the flag is raised
func (f *BusyFlag) Running() bool {
	return f.active.Load()
}
