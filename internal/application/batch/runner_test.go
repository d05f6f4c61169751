package batch_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/eartask-go/internal/application/batch"
	"github.com/andrescamacho/eartask-go/internal/application/interaction"
	domainBatch "github.com/andrescamacho/eartask-go/internal/domain/batch"
	"github.com/andrescamacho/eartask-go/internal/domain/shared"
	"github.com/andrescamacho/eartask-go/test/helpers"
)

type recorderStub struct {
	calls []bool
	runs  []domainBatch.Progress
	early []bool
}

func (r *recorderStub) RecordCall(kind domainBatch.Kind, success bool, duration time.Duration) {
	r.calls = append(r.calls, success)
}

func (r *recorderStub) RecordRun(kind domainBatch.Kind, progress domainBatch.Progress, stoppedEarly bool) {
	r.runs = append(r.runs, progress)
	r.early = append(r.early, stoppedEarly)
}

func newRunner(clock shared.Clock, notifier interaction.Notifier, opts ...batch.RunnerOption) *batch.Runner {
	return batch.NewRunner(batch.RunnerConfig{
		Kind:        domainBatch.KindSearch,
		Label:       "Search",
		PacingDelay: 800 * time.Millisecond,
	}, clock, notifier, opts...)
}

func TestRunner_AllSucceed(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Time{})
	notifier := helpers.NewFakeNotifier()
	runner := newRunner(clock, notifier)
	calls := 0

	// Act
	result := runner.Run(context.Background(), 5, func(ctx context.Context, attempt int) (bool, error) {
		calls++
		return true, nil
	})

	// Assert
	assert.True(t, result.Success)
	assert.False(t, result.StoppedEarly)
	require.NotNil(t, result.Progress)
	assert.Equal(t, domainBatch.Progress{Current: 5, Total: 5, SuccessCount: 5, FailCount: 0}, *result.Progress)
	assert.Equal(t, 5, calls)

	last, ok := notifier.Last()
	require.True(t, ok)
	assert.Equal(t, "Search finished: 5 succeeded", last.Message)
	assert.Equal(t, interaction.KindSuccess, last.Kind)
}

func TestRunner_PacesBetweenCallsOnly(t *testing.T) {
	clock := shared.NewMockClock(time.Time{})
	runner := newRunner(clock, helpers.NewFakeNotifier())

	runner.Run(context.Background(), 4, func(ctx context.Context, attempt int) (bool, error) {
		return true, nil
	})

	// three gaps between four calls, none before the first
	assert.Equal(t, []time.Duration{800 * time.Millisecond, 800 * time.Millisecond, 800 * time.Millisecond}, clock.Sleeps())
}

func TestRunner_SleepHappensBeforeNextCall(t *testing.T) {
	clock := shared.NewMockClock(time.Time{})
	runner := newRunner(clock, helpers.NewFakeNotifier())
	var sleepsSeen []int

	runner.Run(context.Background(), 3, func(ctx context.Context, attempt int) (bool, error) {
		sleepsSeen = append(sleepsSeen, len(clock.Sleeps()))
		return true, nil
	})

	assert.Equal(t, []int{0, 1, 2}, sleepsSeen)
}

func TestRunner_StopsAfterThreeConsecutiveFailures(t *testing.T) {
	// Arrange: call 1 succeeds, calls 2-4 fail
	notifier := helpers.NewFakeNotifier()
	runner := newRunner(shared.NewMockClock(time.Time{}), notifier)
	var attempts []int

	// Act
	result := runner.Run(context.Background(), 10, func(ctx context.Context, attempt int) (bool, error) {
		attempts = append(attempts, attempt)
		return attempt == 1, nil
	})

	// Assert
	assert.Equal(t, []int{1, 2, 3, 4}, attempts, "call 5 must never be issued")
	assert.True(t, result.StoppedEarly)
	assert.True(t, result.Success)
	assert.Equal(t, domainBatch.Progress{Current: 4, Total: 10, SuccessCount: 1, FailCount: 3}, *result.Progress)

	messages := notifier.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "Too many consecutive failures, stopped", messages[0])
	assert.Equal(t, "Search finished: 1 succeeded, 3 failed", messages[1])
}

func TestRunner_SuccessResetsFailureStreak(t *testing.T) {
	runner := newRunner(shared.NewMockClock(time.Time{}), helpers.NewFakeNotifier())
	pattern := []bool{false, false, true, false, false, true, false}

	result := runner.Run(context.Background(), len(pattern), func(ctx context.Context, attempt int) (bool, error) {
		return pattern[attempt-1], nil
	})

	assert.False(t, result.StoppedEarly)
	assert.Equal(t, domainBatch.Progress{Current: 7, Total: 7, SuccessCount: 2, FailCount: 5}, *result.Progress)
}

func TestRunner_ErrorsCountAsFailures(t *testing.T) {
	// Arrange
	notifier := helpers.NewFakeNotifier()
	runner := newRunner(shared.NewMockClock(time.Time{}), notifier)

	// Act
	result := runner.Run(context.Background(), 3, func(ctx context.Context, attempt int) (bool, error) {
		if attempt == 2 {
			return true, errors.New("connection reset")
		}
		return true, nil
	})

	// Assert
	assert.Equal(t, domainBatch.Progress{Current: 3, Total: 3, SuccessCount: 2, FailCount: 1}, *result.Progress)
	assert.False(t, result.StoppedEarly)
}

func TestRunner_AllFailReportsFailure(t *testing.T) {
	notifier := helpers.NewFakeNotifier()
	runner := newRunner(shared.NewMockClock(time.Time{}), notifier)

	result := runner.Run(context.Background(), 3, func(ctx context.Context, attempt int) (bool, error) {
		return false, errors.New("boom")
	})

	assert.False(t, result.Success)
	assert.True(t, result.StoppedEarly)
	last, _ := notifier.Last()
	assert.Equal(t, interaction.KindFail, last.Kind)
	assert.Equal(t, "Search finished: 0 succeeded, 3 failed", last.Message)
}

func TestRunner_NonPositiveTotalIsNoOp(t *testing.T) {
	for _, total := range []int{0, -3} {
		// Arrange
		notifier := helpers.NewFakeNotifier()
		clock := shared.NewMockClock(time.Time{})
		runner := newRunner(clock, notifier)
		calls := 0

		// Act
		result := runner.Run(context.Background(), total, func(ctx context.Context, attempt int) (bool, error) {
			calls++
			return true, nil
		})

		// Assert
		assert.False(t, result.Success)
		assert.Nil(t, result.Progress)
		assert.Zero(t, calls)
		assert.Empty(t, notifier.Notifications())
		assert.Empty(t, clock.Sleeps())
	}
}

func TestRunner_PublishesProgressAfterEveryCall(t *testing.T) {
	// Arrange
	var observed []domainBatch.Progress
	var runner *batch.Runner
	runner = newRunner(shared.NewMockClock(time.Time{}), helpers.NewFakeNotifier(),
		batch.WithObserver(func(p domainBatch.Progress) {
			observed = append(observed, p)
		}))
	var liveBeforeCall []*domainBatch.Progress

	// Act
	runner.Run(context.Background(), 3, func(ctx context.Context, attempt int) (bool, error) {
		liveBeforeCall = append(liveBeforeCall, runner.Progress())
		return attempt != 2, nil
	})

	// Assert
	assert.Equal(t, []domainBatch.Progress{
		{Current: 1, Total: 3, SuccessCount: 1, FailCount: 0},
		{Current: 2, Total: 3, SuccessCount: 1, FailCount: 1},
		{Current: 3, Total: 3, SuccessCount: 2, FailCount: 1},
	}, observed)
	assert.Nil(t, liveBeforeCall[0])
	assert.Equal(t, 1, liveBeforeCall[1].Current)
	assert.Equal(t, 2, liveBeforeCall[2].Current)
}

func TestRunner_RunningFlagAndResetOnExit(t *testing.T) {
	runner := newRunner(shared.NewMockClock(time.Time{}), helpers.NewFakeNotifier())
	var runningDuringCall bool

	runner.Run(context.Background(), 1, func(ctx context.Context, attempt int) (bool, error) {
		runningDuringCall = runner.Running()
		return true, nil
	})

	assert.True(t, runningDuringCall)
	assert.False(t, runner.Running())
	assert.Nil(t, runner.Progress())
}

func TestRunner_RecordsMetrics(t *testing.T) {
	recorder := &recorderStub{}
	runner := newRunner(shared.NewMockClock(time.Time{}), helpers.NewFakeNotifier(), batch.WithRecorder(recorder))

	runner.Run(context.Background(), 2, func(ctx context.Context, attempt int) (bool, error) {
		return attempt == 1, nil
	})

	assert.Equal(t, []bool{true, false}, recorder.calls)
	require.Len(t, recorder.runs, 1)
	assert.Equal(t, 1, recorder.runs[0].SuccessCount)
	assert.Equal(t, []bool{false}, recorder.early)
}

func TestRunner_CustomFailureThreshold(t *testing.T) {
	runner := batch.NewRunner(batch.RunnerConfig{Label: "Search", MaxConsecutiveFailures: 2},
		shared.NewMockClock(time.Time{}), helpers.NewFakeNotifier())
	calls := 0

	result := runner.Run(context.Background(), 5, func(ctx context.Context, attempt int) (bool, error) {
		calls++
		return false, nil
	})

	assert.Equal(t, 2, calls)
	assert.True(t, result.StoppedEarly)
}

func TestSummaryMessage(t *testing.T) {
	assert.Equal(t, "Collect finished: 3 succeeded", batch.SummaryMessage("Collect", 3, 0))
	assert.Equal(t, "Collect finished: 3 succeeded, 1 failed", batch.SummaryMessage("Collect", 3, 1))
}
