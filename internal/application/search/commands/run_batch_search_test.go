package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/eartask-go/internal/application/batch"
	"github.com/andrescamacho/eartask-go/internal/application/common"
	"github.com/andrescamacho/eartask-go/internal/application/interaction"
	"github.com/andrescamacho/eartask-go/internal/application/search/commands"
	domainBatch "github.com/andrescamacho/eartask-go/internal/domain/batch"
	"github.com/andrescamacho/eartask-go/internal/domain/shared"
	"github.com/andrescamacho/eartask-go/test/helpers"
)

type searchFixture struct {
	client   *helpers.MockGameClient
	notifier *helpers.FakeNotifier
	clock    *shared.MockClock
	runs     *helpers.MockRunRepository
	runner   *batch.Runner
	observed []domainBatch.Progress
}

func newSearchFixture(remaining int) *searchFixture {
	f := &searchFixture{
		client:   helpers.NewMockGameClient(),
		notifier: helpers.NewFakeNotifier(),
		clock:    shared.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)),
		runs:     helpers.NewMockRunRepository(),
	}
	f.client.Profile = helpers.CreateTestSearchProfile(remaining)
	f.runner = batch.NewRunner(batch.RunnerConfig{
		Kind:        domainBatch.KindSearch,
		Label:       "Search",
		PacingDelay: 800 * time.Millisecond,
	}, f.clock, f.notifier, batch.WithObserver(func(p domainBatch.Progress) {
		f.observed = append(f.observed, p)
	}))
	return f
}

func (f *searchFixture) handler() *commands.RunBatchSearchHandler {
	return commands.NewRunBatchSearchHandler(f.client, f.runner, f.notifier, f.runs, f.clock)
}

func authedContext() context.Context {
	return common.WithSessionToken(context.Background(), "tok")
}

func TestRunBatchSearch_SpendsEveryRemainingSearch(t *testing.T) {
	// Arrange
	f := newSearchFixture(4)

	// Act
	resp, err := f.handler().Handle(authedContext(), &commands.RunBatchSearchCommand{})

	// Assert
	require.NoError(t, err)
	result := resp.(*commands.RunBatchSearchResponse)
	assert.True(t, result.Eligible)
	assert.True(t, result.Result.Success)
	assert.Equal(t, domainBatch.Progress{Current: 4, Total: 4, SuccessCount: 4}, *result.Result.Progress)
	assert.Equal(t, 4, f.client.CountCalls("Search"))
	assert.Equal(t, 2, f.client.CountCalls("GetSearchProfile"), "profile is refetched after a successful run")
	assert.Len(t, f.observed, 4)
	assert.Equal(t, []string{"Search finished: 4 succeeded"}, f.notifier.Messages())

	require.Len(t, f.runs.Runs, 1)
	assert.Equal(t, domainBatch.KindSearch, f.runs.Runs[0].Kind)
	assert.Equal(t, 4, f.runs.Runs[0].SuccessCount)
}

func TestRunBatchSearch_NotEligible(t *testing.T) {
	// Arrange
	f := newSearchFixture(0)

	// Act
	resp, err := f.handler().Handle(authedContext(), &commands.RunBatchSearchCommand{})

	// Assert
	require.NoError(t, err)
	result := resp.(*commands.RunBatchSearchResponse)
	assert.False(t, result.Eligible)
	assert.Nil(t, result.Result.Progress)
	assert.Equal(t, 0, f.client.CountCalls("Search"))
	last, _ := f.notifier.Last()
	assert.Equal(t, interaction.KindInfo, last.Kind)
	assert.Empty(t, f.runs.Runs)
}

func TestRunBatchSearch_NegativeRemainingIsNotEligible(t *testing.T) {
	// Arrange
	f := newSearchFixture(0)
	f.client.Profile.RemainingFreeSearchNum = -2

	// Act
	resp, err := f.handler().Handle(authedContext(), &commands.RunBatchSearchCommand{})

	// Assert
	require.NoError(t, err)
	assert.False(t, resp.(*commands.RunBatchSearchResponse).Eligible)
	assert.Equal(t, 0, f.client.CountCalls("Search"))
}

func TestRunBatchSearch_StopsAfterThreeConsecutiveFailures(t *testing.T) {
	// Arrange
	f := newSearchFixture(10)
	f.client.SearchFunc = func(attempt int) (bool, error) {
		if attempt == 1 {
			return true, nil
		}
		if attempt == 3 {
			return false, errors.New("gateway timeout")
		}
		return false, nil
	}

	// Act
	resp, err := f.handler().Handle(authedContext(), &commands.RunBatchSearchCommand{})

	// Assert
	require.NoError(t, err)
	result := resp.(*commands.RunBatchSearchResponse)
	assert.True(t, result.Result.StoppedEarly)
	assert.Equal(t, domainBatch.Progress{Current: 4, Total: 10, SuccessCount: 1, FailCount: 3}, *result.Result.Progress)
	assert.Equal(t, 4, f.client.CountCalls("Search"))
	assert.Equal(t, []string{
		"Too many consecutive failures, stopped",
		"Search finished: 1 succeeded, 3 failed",
	}, f.notifier.Messages())
	assert.True(t, f.runs.Runs[0].StoppedEarly)
}

func TestRunBatchSearch_NoRefetchWhenEverythingFailed(t *testing.T) {
	// Arrange
	f := newSearchFixture(2)
	f.client.SearchFunc = func(attempt int) (bool, error) { return false, nil }

	// Act
	resp, err := f.handler().Handle(authedContext(), &commands.RunBatchSearchCommand{})

	// Assert
	require.NoError(t, err)
	assert.False(t, resp.(*commands.RunBatchSearchResponse).Result.Success)
	assert.Equal(t, 1, f.client.CountCalls("GetSearchProfile"))
}

func TestRunBatchSearch_ProfileFailureIsReturned(t *testing.T) {
	// Arrange
	f := newSearchFixture(3)
	f.client.ProfileErr = shared.NewAuthError("")

	// Act
	_, err := f.handler().Handle(authedContext(), &commands.RunBatchSearchCommand{})

	// Assert
	assert.True(t, shared.IsAuthError(err))
	assert.Equal(t, 0, f.client.CountCalls("Search"))
}

func TestRunBatchSearch_RequiresSession(t *testing.T) {
	f := newSearchFixture(3)

	_, err := f.handler().Handle(context.Background(), &commands.RunBatchSearchCommand{})

	assert.ErrorIs(t, err, shared.ErrNoSession)
}
