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
	"github.com/andrescamacho/eartask-go/internal/application/island/commands"
	"github.com/andrescamacho/eartask-go/internal/application/island/services"
	domainBatch "github.com/andrescamacho/eartask-go/internal/domain/batch"
	"github.com/andrescamacho/eartask-go/internal/domain/shared"
	"github.com/andrescamacho/eartask-go/test/helpers"
)

type fixture struct {
	client   *helpers.MockGameClient
	prompter *helpers.FakePrompter
	notifier *helpers.FakeNotifier
	clock    *shared.MockClock
	busy     *batch.BusyFlag
	runs     *helpers.MockRunRepository
}

func newFixture(client *helpers.MockGameClient, confirm bool) *fixture {
	return &fixture{
		client:   client,
		prompter: helpers.NewFakePrompter(confirm),
		notifier: helpers.NewFakeNotifier(),
		clock:    shared.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)),
		busy:     &batch.BusyFlag{},
		runs:     helpers.NewMockRunRepository(),
	}
}

func (f *fixture) deps() services.WorkflowDeps {
	return services.WorkflowDeps{
		Client:      f.client,
		Prompter:    f.prompter,
		Notifier:    f.notifier,
		Clock:       f.clock,
		Busy:        f.busy,
		Runs:        f.runs,
		PacingDelay: 800 * time.Millisecond,
	}
}

func authedContext() context.Context {
	return common.WithSessionToken(context.Background(), "tok")
}

func TestCollectAll_NothingToCollect(t *testing.T) {
	// Arrange
	client := helpers.NewMockGameClient(helpers.CreateTestIsland(1), helpers.CreateIdleIsland(2))
	f := newFixture(client, true)
	handler := commands.NewCollectAllHandler(f.deps())

	// Act
	resp, err := handler.Handle(authedContext(), &commands.CollectAllCommand{})

	// Assert
	require.NoError(t, err)
	result := resp.(*commands.CollectAllResponse)
	assert.False(t, result.Confirmed)
	assert.Len(t, result.Islands, 2)
	assert.Empty(t, f.prompter.Messages(), "no confirmation when nothing is collectible")
	assert.Empty(t, client.MutatingCalls())

	last, ok := f.notifier.Last()
	require.True(t, ok)
	assert.Equal(t, interaction.KindInfo, last.Kind)
	assert.Empty(t, f.runs.Runs)
}

func TestCollectAll_Declined(t *testing.T) {
	// Arrange
	client := helpers.NewMockGameClient(helpers.WithOutput(helpers.CreateTestIsland(1), 3))
	f := newFixture(client, false)
	handler := commands.NewCollectAllHandler(f.deps())

	// Act
	resp, err := handler.Handle(authedContext(), &commands.CollectAllCommand{})

	// Assert
	require.NoError(t, err)
	assert.False(t, resp.(*commands.CollectAllResponse).Confirmed)
	require.Len(t, f.prompter.Messages(), 1)
	assert.Contains(t, f.prompter.Messages()[0], "3.00")
	assert.Empty(t, client.MutatingCalls())
}

func TestCollectAll_CollectsSequentiallyAndToleratesFailures(t *testing.T) {
	// Arrange
	client := helpers.NewMockGameClient(
		helpers.WithOutput(helpers.CreateTestIsland(1), 2.5),
		helpers.CreateTestIsland(2),
		helpers.WithOutput(helpers.CreateTestIsland(3), 1),
		helpers.WithOutput(helpers.CreateTestIsland(4), 4),
	)
	client.CollectFunc = func(id int64) (bool, error) {
		if id == 3 {
			return false, errors.New("connection reset")
		}
		return true, nil
	}
	f := newFixture(client, true)
	handler := commands.NewCollectAllHandler(f.deps())

	// Act
	resp, err := handler.Handle(authedContext(), &commands.CollectAllCommand{})

	// Assert
	require.NoError(t, err)
	result := resp.(*commands.CollectAllResponse)
	assert.True(t, result.Confirmed)
	assert.Equal(t, domainBatch.Progress{Current: 3, Total: 3, SuccessCount: 2, FailCount: 1}, result.Progress)
	assert.InDelta(t, 6.5, result.Collected, 0.0001)

	assert.Equal(t, []string{"ListIslands", "Collect(1)", "Collect(3)", "Collect(4)", "ListIslands"}, client.CallNames())
	assert.Equal(t, []time.Duration{800 * time.Millisecond, 800 * time.Millisecond}, f.clock.Sleeps())
	assert.Contains(t, f.prompter.Messages()[0], "7.50")
	assert.Contains(t, f.prompter.Messages()[0], "3 island(s)")

	last, _ := f.notifier.Last()
	assert.Equal(t, interaction.KindSuccess, last.Kind)
	assert.Contains(t, last.Message, "2 island(s)")
	assert.Contains(t, last.Message, "1 failed")

	assert.Equal(t, []domainBatch.Kind{domainBatch.KindCollect}, f.runs.Kinds())
	assert.False(t, f.busy.Running())
	assert.NotNil(t, result.Islands)
}

func TestCollectAll_AllFailuresReported(t *testing.T) {
	// Arrange
	client := helpers.NewMockGameClient(helpers.WithOutput(helpers.CreateTestIsland(1), 1))
	client.CollectFunc = func(id int64) (bool, error) { return false, nil }
	f := newFixture(client, true)
	handler := commands.NewCollectAllHandler(f.deps())

	// Act
	_, err := handler.Handle(authedContext(), &commands.CollectAllCommand{})

	// Assert
	require.NoError(t, err)
	last, _ := f.notifier.Last()
	assert.Equal(t, interaction.KindFail, last.Kind)
	assert.Equal(t, 2, client.CountCalls("ListIslands"), "refetch happens even when every collect failed")
}

func TestCollectAll_BusyDuringExecution(t *testing.T) {
	// Arrange
	client := helpers.NewMockGameClient(helpers.WithOutput(helpers.CreateTestIsland(1), 1))
	f := newFixture(client, true)
	var busyDuringCall bool
	client.CollectFunc = func(id int64) (bool, error) {
		busyDuringCall = f.busy.Running()
		return true, nil
	}
	handler := commands.NewCollectAllHandler(f.deps())

	// Act
	_, err := handler.Handle(authedContext(), &commands.CollectAllCommand{})

	// Assert
	require.NoError(t, err)
	assert.True(t, busyDuringCall)
	assert.False(t, f.busy.Running())
}

func TestCollectAll_RequiresSession(t *testing.T) {
	// Arrange
	client := helpers.NewMockGameClient()
	handler := commands.NewCollectAllHandler(newFixture(client, true).deps())

	// Act
	_, err := handler.Handle(context.Background(), &commands.CollectAllCommand{})

	// Assert
	assert.ErrorIs(t, err, shared.ErrNoSession)
	assert.Empty(t, client.Calls())
}

func TestCollectAll_ListFailureIsReturned(t *testing.T) {
	// Arrange
	client := helpers.NewMockGameClient()
	client.ListIslandsErr = shared.NewAuthError("")
	handler := commands.NewCollectAllHandler(newFixture(client, true).deps())

	// Act
	_, err := handler.Handle(authedContext(), &commands.CollectAllCommand{})

	// Assert
	require.Error(t, err)
	assert.True(t, shared.IsAuthError(err))
}

func TestCollectAll_InvalidRequestType(t *testing.T) {
	handler := commands.NewCollectAllHandler(newFixture(helpers.NewMockGameClient(), true).deps())

	_, err := handler.Handle(authedContext(), &commands.StartIslandCommand{})

	assert.EqualError(t, err, "invalid request type: expected *CollectAllCommand")
}
