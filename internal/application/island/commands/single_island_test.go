package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/eartask-go/internal/application/interaction"
	"github.com/andrescamacho/eartask-go/internal/application/island/commands"
	"github.com/andrescamacho/eartask-go/internal/domain/shared"
	"github.com/andrescamacho/eartask-go/test/helpers"
)

func TestStartIsland_CollectsThenStarts(t *testing.T) {
	// Arrange
	target := helpers.WithOutput(helpers.WithResource(helpers.CreateIdleIsland(5), 10, 3, 0, 4), 1.25)
	client := helpers.NewMockGameClient(target)
	f := newFixture(client, true)
	handler := commands.NewStartIslandHandler(f.deps())

	// Act
	resp, err := handler.Handle(authedContext(), &commands.StartIslandCommand{IslandID: 5})

	// Assert
	require.NoError(t, err)
	result := resp.(*commands.StartIslandResponse)
	assert.True(t, result.Confirmed)
	assert.True(t, result.Started)
	assert.InDelta(t, 1.25, result.Collected, 0.0001)
	assert.Equal(t, []string{"ListIslands", "Collect(5)", "Start(5,true)", "ListIslands"}, client.CallNames())
	assert.Len(t, f.clock.Sleeps(), 1)

	prompt := f.prompter.Messages()[0]
	assert.Contains(t, prompt, "1.25 will be collected first")
	assert.Contains(t, prompt, "3.3h")
	assert.Contains(t, prompt, "Needs 16 currency")

	assert.Equal(t, []string{"Collected 1.25 from Island-5", "Island-5 started"}, f.notifier.Messages())
}

func TestStartIsland_WithoutOutputOnlyStarts(t *testing.T) {
	// Arrange
	client := helpers.NewMockGameClient(helpers.WithResource(helpers.CreateIdleIsland(5), 500, 3, 0, 4))
	f := newFixture(client, true)
	handler := commands.NewStartIslandHandler(f.deps())

	// Act
	_, err := handler.Handle(authedContext(), &commands.StartIslandCommand{IslandID: 5})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"Start(5,true)"}, callNames(client.MutatingCalls()))
	assert.Contains(t, f.prompter.Messages()[0], "sufficient for 24h")
}

func TestStartIsland_Declined(t *testing.T) {
	// Arrange
	client := helpers.NewMockGameClient(helpers.CreateIdleIsland(5))
	f := newFixture(client, false)
	handler := commands.NewStartIslandHandler(f.deps())

	// Act
	resp, err := handler.Handle(authedContext(), &commands.StartIslandCommand{IslandID: 5})

	// Assert
	require.NoError(t, err)
	assert.False(t, resp.(*commands.StartIslandResponse).Confirmed)
	assert.Empty(t, client.MutatingCalls())
	assert.False(t, f.busy.Running())
}

func TestStartIsland_FailedStartIsReported(t *testing.T) {
	// Arrange
	client := helpers.NewMockGameClient(helpers.CreateIdleIsland(5))
	client.StartFunc = func(id int64, start bool) (bool, error) { return false, errors.New("timeout") }
	f := newFixture(client, true)
	handler := commands.NewStartIslandHandler(f.deps())

	// Act
	resp, err := handler.Handle(authedContext(), &commands.StartIslandCommand{IslandID: 5})

	// Assert
	require.NoError(t, err)
	assert.False(t, resp.(*commands.StartIslandResponse).Started)
	last, _ := f.notifier.Last()
	assert.Equal(t, interaction.KindFail, last.Kind)
	assert.Equal(t, 2, client.CountCalls("ListIslands"))
}

func TestStartIsland_UnknownIsland(t *testing.T) {
	// Arrange
	client := helpers.NewMockGameClient(helpers.CreateIdleIsland(5))
	f := newFixture(client, true)
	handler := commands.NewStartIslandHandler(f.deps())

	// Act
	_, err := handler.Handle(authedContext(), &commands.StartIslandCommand{IslandID: 99})

	// Assert
	var notFound *shared.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(99), notFound.ID)
	assert.Empty(t, f.prompter.Messages())
}

func TestCollectIsland_Collects(t *testing.T) {
	// Arrange
	client := helpers.NewMockGameClient(helpers.WithOutput(helpers.CreateTestIsland(3), 4))
	f := newFixture(client, true)
	handler := commands.NewCollectIslandHandler(f.deps())

	// Act
	resp, err := handler.Handle(authedContext(), &commands.CollectIslandCommand{IslandID: 3})

	// Assert
	require.NoError(t, err)
	result := resp.(*commands.CollectIslandResponse)
	assert.Equal(t, 4.0, result.Collected)
	assert.Equal(t, []string{"ListIslands", "Collect(3)", "ListIslands"}, client.CallNames())
}

func TestCollectIsland_NothingToCollect(t *testing.T) {
	// Arrange
	client := helpers.NewMockGameClient(helpers.CreateTestIsland(3))
	f := newFixture(client, true)
	handler := commands.NewCollectIslandHandler(f.deps())

	// Act
	_, err := handler.Handle(authedContext(), &commands.CollectIslandCommand{IslandID: 3})

	// Assert
	require.NoError(t, err)
	assert.Empty(t, f.prompter.Messages())
	assert.Empty(t, client.MutatingCalls())
}

func TestSupplementIsland_DefaultAmountAndCapPrompt(t *testing.T) {
	// Arrange
	client := helpers.NewMockGameClient(helpers.WithResource(helpers.CreateTestIsland(8), 45, 5, 5, 2))
	f := newFixture(client, true)
	handler := commands.NewSupplementIslandHandler(f.deps(), 0, 0)

	// Act
	resp, err := handler.Handle(authedContext(), &commands.SupplementIslandCommand{IslandID: 8})

	// Assert
	require.NoError(t, err)
	result := resp.(*commands.SupplementIslandResponse)
	assert.True(t, result.Supplemented)
	assert.Equal(t, 10, result.Amount)
	assert.Equal(t, []string{"Supplement(8,10)"}, callNames(client.MutatingCalls()))
	assert.Contains(t, f.prompter.Messages()[0], "75.00 short of 120")
}

func TestSupplementIsland_ExplicitAmount(t *testing.T) {
	// Arrange
	client := helpers.NewMockGameClient(helpers.CreateTestIsland(8))
	f := newFixture(client, true)
	handler := commands.NewSupplementIslandHandler(f.deps(), 10, 120)

	// Act
	_, err := handler.Handle(authedContext(), &commands.SupplementIslandCommand{IslandID: 8, Amount: 25})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"Supplement(8,25)"}, callNames(client.MutatingCalls()))
}

func TestSupplementIsland_RejectsNegativeAmount(t *testing.T) {
	// Arrange
	client := helpers.NewMockGameClient(helpers.CreateTestIsland(8))
	handler := commands.NewSupplementIslandHandler(newFixture(client, true).deps(), 10, 120)

	// Act
	_, err := handler.Handle(authedContext(), &commands.SupplementIslandCommand{IslandID: 8, Amount: -5})

	// Assert
	var validationErr *shared.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Empty(t, client.Calls())
}

func TestSingleIslandCommands_RequireSession(t *testing.T) {
	client := helpers.NewMockGameClient(helpers.CreateTestIsland(1))
	deps := newFixture(client, true).deps()

	_, err := commands.NewStartIslandHandler(deps).Handle(context.Background(), &commands.StartIslandCommand{IslandID: 1})
	assert.ErrorIs(t, err, shared.ErrNoSession)

	_, err = commands.NewCollectIslandHandler(deps).Handle(context.Background(), &commands.CollectIslandCommand{IslandID: 1})
	assert.ErrorIs(t, err, shared.ErrNoSession)

	_, err = commands.NewSupplementIslandHandler(deps, 10, 120).Handle(context.Background(), &commands.SupplementIslandCommand{IslandID: 1})
	assert.ErrorIs(t, err, shared.ErrNoSession)
}

func callNames(calls []helpers.GameCall) []string {
	names := make([]string, len(calls))
	for i, c := range calls {
		names[i] = c.String()
	}
	return names
}
