package steps

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/eartask-go/internal/application/auth"
	"github.com/andrescamacho/eartask-go/internal/application/batch"
	islandCommands "github.com/andrescamacho/eartask-go/internal/application/island/commands"
	"github.com/andrescamacho/eartask-go/internal/application/island/services"
	searchCommands "github.com/andrescamacho/eartask-go/internal/application/search/commands"
	domainBatch "github.com/andrescamacho/eartask-go/internal/domain/batch"
	"github.com/andrescamacho/eartask-go/internal/domain/shared"
	"github.com/andrescamacho/eartask-go/test/helpers"
)

// workflowContext drives the island and search orchestrators against a mock
// backend. Both feature files share it so the session and notification steps
// exist once.
type workflowContext struct {
	ctx      context.Context
	client   *helpers.MockGameClient
	notifier *helpers.FakeNotifier
	prompter *helpers.FakePrompter
	runs     *helpers.MockRunRepository
	clock    *shared.MockClock
	err      error
}

func (wc *workflowContext) reset() {
	wc.ctx = context.Background()
	wc.client = helpers.NewMockGameClient()
	wc.notifier = helpers.NewFakeNotifier()
	wc.prompter = helpers.NewFakePrompter(true)
	wc.runs = helpers.NewMockRunRepository()
	wc.clock = shared.NewMockClock(helpers.TestNow)
	wc.err = nil
}

func (wc *workflowContext) workflowDeps() services.WorkflowDeps {
	return services.WorkflowDeps{
		Client:      wc.client,
		Prompter:    wc.prompter,
		Notifier:    wc.notifier,
		Clock:       wc.clock,
		Busy:        &batch.BusyFlag{},
		Runs:        wc.runs,
		PacingDelay: batch.DefaultPacingDelay,
	}
}

// Given steps

func (wc *workflowContext) iAmLoggedIn() error {
	wc.ctx = auth.WithSessionToken(wc.ctx, "bdd-token")
	return nil
}

func (wc *workflowContext) iHaveFreeSearchesLeft(remaining int) error {
	wc.client.Profile = helpers.CreateTestSearchProfile(remaining)
	return nil
}

func (wc *workflowContext) searchesFail(list string) error {
	failing := parseNumbers(list)
	wc.client.SearchFunc = func(attempt int) (bool, error) {
		return !failing[int64(attempt)], nil
	}
	return nil
}

func (wc *workflowContext) aProducingIsland(id int64, resource, rate float64) error {
	wc.client.Islands = append(wc.client.Islands,
		helpers.WithResource(helpers.CreateTestIsland(id), resource, rate, rate, 2))
	return nil
}

func (wc *workflowContext) aProducingIslandWithOutput(id int64, resource, rate, output float64) error {
	wc.client.Islands = append(wc.client.Islands,
		helpers.WithOutput(helpers.WithResource(helpers.CreateTestIsland(id), resource, rate, rate, 2), output))
	return nil
}

func (wc *workflowContext) anIdleIsland(id int64, resource, rate, output float64) error {
	wc.client.Islands = append(wc.client.Islands,
		helpers.WithOutput(helpers.WithResource(helpers.CreateIdleIsland(id), resource, rate, 0, 2), output))
	return nil
}

func (wc *workflowContext) supplementsToIslandFail(id int64) error {
	wc.client.SupplementFunc = func(islandID int64, amount int) (bool, error) {
		if islandID == id {
			return false, shared.NewAPIError(-1, "insufficient balance")
		}
		return true, nil
	}
	return nil
}

// When steps

func (wc *workflowContext) iRunTheBatchSearch() error {
	runner := batch.NewRunner(batch.RunnerConfig{
		Kind:        domainBatch.KindSearch,
		Label:       "Search",
		PacingDelay: batch.DefaultPacingDelay,
	}, wc.clock, wc.notifier)
	handler := searchCommands.NewRunBatchSearchHandler(wc.client, runner, wc.notifier, wc.runs, wc.clock)
	_, wc.err = handler.Handle(wc.ctx, &searchCommands.RunBatchSearchCommand{})
	return nil
}

func (wc *workflowContext) iSupplementAndStartAllIslands(answer string) error {
	wc.prompter.Answer = answer == "confirm"
	handler := islandCommands.NewSupplementAndStartAllHandler(wc.workflowDeps())
	_, wc.err = handler.Handle(wc.ctx, &islandCommands.SupplementAndStartAllCommand{})
	return nil
}

func (wc *workflowContext) iCollectAllIslands(answer string) error {
	wc.prompter.Answer = answer == "confirm"
	handler := islandCommands.NewCollectAllHandler(wc.workflowDeps())
	_, wc.err = handler.Handle(wc.ctx, &islandCommands.CollectAllCommand{})
	return nil
}

// Then steps

func (wc *workflowContext) searchesShouldHaveBeenAttempted(expected int) error {
	if err := wc.noError(); err != nil {
		return err
	}
	if got := wc.client.CountCalls("Search"); got != expected {
		return fmt.Errorf("expected %d searches, got %d", expected, got)
	}
	return nil
}

func (wc *workflowContext) theFinalNotificationShouldBe(expected string) error {
	last, ok := wc.notifier.Last()
	if !ok {
		return fmt.Errorf("expected notification '%s', got none", expected)
	}
	if last.Message != expected {
		return fmt.Errorf("expected final notification '%s', got '%s'", expected, last.Message)
	}
	return nil
}

func (wc *workflowContext) iShouldBeNotified(expected string) error {
	for _, msg := range wc.notifier.Messages() {
		if msg == expected {
			return nil
		}
	}
	return fmt.Errorf("notification '%s' not found in %v", expected, wc.notifier.Messages())
}

func (wc *workflowContext) theRunShouldBeRecordedAsStoppedEarly() error {
	if len(wc.runs.Runs) != 1 {
		return fmt.Errorf("expected 1 recorded run, got %d", len(wc.runs.Runs))
	}
	if !wc.runs.Runs[0].StoppedEarly {
		return fmt.Errorf("expected the run to be stopped early")
	}
	return nil
}

func (wc *workflowContext) theSearchProfileShouldHaveBeenFetched(expected int) error {
	if got := wc.client.CountCalls("GetSearchProfile"); got != expected {
		return fmt.Errorf("expected %d profile fetches, got %d", expected, got)
	}
	return nil
}

func (wc *workflowContext) theCallsShouldBe(expected string) error {
	if err := wc.noError(); err != nil {
		return err
	}
	var names []string
	for _, call := range wc.client.MutatingCalls() {
		names = append(names, call.String())
	}
	if got := strings.Join(names, ", "); got != expected {
		return fmt.Errorf("expected calls '%s', got '%s'", expected, got)
	}
	return nil
}

func (wc *workflowContext) noIslandShouldHaveBeenChanged() error {
	if err := wc.noError(); err != nil {
		return err
	}
	if calls := wc.client.MutatingCalls(); len(calls) > 0 {
		return fmt.Errorf("expected no mutating calls, got %v", calls)
	}
	return nil
}

func (wc *workflowContext) theIslandsShouldHaveBeenFetched(expected int) error {
	if got := wc.client.CountCalls("ListIslands"); got != expected {
		return fmt.Errorf("expected %d island fetches, got %d", expected, got)
	}
	return nil
}

func (wc *workflowContext) noError() error {
	if wc.err != nil {
		return fmt.Errorf("unexpected error: %w", wc.err)
	}
	return nil
}

var numberPattern = regexp.MustCompile(`\d+`)

// parseNumbers reads "2, 3 and 4" into a set
func parseNumbers(list string) map[int64]bool {
	out := make(map[int64]bool)
	for _, match := range numberPattern.FindAllString(list, -1) {
		n, _ := strconv.ParseInt(match, 10, 64)
		out[n] = true
	}
	return out
}

func InitializeWorkflowScenario(ctx *godog.ScenarioContext) {
	wc := &workflowContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		wc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^I am logged in$`, wc.iAmLoggedIn)
	ctx.Step(`^I have (\d+) free searches left$`, wc.iHaveFreeSearchesLeft)
	ctx.Step(`^searches ([0-9, and]+) fail$`, wc.searchesFail)
	ctx.Step(`^a producing island (\d+) with resource ([0-9.]+) and rate ([0-9.]+)$`, wc.aProducingIsland)
	ctx.Step(`^a producing island (\d+) with resource ([0-9.]+) and rate ([0-9.]+) and output ([0-9.]+)$`, wc.aProducingIslandWithOutput)
	ctx.Step(`^an idle island (\d+) with resource ([0-9.]+), rate ([0-9.]+) and output ([0-9.]+)$`, wc.anIdleIsland)
	ctx.Step(`^supplements to island (\d+) fail$`, wc.supplementsToIslandFail)

	// When steps
	ctx.Step(`^I run the batch search$`, wc.iRunTheBatchSearch)
	ctx.Step(`^I supplement and start all islands and (confirm|decline)$`, wc.iSupplementAndStartAllIslands)
	ctx.Step(`^I collect all islands and (confirm|decline)$`, wc.iCollectAllIslands)

	// Then steps
	ctx.Step(`^(\d+) searches should have been attempted$`, wc.searchesShouldHaveBeenAttempted)
	ctx.Step(`^the final notification should be "([^"]*)"$`, wc.theFinalNotificationShouldBe)
	ctx.Step(`^I should be notified "([^"]*)"$`, wc.iShouldBeNotified)
	ctx.Step(`^the run should be recorded as stopped early$`, wc.theRunShouldBeRecordedAsStoppedEarly)
	ctx.Step(`^the search profile should have been fetched (\d+) times$`, wc.theSearchProfileShouldHaveBeenFetched)
	ctx.Step(`^the calls should be "([^"]*)"$`, wc.theCallsShouldBe)
	ctx.Step(`^no island should have been changed$`, wc.noIslandShouldHaveBeenChanged)
	ctx.Step(`^the islands should have been fetched (\d+) times$`, wc.theIslandsShouldHaveBeenFetched)
}

