package steps

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/eartask-go/internal/domain/island"
)

type projectionContext struct {
	island  *island.Island
	now     time.Time
	elapsed island.Duration

	effectiveRate  float64
	remainingHours float64
	currencyNeeded int
}

func (pc *projectionContext) reset() {
	pc.island = nil
	pc.now = time.Time{}
	pc.elapsed = island.Duration{}
	pc.effectiveRate = 0
	pc.remainingHours = 0
	pc.currencyNeeded = 0
}

// Given steps

func (pc *projectionContext) anIslandWithResourceBaseRateAndRealRate(resource, baseRate, realRate float64) error {
	pc.island = &island.Island{
		ID:               1,
		Resource:         resource,
		ResourceRate:     baseRate,
		RealResourceRate: realRate,
		SupplementRate:   1,
	}
	return nil
}

func (pc *projectionContext) aReplenishRatioOf(ratio float64) error {
	if pc.island == nil {
		return fmt.Errorf("no island available")
	}
	pc.island.SupplementRate = ratio
	return nil
}

func (pc *projectionContext) theCurrentTimeIs(value string) error {
	now, err := time.ParseInLocation(island.TimestampLayout, value, time.Local)
	if err != nil {
		return err
	}
	pc.now = now
	return nil
}

// When steps

func (pc *projectionContext) iProjectTheIsland() error {
	if pc.island == nil {
		return fmt.Errorf("no island available")
	}
	pc.effectiveRate = pc.island.EffectiveRate()
	pc.remainingHours = pc.island.RemainingHours()
	pc.currencyNeeded = pc.island.CurrencyNeededFor24h()
	return nil
}

func (pc *projectionContext) iMeasureTheTimeElapsedSince(start string) error {
	pc.elapsed = island.ElapsedDuration(start, pc.now)
	return nil
}

// Then steps

func (pc *projectionContext) theEffectiveRateShouldBe(expected float64) error {
	return compareFloat("effective rate", expected, pc.effectiveRate)
}

func (pc *projectionContext) theRemainingHoursShouldBe(expected float64) error {
	return compareFloat("remaining hours", expected, pc.remainingHours)
}

func (pc *projectionContext) theCurrencyNeededShouldBe(expected int) error {
	if pc.currencyNeeded != expected {
		return fmt.Errorf("expected currency needed %d, got %d", expected, pc.currencyNeeded)
	}
	return nil
}

func (pc *projectionContext) theElapsedTimeShouldBe(expected string) error {
	if pc.elapsed.String() != expected {
		return fmt.Errorf("expected elapsed '%s', got '%s'", expected, pc.elapsed.String())
	}
	return nil
}

func compareFloat(name string, expected, actual float64) error {
	tolerance := 0.01
	if math.Abs(expected-actual) > tolerance {
		return fmt.Errorf("expected %s %f, got %f", name, expected, actual)
	}
	return nil
}

func InitializeProjectionScenario(ctx *godog.ScenarioContext) {
	pc := &projectionContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		pc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an island with resource ([0-9.]+), base rate ([0-9.]+) and real rate ([0-9.]+)$`, pc.anIslandWithResourceBaseRateAndRealRate)
	ctx.Step(`^a replenish ratio of ([0-9.]+)$`, pc.aReplenishRatioOf)
	ctx.Step(`^the current time is "([^"]*)"$`, pc.theCurrentTimeIs)

	// When steps
	ctx.Step(`^I project the island$`, pc.iProjectTheIsland)
	ctx.Step(`^I measure the time elapsed since "([^"]*)"$`, pc.iMeasureTheTimeElapsedSince)

	// Then steps
	ctx.Step(`^the effective rate should be ([0-9.]+)$`, pc.theEffectiveRateShouldBe)
	ctx.Step(`^the remaining hours should be ([0-9.]+)$`, pc.theRemainingHoursShouldBe)
	ctx.Step(`^the currency needed for 24 hours should be (\d+)$`, pc.theCurrencyNeededShouldBe)
	ctx.Step(`^the elapsed time should be "([^"]*)"$`, pc.theElapsedTimeShouldBe)
}
