package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/andrescamacho/eartask-go/internal/domain/island"
)

// SupplementItem is one island that needs currency for a 24h runway
type SupplementItem struct {
	Island *island.Island
	Amount int
}

// SupplementStartPlan lists the work of a supplement-and-start-all run
type SupplementStartPlan struct {
	Supplements   []SupplementItem
	Starts        []*island.Island
	TotalCurrency int
}

// PlanSupplementAndStart computes, per island, the currency needed for a 24h
// runway, and separately collects the islands that were never started.
func PlanSupplementAndStart(islands []*island.Island) SupplementStartPlan {
	var plan SupplementStartPlan
	for _, isl := range islands {
		if amount := isl.CurrencyNeededFor24h(); amount > 0 {
			plan.Supplements = append(plan.Supplements, SupplementItem{Island: isl, Amount: amount})
			plan.TotalCurrency += amount
		}
		if isl.IsNotStarted() {
			plan.Starts = append(plan.Starts, isl)
		}
	}
	return plan
}

// Empty reports whether there is nothing to do
func (p SupplementStartPlan) Empty() bool {
	return len(p.Supplements) == 0 && len(p.Starts) == 0
}

// ConfirmationMessage describes both pending actions and their totals
func (p SupplementStartPlan) ConfirmationMessage() string {
	var parts []string
	if len(p.Supplements) > 0 {
		parts = append(parts, fmt.Sprintf("Supplement %d island(s) with %d currency in total for a 24h runway.",
			len(p.Supplements), p.TotalCurrency))
	}
	if len(p.Starts) > 0 {
		withOutput := 0
		for _, isl := range p.Starts {
			if isl.HasOutput() {
				withOutput++
			}
		}
		line := fmt.Sprintf("Start %d idle island(s)", len(p.Starts))
		if withOutput > 0 {
			line += fmt.Sprintf(", collecting pending output from %d first", withOutput)
		}
		parts = append(parts, line+".")
	}
	parts = append(parts, "Continue?")
	return strings.Join(parts, "\n")
}

// StartConfirmationMessage summarises a single-island start
func StartConfirmationMessage(target *island.Island) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Start island %s?\n", target.Title)
	if target.HasOutput() {
		fmt.Fprintf(&b, "Pending output %.2f will be collected first.\n", target.ProduceNum)
	}
	fmt.Fprintf(&b, "Current resource lasts %.1fh.\n", target.RemainingHours())
	if needed := target.CurrencyNeededFor24h(); needed > 0 {
		fmt.Fprintf(&b, "Needs %d currency for a 24h runway.", needed)
	} else {
		b.WriteString("Resource is sufficient for 24h.")
	}
	return b.String()
}

// IslandView is an island with its derived projections
type IslandView struct {
	Island         *island.Island
	RemainingHours float64
	CurrencyNeeded int
	ShortfallToCap float64
	Running        island.Duration
	Expired        bool
}

// BuildViews computes projections for display
func BuildViews(islands []*island.Island, now time.Time) []IslandView {
	views := make([]IslandView, 0, len(islands))
	for _, isl := range islands {
		views = append(views, IslandView{
			Island:         isl,
			RemainingHours: isl.RemainingHours(),
			CurrencyNeeded: isl.CurrencyNeededFor24h(),
			ShortfallToCap: isl.ShortfallToCap(),
			Running:        isl.RunningDuration(now),
			Expired:        isl.IsExpired(now),
		})
	}
	return views
}
