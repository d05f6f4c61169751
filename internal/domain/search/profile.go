package search

import "fmt"

// Occupation is the worker category that decides which output a bonus applies to
type Occupation string

const (
	OccupationAgriculture Occupation = "AGRICULTURE"
	OccupationForestry    Occupation = "FORESTRY"
	OccupationMining      Occupation = "MINING"
)

// DisplayName returns the label shown for an occupation; unknown codes are shown as-is
func (o Occupation) DisplayName() string {
	switch o {
	case OccupationAgriculture:
		return "Agriculture"
	case OccupationForestry:
		return "Forestry"
	case OccupationMining:
		return "Mining"
	default:
		return string(o)
	}
}

// BonusLabel names the output a worker of this occupation boosts
func (o Occupation) BonusLabel() string {
	switch o {
	case OccupationAgriculture:
		return "food output"
	case OccupationForestry:
		return "wood output"
	case OccupationMining:
		return "ore output"
	default:
		return ""
	}
}

// Worker is a hero contributing to searches
type Worker struct {
	ID         int64
	Name       string
	Title      string
	Occupation Occupation
	Hobby      float64 // bonus fraction, 0.1 means +10%
	Working    bool
}

// BonusText returns "+10% ore output", or "" when the worker adds nothing
func (w Worker) BonusText() string {
	label := w.Occupation.BonusLabel()
	if label == "" || w.Hobby <= 0 {
		return ""
	}
	return fmt.Sprintf("+%s %s", FormatPercent(w.Hobby), label)
}

// Profile is a snapshot of the search feature for the current session.
// It is fetched before and after every batch and never patched locally.
type Profile struct {
	FreeTotalSearchNum     int
	TodayFreeSearchNum     int
	TodayUsedSearchNum     int
	RemainingFreeSearchNum int
	TicketNum              int

	OutputName  string
	OutputType  string
	Output      float64
	OutputToday float64
	Addition    float64

	Workers []Worker
}

// Remaining returns the free searches left today, never negative
func (p *Profile) Remaining() int {
	if p == nil || p.RemainingFreeSearchNum < 0 {
		return 0
	}
	return p.RemainingFreeSearchNum
}

// Eligible reports whether a batch of free searches can run
func (p *Profile) Eligible() bool {
	return p.Remaining() > 0
}

// FormatPercent renders a fraction as a whole percentage ("0.15" -> "15%")
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.0f%%", value*100)
}
