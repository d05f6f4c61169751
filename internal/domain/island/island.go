package island

import "time"

// Status is the production state of an island
type Status int

const (
	StatusNotStarted Status = iota
	StatusProducing
	StatusStopped
)

// ParseStatus maps the backend status code onto Status
func ParseStatus(code string) Status {
	switch code {
	case "UN_USE":
		return StatusNotStarted
	case "DOING":
		return StatusProducing
	default:
		return StatusStopped
	}
}

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "NOT_STARTED"
	case StatusProducing:
		return "PRODUCING"
	default:
		return "STOPPED"
	}
}

// Island is a production base owned by the player. Snapshots are fetched from
// the backend and never mutated locally; after any operation the whole list is
// fetched again.
type Island struct {
	ID     int64
	NFTID  int64
	Title  string
	Number string

	Resource         float64
	ResourceLimit    float64
	ResourceRate     float64 // base consumption per hour
	RealResourceRate float64 // consumption in force for the current run, 0 when not started
	SupplementRate   float64 // resource units gained per currency unit

	ProduceNum   float64 // collectible output
	ProduceLimit float64
	ProduceRate  float64

	Status       Status
	StatusDetail string
	StartTime    string
	EndTime      string
}

// EffectiveRate returns the consumption rate used for projections
func (i *Island) EffectiveRate() float64 {
	return EffectiveRate(i.RealResourceRate, i.ResourceRate)
}

// RemainingHours projects how long the current resource lasts
func (i *Island) RemainingHours() float64 {
	return RemainingHours(i.Resource, i.RealResourceRate, i.ResourceRate)
}

// CurrencyNeededFor24h returns the supplement required for a 24 hour runway
func (i *Island) CurrencyNeededFor24h() int {
	return CurrencyNeededFor24h(i.Resource, i.SupplementRate, i.RealResourceRate, i.ResourceRate)
}

// ShortfallToCap returns the resource missing to reach DefaultResourceCap
func (i *Island) ShortfallToCap() float64 {
	return ResourceShortfallToCap(i.Resource, DefaultResourceCap)
}

// HasOutput reports whether there is anything to collect
func (i *Island) HasOutput() bool {
	return i.ProduceNum > 0
}

// IsNotStarted reports whether the island still needs a start call
func (i *Island) IsNotStarted() bool {
	return i.Status == StatusNotStarted
}

// RunningDuration returns the elapsed time since the island was started
func (i *Island) RunningDuration(now time.Time) Duration {
	return ElapsedDuration(i.StartTime, now)
}

// IsExpired reports whether the island's end time is already behind now
func (i *Island) IsExpired(now time.Time) bool {
	if i.EndTime == "" {
		return false
	}
	return now.After(ParseTimestamp(i.EndTime, now))
}

// FindByID returns the island with the given ID, or nil
func FindByID(islands []*Island, id int64) *Island {
	for _, isl := range islands {
		if isl.ID == id {
			return isl
		}
	}
	return nil
}

// WithOutput filters islands that have collectible output
func WithOutput(islands []*Island) []*Island {
	var out []*Island
	for _, isl := range islands {
		if isl.HasOutput() {
			out = append(out, isl)
		}
	}
	return out
}

// TotalOutput sums collectible output across islands
func TotalOutput(islands []*Island) float64 {
	total := 0.0
	for _, isl := range islands {
		total += isl.ProduceNum
	}
	return total
}
