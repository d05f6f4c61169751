package island

import (
	"fmt"
	"math"
	"time"
)

const (
	// RunwayHours is the production window supplements aim to cover
	RunwayHours = 24

	// DefaultResourceCap is the fixed threshold used by the single-island
	// replenishment check
	DefaultResourceCap = 120

	// TimestampLayout is the compact backend timestamp format (YYYYMMDDHHMMSS)
	TimestampLayout = "20060102150405"
)

// EffectiveRate returns the consumption rate in force: the real rate when it is
// positive, otherwise the base rate. Callers must never read a raw rate field.
func EffectiveRate(realRate, baseRate float64) float64 {
	if realRate > 0 {
		return realRate
	}
	return baseRate
}

// RemainingHours returns how long the resource lasts at the effective rate.
// A non-positive rate yields 0.
func RemainingHours(resource, realRate, baseRate float64) float64 {
	rate := EffectiveRate(realRate, baseRate)
	if rate <= 0 {
		return 0
	}
	return resource / rate
}

// CurrencyNeededFor24h returns the currency units that must be spent so the
// resource covers RunwayHours at the effective rate. Rounds up: a supplement
// must never come up short.
func CurrencyNeededFor24h(resource, replenishRatio, realRate, baseRate float64) int {
	rate := EffectiveRate(realRate, baseRate)
	if rate <= 0 || replenishRatio <= 0 {
		return 0
	}

	shortfall := rate*RunwayHours - resource
	if shortfall <= 0 {
		return 0
	}

	return int(math.Ceil(shortfall / replenishRatio))
}

// ResourceShortfallToCap returns max(0, limit - resource)
func ResourceShortfallToCap(resource, limit float64) float64 {
	needed := limit - resource
	if needed > 0 {
		return needed
	}
	return 0
}

// ParseTimestamp parses a YYYYMMDDHHMMSS timestamp in now's location.
// Empty, short, or unparseable input is treated as now.
func ParseTimestamp(value string, now time.Time) time.Time {
	if len(value) < len(TimestampLayout) {
		return now
	}

	t, err := time.ParseInLocation(TimestampLayout, value[:len(TimestampLayout)], now.Location())
	if err != nil {
		return now
	}
	return t
}

// Duration is an elapsed time floored to whole hours and minutes
type Duration struct {
	Hours   int
	Minutes int
}

// String renders the duration as "3h25m"
func (d Duration) String() string {
	return fmt.Sprintf("%dh%02dm", d.Hours, d.Minutes)
}

// ElapsedDuration returns the time since start, floored to whole units.
// Missing timestamps and future timestamps (clock skew) yield zero.
func ElapsedDuration(start string, now time.Time) Duration {
	if start == "" {
		return Duration{}
	}

	diff := now.Sub(ParseTimestamp(start, now))
	if diff < 0 {
		return Duration{}
	}

	return Duration{
		Hours:   int(diff / time.Hour),
		Minutes: int((diff % time.Hour) / time.Minute),
	}
}
