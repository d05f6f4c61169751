package island_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/eartask-go/internal/domain/island"
)

func TestEffectiveRate(t *testing.T) {
	tests := []struct {
		name     string
		realRate float64
		baseRate float64
		expected float64
	}{
		{"real rate in force", 6, 5, 6},
		{"not started falls back to base", 0, 5, 5},
		{"negative real rate falls back to base", -1, 5, 5},
		{"both zero", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, island.EffectiveRate(tt.realRate, tt.baseRate))
		})
	}
}

func TestRemainingHours(t *testing.T) {
	assert.Equal(t, 40.0, island.RemainingHours(200, 5, 4))
	assert.Equal(t, 50.0, island.RemainingHours(200, 0, 4))
	assert.Equal(t, 0.0, island.RemainingHours(200, 0, 0))
}

func TestCurrencyNeededFor24h(t *testing.T) {
	tests := []struct {
		name     string
		resource float64
		ratio    float64
		realRate float64
		baseRate float64
		expected int
	}{
		{"exact shortfall", 100, 2, 5, 5, 10},
		{"rounds up", 99, 2, 5, 5, 11},
		{"already covered", 120, 2, 5, 5, 0},
		{"more than covered", 500, 2, 5, 5, 0},
		{"uses base rate when not started", 0, 4, 0, 2, 12},
		{"zero ratio needs nothing", 0, 0, 5, 5, 0},
		{"zero rate needs nothing", 0, 2, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, island.CurrencyNeededFor24h(tt.resource, tt.ratio, tt.realRate, tt.baseRate))
		})
	}
}

func TestResourceShortfallToCap(t *testing.T) {
	assert.Equal(t, 20.0, island.ResourceShortfallToCap(100, 120))
	assert.Equal(t, 0.0, island.ResourceShortfallToCap(120, 120))
	assert.Equal(t, 0.0, island.ResourceShortfallToCap(150, 120))
}

func TestParseTimestamp(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		value    string
		expected time.Time
	}{
		{"valid", "20240101083000", time.Date(2024, 1, 1, 8, 30, 0, 0, time.Local)},
		{"trailing characters ignored", "20240101083000123", time.Date(2024, 1, 1, 8, 30, 0, 0, time.Local)},
		{"empty is now", "", now},
		{"short is now", "2024", now},
		{"garbage is now", "2024XX01083000", now},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.expected.Equal(island.ParseTimestamp(tt.value, now)))
		})
	}
}

func TestElapsedDuration(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		start    string
		expected island.Duration
		text     string
	}{
		{"whole hours", "20240101080000", island.Duration{Hours: 4}, "4h00m"},
		{"floors partial minutes", "20240101083459", island.Duration{Hours: 3, Minutes: 25}, "3h25m"},
		{"more than a day", "20231231100000", island.Duration{Hours: 26}, "26h00m"},
		{"missing start", "", island.Duration{}, "0h00m"},
		{"future start", "20240101130000", island.Duration{}, "0h00m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := island.ElapsedDuration(tt.start, now)
			assert.Equal(t, tt.expected, d)
			assert.Equal(t, tt.text, d.String())
		})
	}
}
