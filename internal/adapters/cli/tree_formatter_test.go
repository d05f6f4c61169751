package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/eartask-go/internal/domain/search"
)

func TestTreeFormatter_FormatProfile(t *testing.T) {
	// Arrange
	profile := &search.Profile{
		TodayFreeSearchNum:     10,
		TodayUsedSearchNum:     7,
		RemainingFreeSearchNum: 3,
		TicketNum:              2,
		OutputName:             "Wood",
		Output:                 123,
		OutputToday:            4,
		Addition:               0.15,
		Workers: []search.Worker{
			{Name: "Ada", Title: "Forester", Occupation: search.OccupationForestry, Hobby: 0.1, Working: true},
			{Name: "Bo", Occupation: search.OccupationMining},
		},
	}

	// Act
	out := NewTreeFormatter(false).FormatProfile(profile)

	// Assert
	assert.Equal(t,
		"Free searches: 3 left (7/10 used today)\n"+
			"├── Tickets: 2\n"+
			"├── Output: Wood 123.00 (today 4.00, bonus +15%)\n"+
			"└── Workers (2)\n"+
			"    ├── [working] Ada, Forester (Forestry) +10% wood output\n"+
			"    └── Bo (Mining)\n",
		out)
}

func TestTreeFormatter_ClampsNegativeRemaining(t *testing.T) {
	out := NewTreeFormatter(false).FormatProfile(&search.Profile{RemainingFreeSearchNum: -2})

	assert.Contains(t, out, "Free searches: 0 left")
	assert.Contains(t, out, "└── Workers (0)")
}

func TestTreeFormatter_Colors(t *testing.T) {
	profile := &search.Profile{Workers: []search.Worker{{Name: "Ada", Occupation: search.OccupationMining, Working: true}}}

	out := NewTreeFormatter(true).FormatProfile(profile)

	assert.Contains(t, out, "\033[32m[working] \033[0mAda (Mining)")
}
