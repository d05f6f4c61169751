package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/eartask-go/internal/domain/search"
)

func TestProfile_Remaining(t *testing.T) {
	tests := []struct {
		name      string
		profile   *search.Profile
		remaining int
		eligible  bool
	}{
		{"some left", &search.Profile{RemainingFreeSearchNum: 4}, 4, true},
		{"none left", &search.Profile{}, 0, false},
		{"negative clamps to zero", &search.Profile{RemainingFreeSearchNum: -2}, 0, false},
		{"nil profile", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.remaining, tt.profile.Remaining())
			assert.Equal(t, tt.eligible, tt.profile.Eligible())
		})
	}
}

func TestWorker_BonusText(t *testing.T) {
	assert.Equal(t, "+10% ore output", search.Worker{Occupation: search.OccupationMining, Hobby: 0.1}.BonusText())
	assert.Equal(t, "+25% food output", search.Worker{Occupation: search.OccupationAgriculture, Hobby: 0.25}.BonusText())
	assert.Equal(t, "", search.Worker{Occupation: search.OccupationForestry}.BonusText())
	assert.Equal(t, "", search.Worker{Occupation: "FISHING", Hobby: 0.1}.BonusText())
}

func TestOccupation_DisplayName(t *testing.T) {
	assert.Equal(t, "Forestry", search.OccupationForestry.DisplayName())
	assert.Equal(t, "FISHING", search.Occupation("FISHING").DisplayName())
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "15%", search.FormatPercent(0.15))
	assert.Equal(t, "0%", search.FormatPercent(0))
}
