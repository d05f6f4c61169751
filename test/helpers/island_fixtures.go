package helpers

import (
	"fmt"
	"time"

	"github.com/andrescamacho/eartask-go/internal/domain/island"
	"github.com/andrescamacho/eartask-go/internal/domain/search"
)

// TestNow is four hours after the default StartTime of CreateTestIsland
var TestNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)

// CreateTestIsland builds a producing island with sensible defaults
func CreateTestIsland(id int64) *island.Island {
	return &island.Island{
		ID:               id,
		NFTID:            1000 + id,
		Title:            fmt.Sprintf("Island-%d", id),
		Number:           fmt.Sprintf("#%03d", id),
		Resource:         200,
		ResourceLimit:    500,
		ResourceRate:     5,
		RealResourceRate: 5,
		SupplementRate:   2,
		Status:           island.StatusProducing,
		StartTime:        "20240101080000",
	}
}

// CreateIdleIsland builds a never-started island; its real rate is zero
func CreateIdleIsland(id int64) *island.Island {
	isl := CreateTestIsland(id)
	isl.Status = island.StatusNotStarted
	isl.RealResourceRate = 0
	isl.StartTime = ""
	return isl
}

// WithResource sets resource, base rate, real rate and replenish ratio
func WithResource(isl *island.Island, resource, baseRate, realRate, ratio float64) *island.Island {
	isl.Resource = resource
	isl.ResourceRate = baseRate
	isl.RealResourceRate = realRate
	isl.SupplementRate = ratio
	return isl
}

// WithOutput sets the collectible output
func WithOutput(isl *island.Island, output float64) *island.Island {
	isl.ProduceNum = output
	return isl
}

// CreateTestSearchProfile builds a profile with remaining free searches
func CreateTestSearchProfile(remaining int) *search.Profile {
	return &search.Profile{
		FreeTotalSearchNum:     10,
		TodayFreeSearchNum:     10,
		TodayUsedSearchNum:     10 - remaining,
		RemainingFreeSearchNum: remaining,
		OutputName:             "Ore",
		OutputType:             "TIN",
		Output:                 1.5,
		Workers: []search.Worker{
			{ID: 1, Name: "Miner", Occupation: search.OccupationMining, Hobby: 0.1, Working: true},
		},
	}
}
