package api

import (
	"github.com/andrescamacho/eartask-go/internal/domain/island"
	"github.com/andrescamacho/eartask-go/internal/domain/search"
	"github.com/andrescamacho/eartask-go/internal/domain/session"
)

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginData struct {
	Token      string             `json:"token"`
	UserDetail session.UserDetail `json:"userDetail"`
}

type pageData[T any] struct {
	Records []T `json:"records"`
	Total   int `json:"total"`
	Size    int `json:"size"`
	Current int `json:"current"`
	Pages   int `json:"pages"`
}

type islandDTO struct {
	ID               int64   `json:"id"`
	NFTID            int64   `json:"nftId"`
	NFTTitle         string  `json:"nftTitle"`
	NumberStr        string  `json:"numberStr"`
	Resource         float64 `json:"resource"`
	ResourceLimit    float64 `json:"resourceLimit"`
	ResourceRate     float64 `json:"resourceRate"`
	RealResourceRate float64 `json:"realResourceRate"`
	SupplementRate   float64 `json:"supplementRate"`
	ProduceNum       float64 `json:"produceNum"`
	ProduceLimit     float64 `json:"produceLimit"`
	ProduceRate      float64 `json:"produceRate"`
	Status           string  `json:"status"`
	StatusDetail     string  `json:"statusDetail"`
	StartTime        string  `json:"startTime"`
	EndTime          string  `json:"endTime"`
}

type collectRequest struct {
	ID int64 `json:"id"`
}

type supplementRequest struct {
	ID      int64 `json:"id"`
	Consume int   `json:"consume"`
}

type searchRequest struct {
	FreeSearch bool `json:"freeSearch"`
}

type workerDTO struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	NFTTitle       string  `json:"nftTitle"`
	Working        bool    `json:"working"`
	OccupationType string  `json:"occupationType"`
	Hobby          float64 `json:"hobby"`
}

type searchPreDTO struct {
	FreeTotalSearchNum     int         `json:"freeTotalSearchNum"`
	TodayFreeSearchNum     int         `json:"todayFreeSearchNum"`
	TodayUsedSearchNum     int         `json:"todayUsedSearchNum"`
	RemainingFreeSearchNum int         `json:"remainingFreeSearchNum"`
	TicketNum              int         `json:"ticketNum"`
	SearchOutputType       string      `json:"searchOutputType"`
	SearchOutputName       string      `json:"searchOutputName"`
	SearchOutput           float64     `json:"searchOutput"`
	SearchOutputToday      float64     `json:"searchOutputToday"`
	SearchAddition         float64     `json:"searchAddition"`
	WorkerList             []workerDTO `json:"workerList"`
}

// islandFromDTO converts a backpack record into the domain snapshot
func islandFromDTO(dto islandDTO) *island.Island {
	return &island.Island{
		ID:               dto.ID,
		NFTID:            dto.NFTID,
		Title:            dto.NFTTitle,
		Number:           dto.NumberStr,
		Resource:         dto.Resource,
		ResourceLimit:    dto.ResourceLimit,
		ResourceRate:     dto.ResourceRate,
		RealResourceRate: dto.RealResourceRate,
		SupplementRate:   dto.SupplementRate,
		ProduceNum:       dto.ProduceNum,
		ProduceLimit:     dto.ProduceLimit,
		ProduceRate:      dto.ProduceRate,
		Status:           island.ParseStatus(dto.Status),
		StatusDetail:     dto.StatusDetail,
		StartTime:        dto.StartTime,
		EndTime:          dto.EndTime,
	}
}

// profileFromDTO converts the searchPre payload into the domain profile
func profileFromDTO(dto searchPreDTO) *search.Profile {
	workers := make([]search.Worker, 0, len(dto.WorkerList))
	for _, w := range dto.WorkerList {
		workers = append(workers, search.Worker{
			ID:         w.ID,
			Name:       w.Name,
			Title:      w.NFTTitle,
			Occupation: search.Occupation(w.OccupationType),
			Hobby:      w.Hobby,
			Working:    w.Working,
		})
	}

	return &search.Profile{
		FreeTotalSearchNum:     dto.FreeTotalSearchNum,
		TodayFreeSearchNum:     dto.TodayFreeSearchNum,
		TodayUsedSearchNum:     dto.TodayUsedSearchNum,
		RemainingFreeSearchNum: dto.RemainingFreeSearchNum,
		TicketNum:              dto.TicketNum,
		OutputName:             dto.SearchOutputName,
		OutputType:             dto.SearchOutputType,
		Output:                 dto.SearchOutput,
		OutputToday:            dto.SearchOutputToday,
		Addition:               dto.SearchAddition,
		Workers:                workers,
	}
}
