package ports

import (
	"context"

	"github.com/andrescamacho/eartask-go/internal/domain/island"
	"github.com/andrescamacho/eartask-go/internal/domain/search"
	"github.com/andrescamacho/eartask-go/internal/domain/session"
)

// LoginResult carries the token and profile issued by the backend
type LoginResult struct {
	Token string
	User  session.UserDetail
}

// GameClient defines operations against the game backend.
// This is in infrastructure/ports because it's an external service interface.
// Failures are *shared.AuthError, *shared.NetworkError or *shared.APIError.
type GameClient interface {
	// Auth
	Login(ctx context.Context, phone, password string) (*LoginResult, error)

	// Island operations; the bool is the backend's own success flag
	ListIslands(ctx context.Context, token string) ([]*island.Island, error)
	CollectIsland(ctx context.Context, id int64, token string) (bool, error)
	SupplementIsland(ctx context.Context, id int64, amount int, token string) (bool, error)
	StartIsland(ctx context.Context, id int64, start bool, token string) (bool, error)

	// Search operations
	GetSearchProfile(ctx context.Context, token string) (*search.Profile, error)
	Search(ctx context.Context, token string) (bool, error)
}
