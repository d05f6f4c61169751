package helpers

import (
	"context"
	"fmt"
	"sync"

	"github.com/andrescamacho/eartask-go/internal/domain/island"
	"github.com/andrescamacho/eartask-go/internal/domain/search"
	"github.com/andrescamacho/eartask-go/internal/domain/shared"
	"github.com/andrescamacho/eartask-go/internal/infrastructure/ports"
)

// GameCall records one call made against MockGameClient
type GameCall struct {
	Method   string
	IslandID int64
	Amount   int
	Start    bool
	Token    string
}

func (c GameCall) String() string {
	switch c.Method {
	case "Supplement":
		return fmt.Sprintf("Supplement(%d,%d)", c.IslandID, c.Amount)
	case "Start":
		return fmt.Sprintf("Start(%d,%t)", c.IslandID, c.Start)
	case "Collect":
		return fmt.Sprintf("Collect(%d)", c.IslandID)
	default:
		return c.Method
	}
}

// MockGameClient is a test double for ports.GameClient.
// Mutating calls succeed by default; override with the *Func fields.
type MockGameClient struct {
	mu sync.Mutex

	Islands     []*island.Island
	Profile     *search.Profile
	LoginResult *ports.LoginResult

	// Error injection for fetches
	ListIslandsErr error
	ProfileErr     error
	LoginErr       error

	// Custom function handlers
	CollectFunc    func(id int64) (bool, error)
	SupplementFunc func(id int64, amount int) (bool, error)
	StartFunc      func(id int64, start bool) (bool, error)
	SearchFunc     func(attempt int) (bool, error) // attempt is 1-based

	calls       []GameCall
	searchCount int
}

// NewMockGameClient creates a mock returning the given islands
func NewMockGameClient(islands ...*island.Island) *MockGameClient {
	return &MockGameClient{Islands: islands}
}

func (m *MockGameClient) record(call GameCall) {
	m.calls = append(m.calls, call)
}

// Calls returns every recorded call in order
func (m *MockGameClient) Calls() []GameCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]GameCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallNames returns the String() form of every call in order
func (m *MockGameClient) CallNames() []string {
	calls := m.Calls()
	names := make([]string, len(calls))
	for i, c := range calls {
		names[i] = c.String()
	}
	return names
}

// CountCalls returns how many times method was called
func (m *MockGameClient) CountCalls(method string) int {
	n := 0
	for _, c := range m.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

// MutatingCalls filters out fetches
func (m *MockGameClient) MutatingCalls() []GameCall {
	var out []GameCall
	for _, c := range m.Calls() {
		switch c.Method {
		case "Collect", "Supplement", "Start", "Search":
			out = append(out, c)
		}
	}
	return out
}

func (m *MockGameClient) Login(ctx context.Context, phone, password string) (*ports.LoginResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(GameCall{Method: "Login"})
	if m.LoginErr != nil {
		return nil, m.LoginErr
	}
	if m.LoginResult == nil {
		return nil, shared.NewAPIError(-1, "invalid credentials")
	}
	return m.LoginResult, nil
}

func (m *MockGameClient) ListIslands(ctx context.Context, token string) ([]*island.Island, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(GameCall{Method: "ListIslands", Token: token})
	if m.ListIslandsErr != nil {
		return nil, m.ListIslandsErr
	}
	out := make([]*island.Island, len(m.Islands))
	for i, isl := range m.Islands {
		copied := *isl
		out[i] = &copied
	}
	return out, nil
}

func (m *MockGameClient) CollectIsland(ctx context.Context, id int64, token string) (bool, error) {
	m.mu.Lock()
	m.record(GameCall{Method: "Collect", IslandID: id, Token: token})
	fn := m.CollectFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(id)
	}
	return true, nil
}

func (m *MockGameClient) SupplementIsland(ctx context.Context, id int64, amount int, token string) (bool, error) {
	m.mu.Lock()
	m.record(GameCall{Method: "Supplement", IslandID: id, Amount: amount, Token: token})
	fn := m.SupplementFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(id, amount)
	}
	return true, nil
}

func (m *MockGameClient) StartIsland(ctx context.Context, id int64, start bool, token string) (bool, error) {
	m.mu.Lock()
	m.record(GameCall{Method: "Start", IslandID: id, Start: start, Token: token})
	fn := m.StartFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(id, start)
	}
	return true, nil
}

func (m *MockGameClient) GetSearchProfile(ctx context.Context, token string) (*search.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(GameCall{Method: "GetSearchProfile", Token: token})
	if m.ProfileErr != nil {
		return nil, m.ProfileErr
	}
	if m.Profile == nil {
		return &search.Profile{}, nil
	}
	copied := *m.Profile
	return &copied, nil
}

func (m *MockGameClient) Search(ctx context.Context, token string) (bool, error) {
	m.mu.Lock()
	m.record(GameCall{Method: "Search", Token: token})
	m.searchCount++
	attempt := m.searchCount
	fn := m.SearchFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(attempt)
	}
	return true, nil
}

var _ ports.GameClient = (*MockGameClient)(nil)
