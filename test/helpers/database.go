package helpers

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/andrescamacho/eartask-go/internal/adapters/persistence"
	"github.com/andrescamacho/eartask-go/internal/domain/session"
	"github.com/andrescamacho/eartask-go/internal/infrastructure/database"
)

// TestPhone is the phone number used by seeded sessions
const TestPhone = "13800000000"

// NewTestDB creates a migrated in-memory SQLite store that is closed when the test ends
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewTestConnection()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})

	return db
}

// NewLoggedInSessionRepository returns a session store that already holds a
// session with the given token
func NewLoggedInSessionRepository(t *testing.T, token string) session.SessionRepository {
	t.Helper()

	repo := persistence.NewGormSessionRepository(NewTestDB(t))
	err := repo.Save(context.Background(), &session.Session{
		Phone:     TestPhone,
		Token:     token,
		User:      session.UserDetail{ID: 1, Phone: TestPhone, Name: "Tester"},
		CreatedAt: TestNow,
	})
	if err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}

	return repo
}
