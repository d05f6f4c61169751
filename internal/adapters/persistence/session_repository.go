package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/eartask-go/internal/domain/session"
	"github.com/andrescamacho/eartask-go/internal/domain/shared"
)

// activeSessionID is the primary key of the single stored session
const activeSessionID = 1

// GormSessionRepository implements SessionRepository using GORM
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GORM session repository
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// Save replaces the stored session
func (r *GormSessionRepository) Save(ctx context.Context, s *session.Session) error {
	model, err := r.sessionToModel(s)
	if err != nil {
		return fmt.Errorf("failed to convert session to model: %w", err)
	}

	// Upsert: create or update
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Current returns the stored session, or shared.ErrNoSession
func (r *GormSessionRepository) Current(ctx context.Context) (*session.Session, error) {
	var model SessionModel
	result := r.db.WithContext(ctx).Where("id = ?", activeSessionID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNoSession
		}
		return nil, fmt.Errorf("failed to load session: %w", result.Error)
	}

	if model.Token == "" {
		return nil, shared.ErrNoSession
	}

	return r.modelToSession(&model), nil
}

// Clear removes the stored session; clearing an empty store is not an error
func (r *GormSessionRepository) Clear(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("id = ?", activeSessionID).Delete(&SessionModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (r *GormSessionRepository) modelToSession(model *SessionModel) *session.Session {
	var user session.UserDetail
	if model.UserDetail != "" {
		if err := json.Unmarshal([]byte(model.UserDetail), &user); err != nil {
			// A corrupt profile blob still leaves a usable token
			user = session.UserDetail{}
		}
	}

	return &session.Session{
		Phone:     model.Phone,
		Token:     model.Token,
		User:      user,
		CreatedAt: model.CreatedAt,
	}
}

func (r *GormSessionRepository) sessionToModel(s *session.Session) (*SessionModel, error) {
	bytes, err := json.Marshal(s.User)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user detail: %w", err)
	}

	return &SessionModel{
		ID:         activeSessionID,
		Phone:      s.Phone,
		Token:      s.Token,
		UserDetail: string(bytes),
		CreatedAt:  s.CreatedAt,
	}, nil
}
