package session

import (
	"context"
	"time"
)

// UserDetail is the profile record returned by the backend at login
type UserDetail struct {
	ID         int64  `json:"id"`
	Phone      string `json:"userPhone"`
	Name       string `json:"name"`
	InviteCode string `json:"inviteCode"`
	VIPLevel   int    `json:"vipLevel"`
	CreatedAt  string `json:"createTime"`
}

// Session is the locally stored credential of the logged-in user
type Session struct {
	Phone     string
	Token     string
	User      UserDetail
	CreatedAt time.Time
}

// MaskedToken returns the first characters of the token for display
func (s *Session) MaskedToken() string {
	if len(s.Token) <= 8 {
		return "****"
	}
	return s.Token[:8] + "..."
}

// SessionRepository persists the single active session
type SessionRepository interface {
	Save(ctx context.Context, session *Session) error
	// Current returns shared.ErrNoSession when nobody is logged in
	Current(ctx context.Context) (*Session, error)
	Clear(ctx context.Context) error
}
