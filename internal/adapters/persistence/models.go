package persistence

import (
	"time"
)

// SessionModel represents the sessions table.
// Only one row is ever stored: the active login.
type SessionModel struct {
	ID         int       `gorm:"column:id;primaryKey"`
	Phone      string    `gorm:"column:phone;not null"`
	Token      string    `gorm:"column:token;not null"`
	UserDetail string    `gorm:"column:user_detail;type:text"` // JSON as text
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

func (SessionModel) TableName() string {
	return "sessions"
}

// BatchRunModel represents the batch_runs table
type BatchRunModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Kind         string    `gorm:"column:kind;not null;index"`
	Total        int       `gorm:"column:total;not null"`
	SuccessCount int       `gorm:"column:success_count;not null;default:0"`
	FailCount    int       `gorm:"column:fail_count;not null;default:0"`
	StoppedEarly bool      `gorm:"column:stopped_early;not null;default:false"`
	StartedAt    time.Time `gorm:"column:started_at;not null;index"`
	FinishedAt   time.Time `gorm:"column:finished_at;not null"`
}

func (BatchRunModel) TableName() string {
	return "batch_runs"
}
