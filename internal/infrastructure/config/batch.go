package config

import "time"

// BatchConfig holds settings shared by the batch workflows
type BatchConfig struct {
	// Delay between consecutive backend calls of one batch
	PacingDelay time.Duration `mapstructure:"pacing_delay" validate:"min=0"`

	// Consecutive failures after which a search batch stops
	MaxConsecutiveFailures int `mapstructure:"max_consecutive_failures" validate:"min=1"`

	// Resource threshold used by the single-island supplement prompt
	ResourceCap int `mapstructure:"resource_cap" validate:"min=1"`

	// Currency spent by a single-island supplement when no amount is given
	DefaultSupplement int `mapstructure:"default_supplement" validate:"min=1"`
}
