package config

import "time"

// APIConfig describes how the client talks to the game backend
type APIConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// SignKey is the shared secret mixed into every request signature
	SignKey string `mapstructure:"sign_key" validate:"required"`

	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Timeout bounds one HTTP round trip, not a whole batch
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`
}

// RateLimitConfig is a token bucket applied in front of every HTTP call,
// on top of the batch pacing delay
type RateLimitConfig struct {
	Requests int `mapstructure:"requests" validate:"min=1"`
	Burst    int `mapstructure:"burst" validate:"min=1"`
}
