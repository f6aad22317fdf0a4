package config

import (
	"time"

	"github.com/spf13/viper"
)

// RateLimitConfig caps requests per client IP within Window. A negative Limit disables limiting.
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

func newRateLimitConfig(v *viper.Viper) *RateLimitConfig {
	return &RateLimitConfig{
		Limit:  v.GetInt("rate_limit"),
		Window: v.GetDuration("rate_limit_window"),
	}
}

func (c *RateLimitConfig) Unlimited() bool {
	return c.Limit < 0
}
