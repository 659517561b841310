package sheets

import "golang.org/x/time/rate"

// RateLimitConfig holds client-side pacing for the Sheets API.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimit stays well under Google's 60 requests/min/user quota so a
// burst of repository operations does not trip 429s in the first place.
var DefaultRateLimit = RateLimitConfig{RequestsPerSecond: 0.8, BurstSize: 4}

// NewLimiter creates a token-bucket limiter from the configuration.
func NewLimiter(cfg RateLimitConfig) *rate.Limiter {
	if cfg.RequestsPerSecond <= 0 {
		cfg = DefaultRateLimit
	}
	return rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize)
}
