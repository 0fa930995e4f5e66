package constants

import "time"

// Server Timeouts
const (
	DefaultReadTimeout     = 5 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
)

// Database Timeouts
const (
	DBConnectionTimeout  = 10 * time.Second
	DBHealthCheckTimeout = 5 * time.Second
)

// Advisor Timeouts
const (
	DefaultAdvisorTimeout = 20 * time.Second
)

// Rate limiter housekeeping
const (
	RateLimiterCleanupInterval = 10 * time.Minute
	RateLimiterIdleExpiry      = 30 * time.Minute
)
