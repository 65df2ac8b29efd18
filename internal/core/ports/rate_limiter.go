package ports

import "time"

// RateLimitResult is the outcome of one limiter check.
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// RetryAfter returns how long a rejected caller should wait before retrying.
func (r RateLimitResult) RetryAfter(now time.Time) time.Duration {
	if d := r.ResetAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// RateLimitStore is the counter store behind the limiter. Check must be
// atomic per key: two concurrent calls may never both pass the limit.
type RateLimitStore interface {
	Check(key string, interval time.Duration, maxRequests int) RateLimitResult
}

// RateLimiterService exposes the preconfigured buckets for external budgets.
// The comment bucket is keyed per caller address.
type RateLimiterService interface {
	AllowGeneration() RateLimitResult
	AllowVideoLookup() RateLimitResult
	AllowUpload() RateLimitResult
	AllowComment(ip string) RateLimitResult
}
