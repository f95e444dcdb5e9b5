package bda

import "time"

// MaxBackoff caps a single wait at the longest a Lambda invocation can run
const MaxBackoff = 15 * time.Minute

// RetryPolicy bounds submit-and-wait attempts with exponential backoff
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultRetryPolicy is three attempts with 1s, 2s backoff between them
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second}
}

// Next decides what happens after zero-indexed attempt failed.
// wait is BaseDelay * 2^attempt, capped at MaxBackoff. MaxAttempts below 1 behaves as 1.
func (p RetryPolicy) Next(attempt int) (retry bool, wait time.Duration) {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if attempt < 0 || attempt >= maxAttempts-1 {
		return false, 0
	}
	wait = p.BaseDelay
	for i := 0; i < attempt && wait < MaxBackoff; i++ {
		wait *= 2
	}
	return true, min(wait, MaxBackoff)
}
