package designai

import (
	"sync"
	"time"
)

// Refusal reasons returned to API clients.
const (
	reasonMinuteLimit = "Rate limit exceeded. Please wait a minute."
	reasonDailyLimit  = "Daily API limit reached. Please try again tomorrow."
)

// RateLimitStatus - payload of the /rate-limit endpoint.
type RateLimitStatus struct {
	RequestsPerMinuteUsed  int  `json:"requests_per_minute_used"`
	RequestsPerMinuteLimit int  `json:"requests_per_minute_limit"`
	DailyRequestsUsed      int  `json:"daily_requests_used"`
	DailyRequestsLimit     int  `json:"daily_requests_limit"`
	CanMakeRequest         bool `json:"can_make_request"`
}

// RateLimiter enforces the upstream free-tier budget: a sliding one-minute
// window plus a daily counter that resets after 24 hours.
type RateLimiter struct {
	mu                sync.Mutex
	requestsPerMinute int
	requestsPerDay    int
	requestTimes      []time.Time
	dailyRequests     int
	lastReset         time.Time
	now               func() time.Time
}

// NewRateLimiter ...
func NewRateLimiter(requestsPerMinute, requestsPerDay int) *RateLimiter {
	return &RateLimiter{
		requestsPerMinute: requestsPerMinute,
		requestsPerDay:    requestsPerDay,
		lastReset:         time.Now(),
		now:               time.Now,
	}
}

// Allow consumes one request slot. When refused it reports the reason
// without consuming anything.
func (rl *RateLimiter) Allow() (bool, string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()

	if now.Sub(rl.lastReset) >= 24*time.Hour {
		rl.dailyRequests = 0
		rl.lastReset = now
	}
	if rl.dailyRequests >= rl.requestsPerDay {
		return false, reasonDailyLimit
	}
	rl.prune(now)
	if len(rl.requestTimes) >= rl.requestsPerMinute {
		return false, reasonMinuteLimit
	}

	rl.requestTimes = append(rl.requestTimes, now)
	rl.dailyRequests++
	return true, ""
}

// Status reports current usage without consuming a slot.
func (rl *RateLimiter) Status() RateLimitStatus {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	if now.Sub(rl.lastReset) >= 24*time.Hour {
		rl.dailyRequests = 0
		rl.lastReset = now
	}
	rl.prune(now)
	recent := len(rl.requestTimes)
	return RateLimitStatus{
		RequestsPerMinuteUsed:  recent,
		RequestsPerMinuteLimit: rl.requestsPerMinute,
		DailyRequestsUsed:      rl.dailyRequests,
		DailyRequestsLimit:     rl.requestsPerDay,
		CanMakeRequest:         recent < rl.requestsPerMinute && rl.dailyRequests < rl.requestsPerDay,
	}
}

// prune drops window entries older than one minute. Callers hold the lock.
func (rl *RateLimiter) prune(now time.Time) {
	minuteAgo := now.Add(-time.Minute)
	kept := rl.requestTimes[:0]
	for _, t := range rl.requestTimes {
		if t.After(minuteAgo) {
			kept = append(kept, t)
		}
	}
	rl.requestTimes = kept
}
