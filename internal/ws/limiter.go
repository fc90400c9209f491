package ws

import (
	"sync"
	"time"
)

// limiter is a fixed-window counter for one session's inbound messages.
type limiter struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	start  time.Time
	count  int
}

func newLimiter(max int, window time.Duration) *limiter {
	return &limiter{max: max, window: window}
}

func (l *limiter) Allow() bool {
	if l == nil || l.max <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.start) > l.window {
		l.start = now
		l.count = 0
	}
	l.count++
	return l.count <= l.max
}
