package extract

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// DomainLimiter rate-limits outbound fetches per target domain, so a batch
// of URLs from one site does not hammer it while fetches to other sites
// proceed unthrottled.
type DomainLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	perSec   rate.Limit
	burst    int
}

// NewDomainLimiter creates a per-domain limiter with the given default rate
func NewDomainLimiter(requestsPerSecond float64, burst int) *DomainLimiter {
	if burst <= 0 {
		burst = 3
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		perSec:   rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// Wait blocks until the domain of rawURL has rate limit clearance
func (l *DomainLimiter) Wait(ctx context.Context, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	return l.forDomain(parsed.Host).Wait(ctx)
}

func (l *DomainLimiter) forDomain(domain string) *rate.Limiter {
	l.mu.RLock()
	limiter, ok := l.limiters[domain]
	l.mu.RUnlock()
	if ok {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if limiter, ok := l.limiters[domain]; ok {
		return limiter
	}
	limiter = rate.NewLimiter(l.perSec, l.burst)
	l.limiters[domain] = limiter
	return limiter
}
