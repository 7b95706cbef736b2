package crawl

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/wikicrawl"
	"golang.org/x/time/rate"
)

var _ wikicrawl.HostLimiter = (*HostLimiter)(nil)

// HostLimiter holds one token bucket per host. A crawl stays on one site, so
// in practice it caps the request rate of a whole level; the pause between
// levels is handled by Crawler.Delay.
type HostLimiter struct {
	limit rate.Limit

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewHostLimiter allows rps requests per second to each host, without
// bursts. A non-positive rps disables limiting.
func NewHostLimiter(rps float64) *HostLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &HostLimiter{
		limit:   limit,
		buckets: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until host's bucket has a token. Host names differing only in
// case, a trailing dot or an explicit default port share a bucket.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	if h.limit == rate.Inf {
		return ctx.Err()
	}
	return h.bucket(hostKey(host)).Wait(ctx)
}

func (h *HostLimiter) bucket(key string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, ok := h.buckets[key]
	if !ok {
		b = rate.NewLimiter(h.limit, 1)
		h.buckets[key] = b
	}
	return b
}

func hostKey(host string) string {
	host = strings.ToLower(host)
	host = strings.TrimSuffix(host, ":80")
	host = strings.TrimSuffix(host, ":443")
	return strings.TrimSuffix(host, ".")
}
