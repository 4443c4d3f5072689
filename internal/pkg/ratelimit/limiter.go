// Package ratelimit implements sliding-window request admission with
// escalating source blocking. Every client has a window of request
// timestamps; exceeding the per-call policy records a violation against
// the source address, and repeated violations move the address onto a
// blocklist that short-circuits all later admission checks until it is
// manually cleared.
package ratelimit

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/piresc/taxigo/internal/pkg/models"
)

// retentionWindow bounds how long request timestamps survive the sweep,
// independent of any per-route policy window.
const retentionWindow = time.Hour

// sweepBatchSize caps how many clients are pruned per lock acquisition so
// a full-table sweep cannot starve admission checks.
const sweepBatchSize = 256

// Rejection reasons carried on a Decision.
const (
	ReasonLimitExceeded = "rate_limit_exceeded"
	ReasonSourceBlocked = "source_blocked"
)

// Policy is the per-call admission policy. The limiter itself holds no
// route policy; callers parameterize each check.
type Policy struct {
	Limit  int
	Window time.Duration
}

// Decision is the outcome of an admission check.
type Decision struct {
	Allowed    bool
	Reason     string        // set when not allowed
	RetryAfter time.Duration // hint for rejected requests, 0 when blocked
	Remaining  int           // requests left in the window when allowed
	Escalated  bool          // this violation pushed the source onto the blocklist
}

// Stats is a snapshot of limiter-owned counters.
type Stats struct {
	TrackedClients    int `json:"tracked_clients"`
	SuspiciousSources int `json:"suspicious_sources"`
	BlockedSources    int `json:"blocked_sources"`
}

// Limiter tracks request windows per client and violations per source
// address. Safe for concurrent use.
type Limiter struct {
	mu        sync.Mutex
	windows   map[string][]time.Time
	suspicion map[string]int
	blocked   map[string]struct{}
	threshold int

	stopOnce sync.Once
	stop     chan struct{}
	wg       sync.WaitGroup

	sweepInterval time.Duration
	resetInterval time.Duration
}

// NewLimiter creates a limiter from configuration. Zero values fall back
// to the standard thresholds (5 violations, 5 minute sweep, daily reset).
func NewLimiter(cfg models.RateLimitConfig) *Limiter {
	threshold := cfg.SuspicionThreshold
	if threshold <= 0 {
		threshold = 5
	}
	sweep := time.Duration(cfg.SweepInterval) * time.Second
	if sweep <= 0 {
		sweep = 5 * time.Minute
	}
	reset := time.Duration(cfg.ResetInterval) * time.Second
	if reset <= 0 {
		reset = 24 * time.Hour
	}

	return &Limiter{
		windows:       make(map[string][]time.Time),
		suspicion:     make(map[string]int),
		blocked:       make(map[string]struct{}),
		threshold:     threshold,
		stop:          make(chan struct{}),
		sweepInterval: sweep,
		resetInterval: reset,
	}
}

// ClientID derives a stable client identifier from the source address and
// user agent. Distinct users behind the same proxy and user agent share an
// identifier; that ambiguity is inherited and deliberate.
func ClientID(sourceIP, userAgent string) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s:%s", sourceIP, userAgent)))
	return hex.EncodeToString(sum[:])
}

// Admit decides whether a request from clientID/sourceIP at `now` passes
// the given policy. The read-prune-check-append sequence runs atomically
// under the table lock, so two concurrent requests can never both take the
// last slot in a window.
func (l *Limiter) Admit(clientID, sourceIP string, now time.Time, p Policy) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Blocked sources are rejected outright; no window check, no
	// additional violation recorded.
	if _, isBlocked := l.blocked[sourceIP]; isBlocked {
		return Decision{Allowed: false, Reason: ReasonSourceBlocked}
	}

	window := l.pruneLocked(clientID, now.Add(-p.Window))

	if len(window) >= p.Limit {
		l.suspicion[sourceIP]++

		escalated := false
		if l.suspicion[sourceIP] >= l.threshold {
			// Takes effect on the next request from this source; the
			// current rejection is still reported as a plain limit hit.
			l.blocked[sourceIP] = struct{}{}
			escalated = true
		}

		return Decision{
			Allowed:    false,
			Reason:     ReasonLimitExceeded,
			RetryAfter: p.Window,
			Escalated:  escalated,
		}
	}

	l.windows[clientID] = append(window, now)

	return Decision{
		Allowed:   true,
		Remaining: p.Limit - len(l.windows[clientID]),
	}
}

// pruneLocked drops window entries strictly before cutoff; an entry at
// exactly cutoff is still inside the window. Caller holds mu.
func (l *Limiter) pruneLocked(clientID string, cutoff time.Time) []time.Time {
	window := l.windows[clientID]
	kept := 0
	for kept < len(window) && window[kept].Before(cutoff) {
		kept++
	}
	if kept > 0 {
		window = window[kept:]
		if len(window) == 0 {
			delete(l.windows, clientID)
			return nil
		}
		l.windows[clientID] = window
	}
	return window
}

// IsBlocked reports whether a source address is on the blocklist.
func (l *Limiter) IsBlocked(sourceIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, isBlocked := l.blocked[sourceIP]
	return isBlocked
}

// Unblock removes a source address from the blocklist and resets its
// suspicion counter. Returns false when the address was not blocked, so
// callers can distinguish the no-op from a real unblock.
func (l *Limiter) Unblock(sourceIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, isBlocked := l.blocked[sourceIP]; !isBlocked {
		return false
	}

	delete(l.blocked, sourceIP)
	delete(l.suspicion, sourceIP)
	return true
}

// Stats returns a snapshot of the limiter tables.
func (l *Limiter) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Stats{
		TrackedClients:    len(l.windows),
		SuspiciousSources: len(l.suspicion),
		BlockedSources:    len(l.blocked),
	}
}

// Sweep prunes request timestamps older than the retention window and
// removes empty client entries. Clients are processed in bounded batches,
// releasing the lock between batches.
func (l *Limiter) Sweep(now time.Time) {
	cutoff := now.Add(-retentionWindow)

	l.mu.Lock()
	clients := make([]string, 0, len(l.windows))
	for clientID := range l.windows {
		clients = append(clients, clientID)
	}
	l.mu.Unlock()

	for start := 0; start < len(clients); start += sweepBatchSize {
		end := start + sweepBatchSize
		if end > len(clients) {
			end = len(clients)
		}

		l.mu.Lock()
		for _, clientID := range clients[start:end] {
			l.pruneLocked(clientID, cutoff)
		}
		l.mu.Unlock()
	}
}

// ResetSuspicion clears all suspicion counters. Blocked sources stay
// blocked; only the counters leading up to a block are reset.
func (l *Limiter) ResetSuspicion() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.suspicion = make(map[string]int)
}

// StartJanitor launches the background maintenance loop: periodic window
// sweeps plus the daily suspicion reset. Stop terminates it.
func (l *Limiter) StartJanitor() {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		sweepTicker := time.NewTicker(l.sweepInterval)
		defer sweepTicker.Stop()
		resetTicker := time.NewTicker(l.resetInterval)
		defer resetTicker.Stop()

		for {
			select {
			case <-l.stop:
				return
			case now := <-sweepTicker.C:
				l.Sweep(now)
			case <-resetTicker.C:
				l.ResetSuspicion()
			}
		}
	}()
}

// Stop terminates the janitor and waits for it to exit. Idempotent.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
	l.wg.Wait()
}
