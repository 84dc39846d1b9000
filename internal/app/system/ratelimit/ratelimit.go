// internal/app/system/ratelimit/ratelimit.go
//
// Package ratelimit guards the email sign-in form against password
// guessing. Attempts are counted per client IP and per target account in
// fixed windows held in process memory.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/cyberhub/internal/app/system/normalize"
)

// Default login limits: a single address may try a handful of accounts,
// a single account stays guessable only a few times per window.
const (
	DefaultIPLimit     = 20
	DefaultIPWindow    = time.Minute
	DefaultEmailLimit  = 5
	DefaultEmailWindow = 5 * time.Minute
)

type bucket struct {
	count   int
	resetAt time.Time
}

// counter is a fixed-window attempt counter keyed by string. Safe for
// concurrent use. Expired buckets are swept inline on later attempts.
type counter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string]bucket
	sweepAt time.Time
}

func newCounter(limit int, window time.Duration) *counter {
	return &counter{
		limit:   limit,
		window:  window,
		buckets: make(map[string]bucket),
		sweepAt: time.Now().Add(window),
	}
}

// allow counts one attempt for key and reports whether it stays within
// the limit.
func (c *counter) allow(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if now.After(c.sweepAt) {
		for k, b := range c.buckets {
			if now.After(b.resetAt) {
				delete(c.buckets, k)
			}
		}
		c.sweepAt = now.Add(c.window)
	}

	b, ok := c.buckets[key]
	if !ok || now.After(b.resetAt) {
		c.buckets[key] = bucket{count: 1, resetAt: now.Add(c.window)}
		return true
	}
	if b.count >= c.limit {
		return false
	}
	b.count++
	c.buckets[key] = b
	return true
}

func (c *counter) reset(key string) {
	c.mu.Lock()
	delete(c.buckets, key)
	c.mu.Unlock()
}

// LoginLimiter combines the two counters the login POST consults: the IP
// counter catches wide guessing from one address, the account counter
// catches a targeted account even when attempts arrive from many
// addresses.
type LoginLimiter struct {
	byIP    *counter
	byEmail *counter
}

func NewLoginLimiter() *LoginLimiter {
	return NewLoginLimiterWithConfig(DefaultIPLimit, DefaultIPWindow, DefaultEmailLimit, DefaultEmailWindow)
}

// NewLoginLimiterWithConfig builds a limiter with explicit limits and
// windows. Tests use it to shrink the limits.
func NewLoginLimiterWithConfig(ipLimit int, ipWindow time.Duration, emailLimit int, emailWindow time.Duration) *LoginLimiter {
	return &LoginLimiter{
		byIP:    newCounter(ipLimit, ipWindow),
		byEmail: newCounter(emailLimit, emailWindow),
	}
}

// Check counts the attempt and reports whether it may proceed. The reason
// is user-facing form copy.
func (ll *LoginLimiter) Check(r *http.Request, email string) (bool, string) {
	if !ll.byIP.allow(ClientIP(r)) {
		return false, "Too many sign-in attempts. Please wait a minute and try again."
	}
	if email != "" && !ll.byEmail.allow(normalize.Email(email)) {
		return false, "Too many sign-in attempts for this account. Please wait a few minutes."
	}
	return true, ""
}

// ResetEmail clears the account counter after a successful sign-in.
func (ll *LoginLimiter) ResetEmail(email string) {
	if email != "" {
		ll.byEmail.reset(normalize.Email(email))
	}
}

// ClientIP returns the originating client address, preferring the
// forwarding headers set by a reverse proxy over RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
