package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// windowEntry tracks requests from one client IP inside a fixed window.
type windowEntry struct {
	count     int
	windowEnd time.Time
}

// WindowLimiter counts requests per client IP in fixed windows. Expired
// entries are swept from Allow, so a limiter owns no goroutine and is
// released with the engine that uses it.
type WindowLimiter struct {
	mu        sync.Mutex
	entries   map[string]*windowEntry
	limit     int
	window    time.Duration
	nextSweep time.Time
	now       func() time.Time
}

func NewWindowLimiter(limit int, window time.Duration) *WindowLimiter {
	return &WindowLimiter{
		entries: make(map[string]*windowEntry),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow records one request from ip and reports whether it is within the
// limit, plus the end of the current window.
func (l *WindowLimiter) Allow(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.After(l.nextSweep) {
		if purged := l.purgeLocked(now); purged > 0 {
			log.Debug().Int("entries_purged", purged).Msg("rate limiter map purged")
		}
		l.nextSweep = now.Add(sweepInterval)
	}
	entry, ok := l.entries[ip]
	if !ok || now.After(entry.windowEnd) {
		entry = &windowEntry{windowEnd: now.Add(l.window)}
		l.entries[ip] = entry
	}
	entry.count++
	return entry.count <= l.limit, entry.windowEnd
}

// Purge drops entries whose window has ended and returns how many went.
func (l *WindowLimiter) Purge() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.purgeLocked(l.now())
}

func (l *WindowLimiter) purgeLocked(now time.Time) int {
	purged := 0
	for ip, entry := range l.entries {
		if now.After(entry.windowEnd) {
			delete(l.entries, ip)
			purged++
		}
	}
	return purged
}

// Handler aborts with 429 once the client exceeds the limit.
func (l *WindowLimiter) Handler(msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, windowEnd := l.Allow(c.ClientIP())
		if !ok {
			retry := int(windowEnd.Sub(l.now()).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
			return
		}
		c.Next()
	}
}

const sweepInterval = 5 * time.Minute

// LoginRateLimiter limits login and register attempts to 20 per minute per IP.
// Routes sharing the returned handler share one budget.
func LoginRateLimiter() gin.HandlerFunc {
	return NewWindowLimiter(20, time.Minute).Handler("Too many login attempts. Try again in a minute.")
}

// RateLimiter returns a general-purpose per-IP limiter.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return NewWindowLimiter(limit, window).Handler("Too many requests. Try again shortly.")
}
