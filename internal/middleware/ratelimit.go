package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/mskard-business-solutions/gogreen-backend/internal/utils"
)

// RateLimitConfig rate limiting settings.
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
	WindowSize        time.Duration
	SkipPaths         []string
	CustomMessage     string
}

// DefaultRateLimitConfig default rate limit settings.
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		RequestsPerMinute: 120,
		Burst:             20,
		WindowSize:        time.Minute,
		SkipPaths: []string{
			"/health",
			"/favicon.ico",
		},
		CustomMessage: "Rate limit exceeded. Please try again later.",
	}
}

// ipLimiter per-IP limiter state.
type ipLimiter struct {
	limiter     *rate.Limiter
	lastSeen    time.Time
	windowStart time.Time
}

// RateLimitMiddleware per-IP token-bucket rate limiting.
type RateLimitMiddleware struct {
	config   *RateLimitConfig
	limiters map[string]*ipLimiter
	mutex    sync.RWMutex
}

// NewRateLimitMiddleware creates the middleware and starts stale-entry cleanup.
func NewRateLimitMiddleware(config *RateLimitConfig) *RateLimitMiddleware {
	if config == nil {
		config = DefaultRateLimitConfig()
	}

	middleware := &RateLimitMiddleware{
		config:   config,
		limiters: make(map[string]*ipLimiter),
	}

	go middleware.cleanupLimiters()

	return middleware
}

// Handler returns the middleware handler.
func (rlm *RateLimitMiddleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rlm.shouldSkipPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := utils.GetClientIP(r)
			allowed, remaining, resetTime := rlm.checkRateLimit(clientIP)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rlm.config.RequestsPerMinute))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

			if !allowed {
				log.Warn().Str("client_ip", clientIP).Msg("Request blocked - rate limit exceeded")
				rlm.sendRateLimitResponse(w, rlm.config.CustomMessage)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// checkRateLimit applies the per-IP token bucket.
func (rlm *RateLimitMiddleware) checkRateLimit(ip string) (allowed bool, remaining int, resetTime time.Time) {
	rlm.mutex.Lock()
	defer rlm.mutex.Unlock()

	now := time.Now()

	limiter, exists := rlm.limiters[ip]
	if !exists {
		rateLimit := rate.Every(rlm.config.WindowSize / time.Duration(rlm.config.RequestsPerMinute))
		limiter = &ipLimiter{
			limiter:     rate.NewLimiter(rateLimit, rlm.config.Burst),
			lastSeen:    now,
			windowStart: now,
		}
		rlm.limiters[ip] = limiter
	}

	limiter.lastSeen = now

	if now.Sub(limiter.windowStart) >= rlm.config.WindowSize {
		limiter.windowStart = now
	}

	allowed = limiter.limiter.Allow()

	remaining = int(limiter.limiter.Tokens())
	if remaining < 0 {
		remaining = 0
	}

	resetTime = limiter.windowStart.Add(rlm.config.WindowSize)

	return allowed, remaining, resetTime
}

// cleanupLimiters evicts limiters idle for more than ten minutes.
func (rlm *RateLimitMiddleware) cleanupLimiters() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rlm.mutex.Lock()
		cutoff := time.Now().Add(-10 * time.Minute)
		for ip, limiter := range rlm.limiters {
			if limiter.lastSeen.Before(cutoff) {
				delete(rlm.limiters, ip)
			}
		}
		rlm.mutex.Unlock()
	}
}

func (rlm *RateLimitMiddleware) shouldSkipPath(path string) bool {
	for _, skipPath := range rlm.config.SkipPaths {
		if path == skipPath {
			return true
		}
	}
	return false
}

func (rlm *RateLimitMiddleware) sendRateLimitResponse(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
		"code":    http.StatusTooManyRequests,
	})
}
