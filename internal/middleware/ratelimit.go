package middleware

import (
	"net/http"
	"time"

	"github.com/Shubham-7300/Portfolio-Backend/internal/database"
	"github.com/Shubham-7300/Portfolio-Backend/pkg/clientip"
)

const (
	// RateLimitWindow is the fixed window for counting requests per IP.
	RateLimitWindow = 60 * time.Second
	// RateLimitMaxRequests is the maximum number of requests allowed in the window.
	RateLimitMaxRequests = 60
	// RateLimitKeyPrefix is the Redis key prefix for rate limiting.
	RateLimitKeyPrefix = "ratelimit:"
)

// RateLimit counts requests per client IP in Redis and rejects the rest of
// the window once the cap is hit. Redis being down fails open.
func RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		key := RateLimitKeyPrefix + clientip.RealClientIP(r)

		count, err := database.RedisClient.Incr(ctx, key).Result()
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			database.RedisClient.Expire(ctx, key, RateLimitWindow)
		}

		if count > RateLimitMaxRequests {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"success":false,"message":"Too many requests. Please try again later."}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
