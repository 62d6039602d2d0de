package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// LoginRateLimit limits login attempts per identifier or IP. With Redis the
// window is shared across instances; without it a per-process token bucket
// stands in so local development still has a ceiling.
func LoginRateLimit(cache *redis.Client, maxPerMin int) fiber.Handler {
	if maxPerMin <= 0 {
		maxPerMin = 5
	}

	var local *rate.Limiter
	if cache == nil {
		local = rate.NewLimiter(rate.Every(time.Minute/time.Duration(maxPerMin)), maxPerMin)
	}

	return func(c *fiber.Ctx) error {
		if cache == nil {
			if !local.Allow() {
				return tooManyAttempts(c)
			}
			return c.Next()
		}

		var req struct {
			Email       string `json:"email"`
			PhoneNumber string `json:"phoneNumber"`
		}
		_ = c.BodyParser(&req)
		key := strings.TrimSpace(req.Email)
		if key == "" {
			key = strings.TrimSpace(req.PhoneNumber)
		}
		if key == "" {
			key = c.IP()
		}

		redisKey := "rl:login:" + key
		cnt, err := cache.Incr(c.UserContext(), redisKey).Result()
		if err != nil {
			return c.Next() // fail-open on cache errors
		}
		if cnt == 1 {
			cache.Expire(c.UserContext(), redisKey, time.Minute)
		}
		if cnt > int64(maxPerMin) {
			return tooManyAttempts(c)
		}
		return c.Next()
	}
}

func tooManyAttempts(c *fiber.Ctx) error {
	return c.Status(http.StatusTooManyRequests).JSON(fiber.Map{
		"success": false,
		"message": "too many login attempts, try again later",
	})
}
