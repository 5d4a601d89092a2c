package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/octobees/leads-enricher/internal/config"
	"github.com/octobees/leads-enricher/internal/handler"
)

var scrapePaths = map[string]bool{
	"/scrape":       true,
	"/scrape/batch": true,
}

// ScrapeRateLimiter throttles the scrape endpoints with a single token
// bucket, since each call fans out to search and page fetches. Rejected
// requests get a Retry-After hint in whole seconds.
func ScrapeRateLimiter(cfg config.RateLimitConfig) echo.MiddlewareFunc {
	if cfg.Requests <= 0 || cfg.Interval <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	every := cfg.Interval / time.Duration(cfg.Requests)
	if every <= 0 {
		every = time.Second
	}
	limiter := rate.NewLimiter(rate.Every(every), cfg.Requests)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !scrapePaths[c.Path()] {
				return next(c)
			}

			r := limiter.Reserve()
			if wait := r.Delay(); wait > 0 {
				r.Cancel()
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				return handler.Error(c, http.StatusTooManyRequests, "scrape rate limit exceeded")
			}
			return next(c)
		}
	}
}
