package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HTTPRecorder receives request latencies.
type HTTPRecorder interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// Logging writes a structured entry for each HTTP request and reports its
// latency to recorder when one is given.
func Logging(logger *zap.Logger, recorder HTTPRecorder) echo.MiddlewareFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			logger.Info("http request",
				zap.String("request_id", RequestIDFromContext(c)),
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", status),
				zap.Duration("latency", latency),
			)
			if recorder != nil {
				route := c.Path()
				if route == "" {
					route = "unmatched"
				}
				recorder.ObserveHTTP(req.Method, route, status, latency)
			}

			return err
		}
	}
}
