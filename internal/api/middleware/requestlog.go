package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

// probePaths are polled by orchestrators. Their successes are logged once per
// middleware instance; failures are always logged at WARN.
var probePaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
}

// RequestLog returns Echo middleware that logs requests with structured fields.
// It generates a request ID if none is provided and propagates it through
// the response header and echo context.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var (
		mu         sync.Mutex
		probesSeen = make(map[string]bool, len(probePaths))
	)

	// firstProbeSuccess reports whether this is the first successful hit of a
	// probe path.
	firstProbeSuccess := func(path string) bool {
		mu.Lock()
		defer mu.Unlock()
		if probesSeen[path] {
			return false
		}
		probesSeen[path] = true
		return true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set("request_id", reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)
			if err != nil {
				// Render now so the logged status matches what the client sees.
				c.Error(err)
			}

			path := c.Request().URL.Path
			status := c.Response().Status
			level := slog.LevelInfo

			if _, probe := probePaths[path]; probe {
				if status >= 200 && status < 300 {
					if !firstProbeSuccess(path) {
						return nil
					}
				} else {
					level = slog.LevelWarn
				}
			} else if status >= 500 {
				level = slog.LevelWarn
			}

			log.Log(c.Request().Context(), level, "request",
				"method", c.Request().Method,
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			)

			return nil
		}
	}
}
