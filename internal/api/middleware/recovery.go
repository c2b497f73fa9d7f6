package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/property-search/internal/api/handlers"
)

// Recovery returns Echo middleware that recovers from panics, logs the stack
// trace, and returns a 500 failure envelope to the client.
func Recovery(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					buf := make([]byte, 4096)
					n := runtime.Stack(buf, false)

					log.Error("panic recovered",
						"error", fmt.Sprint(r),
						"method", c.Request().Method,
						"path", c.Request().URL.Path,
						"stack", string(buf[:n]),
					)

					if c.Response().Committed {
						return
					}
					err = c.JSON(http.StatusInternalServerError,
						handlers.Failure(http.StatusInternalServerError, MsgInternalError))
				}
			}()
			return next(c)
		}
	}
}
