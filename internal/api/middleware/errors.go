package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/property-search/internal/api/handlers"
	"github.com/donaldgifford/property-search/internal/apierror"
)

// Messages rendered by the error handler.
const (
	MsgNotFound      = "API endpoint doesnt exist"
	MsgInternalError = "Internal server error"
)

// ErrorHandler returns an echo.HTTPErrorHandler that renders every error as a
// failure envelope. Unknown routes get a 404 envelope; typed API errors keep
// their status and message.
func ErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := describe(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"error", err,
			)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, handlers.Failure(status, message))
		}
		if werr != nil {
			log.Error("writing error response", "error", werr)
		}
	}
}

func describe(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound:
			return he.Code, MsgNotFound
		case http.StatusInternalServerError:
			return he.Code, MsgInternalError
		}
		if msg, ok := he.Message.(string); ok && msg != "" {
			return he.Code, msg
		}
		if he.Message != nil {
			return he.Code, fmt.Sprint(he.Message)
		}
		return he.Code, http.StatusText(he.Code)
	}

	if apierror.KindOf(err) != apierror.KindUnknown {
		return apierror.StatusOf(err), apierror.MessageOf(err, MsgInternalError)
	}

	return http.StatusInternalServerError, MsgInternalError
}
