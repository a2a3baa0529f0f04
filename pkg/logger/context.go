package logger

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const RequestIDKey = "X-Request-ID"

// FromContext retrieves the request-scoped logger from echo.Context.
// Requests that skipped the request-ID middleware fall back to the
// global logger tagged with whatever ID the client sent and the route
// being served, so report and job log lines stay attributable.
func FromContext(c echo.Context) *zap.Logger {
	if logger, ok := c.Get("logger").(*zap.Logger); ok {
		return logger
	}

	requestID, ok := c.Get(RequestIDKey).(string)
	if !ok {
		requestID = c.Request().Header.Get(RequestIDKey)
		if requestID == "" {
			requestID = "unknown"
		}
	}

	return GetLogger().With(
		zap.String("request_id", requestID),
		zap.String("path", c.Path()),
	)
}
