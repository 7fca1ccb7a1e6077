package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	HeaderRequestID = "X-Request-Id"
	loggerKey       = "logger"
)

// RequestID tags every request with an id and a logger carrying it. The logger is
// also attached to the request context so usecases can reach it via zerolog.Ctx.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			requestID := req.Header.Get(HeaderRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
				req.Header.Set(HeaderRequestID, requestID)
			}
			c.Response().Header().Set(HeaderRequestID, requestID)

			logger := log.With().
				Str("request_id", requestID).
				Logger()

			c.Set(loggerKey, &logger)
			c.SetRequest(req.WithContext(logger.WithContext(req.Context())))

			logger.Debug().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("remote_ip", c.RealIP()).
				Msg("Incoming request")

			return next(c)
		}
	}
}

// GetLogger retrieves the logger from echo context
// If not found, returns the default logger
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(loggerKey).(*zerolog.Logger); ok {
		return logger
	}
	return &log.Logger
}

func GetRequestID(c echo.Context) string {
	return c.Request().Header.Get(HeaderRequestID)
}
