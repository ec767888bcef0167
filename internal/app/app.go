// Package app contains the product HTTP API.
package app

import (
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/stolasapp/catalog/internal/config"
	"github.com/stolasapp/catalog/internal/sec"
	"github.com/stolasapp/catalog/internal/storage"
)

const maxBodySize = "1M"

// New creates the API server.
func New(
	cfg *config.Config,
	logger *slog.Logger,
	store storage.Store,
	auth *sec.Authenticator,
) *echo.Echo {
	srv := echo.New()

	srv.HideBanner = true
	srv.HidePort = true
	srv.Logger.SetLevel(log.OFF)
	srv.Validator = requestValidator{validate: validator.New()}
	srv.HTTPErrorHandler = errorHandler(logger)

	srv.Pre(middleware.RemoveTrailingSlash())
	srv.Use(
		middleware.Recover(),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Generator: uuid.NewString,
		}),
		middleware.Secure(),
		middleware.BodyLimit(maxBodySize),
	)
	if cfg.DevMode {
		srv.Debug = true
		srv.Use(logRequests(logger))
	}

	handler{store: store, auth: auth}.register(srv)
	return srv
}

type requestValidator struct {
	validate *validator.Validate
}

// Validate satisfies [echo.Validator].
func (v requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

func logRequests(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("uri", req.RequestURI),
				slog.String("route", c.Path()),
				slog.String("request_id", res.Header().Get(echo.HeaderXRequestID)),
				slog.Duration("latency", latency),
				slog.Int("status", res.Status),
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}
			logger.LogAttrs(
				req.Context(),
				slog.LevelDebug,
				"request handled",
				attrs...,
			)
			return nil
		}
	}
}
