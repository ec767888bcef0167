package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stolasapp/catalog/internal/sec"
	"github.com/stolasapp/catalog/internal/storage"
)

type errorResponse struct {
	Error string `json:"error"`
}

// toHTTPError converts a domain error to an Echo HTTPError with the
// appropriate status code. Errors without a mapping are returned as-is and
// end up as a 500.
func toHTTPError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound).SetInternal(err)
	case errors.Is(err, sec.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidCredentials).SetInternal(err)
	default:
		return err
	}
}

// errorHandler writes client errors as {"message": ...} and everything else
// as a logged 500 with a generic {"error": ...} body.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		var body any = errorResponse{Error: http.StatusText(status)}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) && httpErr.Code < http.StatusInternalServerError {
			status = httpErr.Code
			body = messageResponse{Message: fmt.Sprint(httpErr.Message)}
		} else {
			logger.ErrorContext(c.Request().Context(), "request failed",
				slog.String("method", c.Request().Method),
				slog.String("route", c.Path()),
				slog.Any("error", err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", slog.Any("error", err))
		}
	}
}
