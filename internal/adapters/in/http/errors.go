package http

import (
	"errors"
	"net/http"

	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/logging"

	"github.com/labstack/echo/v4"
)

// StatusCode maps an application error to an HTTP status. Partial failures are checked
// first because they wrap the downstream error that caused them.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrPartialFailure):
		return http.StatusInternalServerError
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrDownstreamUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func respondError(ctx echo.Context, err error) error {
	code := StatusCode(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		logging.FromContext(ctx.Request().Context()).ErrorContext(ctx.Request().Context(), "request failed", "error", err)
		message = http.StatusText(code)
	}
	return ctx.JSON(code, errorBody{Code: code, Message: message})
}

// errorHandler renders errors that escape the handlers (routing, binding, validation,
// panics) in the same shape as handler errors.
func errorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		_ = respondError(ctx, err)
		return
	}

	message := http.StatusText(he.Code)
	if m, ok := he.Message.(string); ok && m != "" {
		message = m
	}
	if he.Code >= http.StatusInternalServerError {
		logging.FromContext(ctx.Request().Context()).ErrorContext(ctx.Request().Context(), "request failed", "error", err)
	}

	if ctx.Request().Method == http.MethodHead {
		_ = ctx.NoContent(he.Code)
		return
	}
	_ = ctx.JSON(he.Code, errorBody{Code: he.Code, Message: message})
}
