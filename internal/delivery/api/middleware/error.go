package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"exposure/internal/delivery/api/response"
	deliverycontext "exposure/internal/delivery/context"
	domainerrors "exposure/internal/domain/errors"
	"exposure/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware is the central echo error handler. Requests under one of
// the problem prefixes get 3GPP ProblemDetails bodies, all others the
// response envelope.
type ErrorMiddleware struct {
	logger          *slog.Logger
	problemPrefixes []string
}

// NewErrorMiddleware creates the error handler.
func NewErrorMiddleware(logger *slog.Logger, problemPrefixes ...string) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger:          logger,
		problemPrefixes: problemPrefixes,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, code, message, details := m.classify(c, err)

	if m.wantsProblem(c) {
		_ = response.Problem(c, status, code, problemDetail(message, details))

		return
	}
	_ = response.Error(c, status, code, message, details)
}

func (m *ErrorMiddleware) classify(c echo.Context, err error) (int, string, string, any) {
	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logFailure(c, err)
		}
		var details any
		if d := appErr.Details(); d != "" {
			details = d
		}

		return appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), details
	}

	if httpErr, ok := errors.AsType[*echo.HTTPError](err); ok {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}

		return httpErr.Code, "HTTP_ERROR", message, nil
	}

	m.logFailure(c, err)

	return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error, please try again later", nil
}

func (m *ErrorMiddleware) wantsProblem(c echo.Context) bool {
	path := c.Request().URL.Path
	for _, prefix := range m.problemPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

func problemDetail(message string, details any) string {
	if d, ok := details.(string); ok && d != "" {
		return message + ": " + d
	}

	return message
}

func (m *ErrorMiddleware) logFailure(c echo.Context, err error) {
	deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)
}
