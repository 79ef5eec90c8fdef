package httppresentation

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability/logctx"
)

type errorBody struct {
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`
	Module string `json:"module,omitempty"`
}

// StatusFor maps a failure kind to its HTTP status.
func StatusFor(err error) int {
	switch failure.KindOf(err) {
	case failure.KindValidation:
		return http.StatusBadRequest
	case failure.KindDomain:
		return http.StatusUnprocessableEntity
	case failure.KindNotFound:
		return http.StatusNotFound
	case failure.KindConflict:
		return http.StatusConflict
	case failure.KindInfrastructure:
		return http.StatusServiceUnavailable
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// handleError is the echo error handler. Infrastructure causes are logged,
// never sent to the client.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		status int
		body   errorBody
		he     *echo.HTTPError
	)
	if fe, ok := failure.As(err); ok {
		status = StatusFor(err)
		body = errorBody{Error: fe.Message(), Kind: string(fe.Kind), Module: string(fe.Module)}
	} else if errors.As(err, &he) {
		status = he.Code
		msg, _ := he.Message.(string)
		if msg == "" {
			msg = http.StatusText(he.Code)
		}
		body = errorBody{Error: msg}
		if he.Code == http.StatusBadRequest {
			body.Kind = string(failure.KindValidation)
		}
	} else {
		status = StatusFor(err)
		body = errorBody{Error: http.StatusText(status)}
	}

	if status >= http.StatusInternalServerError {
		logctx.FromOr(c.Request().Context(), s.log).Error("http_request_failed",
			observability.F("route", route(c)),
			observability.F("status", status),
			observability.F("error", err.Error()),
		)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, body)
}
