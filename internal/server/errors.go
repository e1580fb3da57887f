package server

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/agenthands/storygraph/internal/core"
	"github.com/agenthands/storygraph/internal/semantic"
	"github.com/agenthands/storygraph/internal/source"
)

// statusClientClosedRequest is the non-standard code for a request the
// client abandoned.
const statusClientClosedRequest = 499

type ErrorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
}

// StatusFor maps a service error to its HTTP status and retry hint.
func StatusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, source.ErrInputUnavailable):
		return http.StatusServiceUnavailable, true
	case errors.Is(err, semantic.ErrSearchDisabled):
		return http.StatusServiceUnavailable, false
	case errors.Is(err, core.ErrAssetNotFound), errors.Is(err, semantic.ErrVectorNotFound):
		return http.StatusNotFound, false
	case errors.Is(err, semantic.ErrEmptyQuery):
		return http.StatusBadRequest, false
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, true
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest, false
	default:
		return http.StatusInternalServerError, false
	}
}

// publicMessage hides server-side detail such as file paths behind a fixed
// message for 5xx responses.
func publicMessage(err error, status int) string {
	switch {
	case status < http.StatusInternalServerError:
		return err.Error()
	case errors.Is(err, source.ErrInputUnavailable):
		return source.ErrInputUnavailable.Error()
	case errors.Is(err, semantic.ErrSearchDisabled):
		return semantic.ErrSearchDisabled.Error()
	case status == http.StatusGatewayTimeout:
		return "request timed out"
	default:
		return "internal error"
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status, retryable := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Errorw("Request failed", "path", c.FullPath(), "request_id", c.GetString(requestIDKey), "error", err)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: publicMessage(err, status), Retryable: retryable})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}
