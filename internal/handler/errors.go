package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"solace/internal/domain"
	"solace/internal/httputil"
)

// handleError converts domain errors to HTTP responses.
// Only client-facing messages reach the response body.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var (
		upstreamErr *domain.UpstreamError
		conflictErr *domain.ConflictError
	)

	switch {
	case errors.As(err, &upstreamErr):
		logger.Error("upstream failure", "error", err)
		httputil.RespondError(w, upstreamErr.StatusCode(), upstreamErr.Message)
	case errors.As(err, &conflictErr):
		httputil.RespondError(w, conflictErr.StatusCode(), conflictErr.Message)
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, publicMessage(err, "Invalid request"))
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, publicMessage(err, "Not authenticated"))
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, publicMessage(err, "Access denied"))
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, publicMessage(err, "Resource not found"))
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusBadRequest, publicMessage(err, "Resource already exists"))
	default:
		logger.Error("unhandled error", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// publicMessage returns the message of a domain.MessageError in the chain, or fallback
func publicMessage(err error, fallback string) string {
	var msgErr *domain.MessageError
	if errors.As(err, &msgErr) {
		return msgErr.Message
	}
	return fallback
}
