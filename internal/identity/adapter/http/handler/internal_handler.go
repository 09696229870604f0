package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/akarpov/walletsvc/internal/identity/adapter/http/dto"
	"github.com/akarpov/walletsvc/internal/infrastructure/assertion"
	"github.com/akarpov/walletsvc/internal/infrastructure/metrics"
)

// ExistenceChecker answers whether a user ID is known.
type ExistenceChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// InternalHandler serves the service-to-service validation endpoint. It is
// authenticated by a short-lived assertion signed with the shared internal
// secret, not by user tokens.
type InternalHandler struct {
	checker  ExistenceChecker
	verifier *assertion.Verifier
	logger   zerolog.Logger
}

// NewInternalHandler creates a new internal handler.
func NewInternalHandler(checker ExistenceChecker, verifier *assertion.Verifier, logger zerolog.Logger) *InternalHandler {
	return &InternalHandler{
		checker:  checker,
		verifier: verifier,
		logger:   logger,
	}
}

// Validate handles POST /internal/v1/validate. Both positive and negative
// outcomes ride on a 200 status; only infrastructure failures produce
// non-200 responses, which callers treat as unreachable.
func (h *InternalHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req dto.ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.verifier.Verify(req.Assertion); err != nil {
		h.logger.Warn().Err(err).Msg("rejected internal validation assertion")
		metrics.ValidationRequests.WithLabelValues("rejected").Inc()
		writeJSON(w, http.StatusOK, dto.ValidateResponse{Valid: false, Reason: "invalid token"})
		return
	}

	exists, err := h.checker.Exists(r.Context(), req.OwnerID)
	if err != nil {
		h.logger.Error().Err(err).Str("owner_id", req.OwnerID).Msg("owner existence check failed")
		metrics.ValidationRequests.WithLabelValues("error").Inc()
		writeError(w, http.StatusInternalServerError, "validation failed", err.Error())
		return
	}

	if !exists {
		metrics.ValidationRequests.WithLabelValues("not_found").Inc()
		writeJSON(w, http.StatusOK, dto.ValidateResponse{Valid: false, Reason: "not found"})
		return
	}

	metrics.ValidationRequests.WithLabelValues("valid").Inc()
	writeJSON(w, http.StatusOK, dto.ValidateResponse{Valid: true})
}
