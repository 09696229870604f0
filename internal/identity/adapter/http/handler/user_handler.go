package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/akarpov/walletsvc/internal/identity/adapter/http/dto"
	"github.com/akarpov/walletsvc/internal/identity/domain"
	"github.com/akarpov/walletsvc/internal/identity/usecase"
	"github.com/akarpov/walletsvc/internal/middleware"
)

// UserService is the use case surface the user handler needs.
type UserService interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, input usecase.UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// UserHandler handles user management endpoints. Callers can only operate
// on their own record; the record ID in the path must match the
// authenticated user.
type UserHandler struct {
	service UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Get handles GET /api/v1/users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorizedID(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get user", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}

// Update handles PUT /api/v1/users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorizedID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.service.UpdateUser(r.Context(), usecase.UpdateUserInput{
		ID:        id,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update user", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}

// Delete handles DELETE /api/v1/users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorizedID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete user", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// authorizedID extracts the path ID and checks it against the
// authenticated caller. It writes the error response itself when the check
// fails.
func (h *UserHandler) authorizedID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing authentication")
		return "", false
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return "", false
	}

	if id != claims.UserID {
		writeError(w, http.StatusForbidden, "forbidden", "cannot operate on another user")
		return "", false
	}

	return id, true
}
