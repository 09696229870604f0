package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akarpov/walletsvc/internal/identity/adapter/http/dto"
	"github.com/akarpov/walletsvc/internal/identity/domain"
	"github.com/akarpov/walletsvc/internal/identity/usecase"
	"github.com/akarpov/walletsvc/internal/infrastructure/metrics"
)

// AuthService is the use case surface the auth handler needs.
type AuthService interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error)
}

// TokenIssuer issues access tokens for authenticated users.
type TokenIssuer interface {
	Generate(userID, email string) (string, error)
}

// AuthHandler handles registration and login.
type AuthHandler struct {
	service AuthService
	issuer  TokenIssuer
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service AuthService, issuer TokenIssuer) *AuthHandler {
	return &AuthHandler{
		service: service,
		issuer:  issuer,
	}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.service.Register(r.Context(), usecase.RegisterInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to register user", err.Error())
		return
	}

	metrics.UsersRegistered.Inc()
	writeJSON(w, http.StatusCreated, dto.UserFromDomain(user))
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.service.Authenticate(r.Context(), usecase.AuthenticateInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		if errors.Is(err, domain.ErrInvalidCredentials) {
			// A uniform message keeps login errors from leaking which part
			// of the credentials was wrong.
			writeError(w, http.StatusUnauthorized, "invalid credentials", "")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to authenticate", err.Error())
		return
	}

	token, err := h.issuer.Generate(user.ID, user.Email)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		writeError(w, http.StatusInternalServerError, "failed to generate token", err.Error())
		return
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token: token,
		User:  dto.UserFromDomain(user),
	})
}
