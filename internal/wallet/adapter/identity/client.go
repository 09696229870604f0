// Package identity implements the wallet side of the cross-service owner
// validation call.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/akarpov/walletsvc/internal/infrastructure/assertion"
	"github.com/akarpov/walletsvc/internal/infrastructure/metrics"
	"github.com/akarpov/walletsvc/internal/wallet/domain"
	"github.com/akarpov/walletsvc/internal/wallet/usecase"
)

const validatePath = "/internal/v1/validate"

// Client implements usecase.IdentityValidator against the identity
// service's internal HTTP endpoint. Every call mints a fresh short-lived
// assertion and waits for a bounded time. There is no retry: a failed call
// fails the triggering operation outright.
type Client struct {
	httpClient *http.Client
	baseURL    string
	signer     *assertion.Signer
	timeout    time.Duration
	logger     zerolog.Logger
}

// NewClient creates a Client. The signer is the explicit service credential;
// it is never read from global state.
func NewClient(baseURL string, signer *assertion.Signer, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		signer:     signer,
		timeout:    timeout,
		logger:     logger,
	}
}

type validateRequest struct {
	OwnerID   string `json:"owner_id"`
	Assertion string `json:"assertion"`
}

type validateResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// Validate checks whether the owner exists in the identity service.
// Transport and protocol failures are returned as ErrIdentityUnreachable;
// the caller must treat them as not-valid (fail closed). A reachable
// negative answer comes back as Valid=false with the server's reason.
func (c *Client) Validate(ctx context.Context, ownerID string) (usecase.ValidationResult, error) {
	start := time.Now()
	defer func() {
		metrics.IdentityValidationDuration.Observe(time.Since(start).Seconds())
	}()

	token, err := c.signer.Mint()
	if err != nil {
		metrics.IdentityValidations.WithLabelValues("unreachable").Inc()
		return usecase.ValidationResult{}, fmt.Errorf("%w: mint assertion: %v", domain.ErrIdentityUnreachable, err)
	}

	body, err := json.Marshal(validateRequest{OwnerID: ownerID, Assertion: token})
	if err != nil {
		metrics.IdentityValidations.WithLabelValues("unreachable").Inc()
		return usecase.ValidationResult{}, fmt.Errorf("%w: encode request: %v", domain.ErrIdentityUnreachable, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+validatePath, bytes.NewReader(body))
	if err != nil {
		metrics.IdentityValidations.WithLabelValues("unreachable").Inc()
		return usecase.ValidationResult{}, fmt.Errorf("%w: build request: %v", domain.ErrIdentityUnreachable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("owner_id", ownerID).Msg("identity validation call failed")
		metrics.IdentityValidations.WithLabelValues("unreachable").Inc()
		return usecase.ValidationResult{}, fmt.Errorf("%w: %v", domain.ErrIdentityUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Str("owner_id", ownerID).Msg("identity validation returned unexpected status")
		metrics.IdentityValidations.WithLabelValues("unreachable").Inc()
		return usecase.ValidationResult{}, fmt.Errorf("%w: unexpected status %d", domain.ErrIdentityUnreachable, resp.StatusCode)
	}

	var result validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		metrics.IdentityValidations.WithLabelValues("unreachable").Inc()
		return usecase.ValidationResult{}, fmt.Errorf("%w: decode response: %v", domain.ErrIdentityUnreachable, err)
	}

	if result.Valid {
		metrics.IdentityValidations.WithLabelValues("valid").Inc()
	} else {
		metrics.IdentityValidations.WithLabelValues("invalid").Inc()
	}

	return usecase.ValidationResult{Valid: result.Valid, Reason: result.Reason}, nil
}
