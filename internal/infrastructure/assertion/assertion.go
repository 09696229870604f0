// Package assertion implements the short-lived signed token that
// authenticates service-to-service calls between the wallet and identity
// services. The token carries no claims beyond its expiry: it proves call
// origin, it is not a user credential.
package assertion

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidAssertion = errors.New("invalid assertion")
	ErrExpiredAssertion = errors.New("assertion has expired")
)

// Credential is the shared secret both services hold. It is passed
// explicitly at construction, never read from ambient state.
type Credential struct {
	secret []byte
}

// NewCredential creates a credential from a shared secret.
func NewCredential(secret string) Credential {
	return Credential{secret: []byte(secret)}
}

// Signer mints assertions with a fixed short expiry.
type Signer struct {
	cred Credential
	ttl  time.Duration
}

// NewSigner creates a Signer. A ttl of zero falls back to 60 seconds.
func NewSigner(cred Credential, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &Signer{cred: cred, ttl: ttl}
}

// Mint produces a fresh signed assertion over an empty claim set.
func (s *Signer) Mint() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.cred.secret)
}

// Verifier checks assertion signatures and expiry.
type Verifier struct {
	cred Credential
}

// NewVerifier creates a Verifier for the given credential.
func NewVerifier(cred Credential) *Verifier {
	return &Verifier{cred: cred}
}

// Verify validates the assertion's signature and expiry.
func (v *Verifier) Verify(token string) error {
	parsed, err := jwt.ParseWithClaims(
		token,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.cred.secret, nil
		},
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpiredAssertion
		}
		return ErrInvalidAssertion
	}

	if !parsed.Valid {
		return ErrInvalidAssertion
	}

	return nil
}
