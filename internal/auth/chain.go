package auth

import (
	"errors"

	"solace/internal/domain"
	"solace/internal/domain/models"
)

// ChainVerifier tries each verifier in order and accepts the first success.
type ChainVerifier struct {
	verifiers []TokenVerifier
}

// NewChainVerifier creates a verifier over the given verifiers (nil entries are skipped)
func NewChainVerifier(verifiers ...TokenVerifier) *ChainVerifier {
	chain := &ChainVerifier{}
	for _, v := range verifiers {
		if v != nil {
			chain.verifiers = append(chain.verifiers, v)
		}
	}
	return chain
}

// VerifyToken returns the claims of the first verifier that accepts the token
func (c *ChainVerifier) VerifyToken(tokenString string) (*models.AccessClaims, error) {
	for _, v := range c.verifiers {
		claims, err := v.VerifyToken(tokenString)
		if err == nil {
			return claims, nil
		}
		if !errors.Is(err, domain.ErrUnauthorized) {
			return nil, err
		}
	}
	return nil, domain.ErrUnauthorized
}

// Close closes every verifier and returns the first error
func (c *ChainVerifier) Close() error {
	var firstErr error
	for _, v := range c.verifiers {
		if err := v.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
