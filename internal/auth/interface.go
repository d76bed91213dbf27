package auth

import "solace/internal/domain/models"

// TokenVerifier defines the interface for bearer token verification.
// This keeps the middleware agnostic to where tokens come from.
type TokenVerifier interface {
	// VerifyToken validates a token string and returns the parsed claims.
	// Returns domain.ErrUnauthorized if the token is invalid, expired, or has an invalid signature.
	VerifyToken(tokenString string) (*models.AccessClaims, error)

	// Close releases any resources held by the verifier (e.g., HTTP connections for JWKS).
	Close() error
}

// TokenIssuer signs access tokens for authenticated users
type TokenIssuer interface {
	// IssueToken returns a signed token whose subject is the user's email
	IssueToken(email string) (string, error)
}

// PasswordHasher hashes and checks passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns domain.ErrUnauthorized when the password does not match
	Compare(hash, password string) error
}
