package models

import "github.com/golang-jwt/jwt/v5"

// AccessClaims is the JWT claim set carried by access tokens.
// The subject claim holds the user's email, which is the user identity.
type AccessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// GetUserEmail returns the caller identity. Tokens issued by this service carry it
// in the subject; tokens from an external identity provider may only carry the email claim.
func (c *AccessClaims) GetUserEmail() string {
	if c.Email != "" {
		return c.Email
	}
	return c.Subject
}
