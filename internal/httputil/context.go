package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const (
	userEmailKey contextKey = "userEmail"
)

// WithUserEmail adds the authenticated caller's email to the request context
func WithUserEmail(r *http.Request, email string) *http.Request {
	ctx := context.WithValue(r.Context(), userEmailKey, email)
	return r.WithContext(ctx)
}

// GetUserEmail retrieves the caller's email from context, returns empty string if not found
func GetUserEmail(r *http.Request) string {
	email, _ := r.Context().Value(userEmailKey).(string)
	return email
}
