package handler

import (
	"log/slog"
	"net/http"
	"time"

	"solace/internal/domain/services"
	"solace/internal/httputil"
)

// AuthHandler handles registration, login and identity requests
type AuthHandler struct {
	authService services.AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService services.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register creates an account and logs it in
// POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	resp.Message = "Registration successful"
	httputil.RespondJSON(w, http.StatusOK, resp)
}

// Login exchanges credentials for a token
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	resp.Message = "Login successful"
	httputil.RespondJSON(w, http.StatusOK, resp)
}

// tokenResponse is the OAuth2 password grant response
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Token is the OAuth2 password grant endpoint (form fields username, password)
// POST /token
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := httputil.ParseForm(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid form body")
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tokenResponse{
		AccessToken: resp.AccessToken,
		TokenType:   resp.TokenType,
	})
}

// meResponse describes the authenticated caller
type meResponse struct {
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"created_at"`
}

// Me returns the authenticated caller
// GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	email := httputil.GetUserEmail(r)

	user, err := h.authService.CurrentUser(r.Context(), email)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	resp := meResponse{Email: user.Email}
	if !user.CreatedAt.IsZero() {
		resp.CreatedAt = &user.CreatedAt
	}
	httputil.RespondJSON(w, http.StatusOK, resp)
}
