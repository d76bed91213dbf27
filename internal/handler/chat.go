package handler

import (
	"log/slog"
	"net/http"

	"solace/internal/domain/services"
	"solace/internal/httputil"
)

// ChatHandler handles session and conversation requests.
// Handlers only talk to services, never repositories.
type ChatHandler struct {
	sessionService      services.SessionService
	conversationService services.ConversationService
	logger              *slog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(
	sessionService services.SessionService,
	conversationService services.ConversationService,
	logger *slog.Logger,
) *ChatHandler {
	return &ChatHandler{
		sessionService:      sessionService,
		conversationService: conversationService,
		logger:              logger,
	}
}

// sessionIDResponse carries a resolved session id
type sessionIDResponse struct {
	SessionID string `json:"session_id"`
}

// historyQuery is the query string of GET /chat/
type historyQuery struct {
	SessionID string `schema:"session_id"`
}

// CreateSession reuses the caller's oldest unused session or creates one
// POST /chat_session/
func (h *ChatHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	userEmail := httputil.GetUserEmail(r)

	sessionID, err := h.sessionService.ResolveSession(r.Context(), userEmail, "")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, sessionIDResponse{SessionID: sessionID})
}

// GetSessionChats returns session metadata and history, oldest first
// GET /session_chats/{session_id}
func (h *ChatHandler) GetSessionChats(w http.ResponseWriter, r *http.Request) {
	userEmail := httputil.GetUserEmail(r)
	sessionID := r.PathValue("session_id")

	session, err := h.sessionService.GetSessionWithHistory(r.Context(), userEmail, sessionID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, session)
}

// GetHistory returns a session's history, newest first
// GET /chat/?session_id=
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userEmail := httputil.GetUserEmail(r)

	var query historyQuery
	if err := httputil.ParseQuery(r, &query); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	history, err := h.sessionService.GetHistory(r.Context(), userEmail, query.SessionID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, history)
}

// SendMessage appends a turn and returns the updated history, newest first
// POST /chat/
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req services.SendMessageRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.UserEmail = httputil.GetUserEmail(r)

	history, err := h.conversationService.SendMessage(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, history)
}

// ListSessions returns the caller's recent sessions grouped by day
// GET /all_sessions/
func (h *ChatHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	userEmail := httputil.GetUserEmail(r)

	grouped, err := h.sessionService.GroupedSessions(r.Context(), userEmail)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, grouped)
}

// Analyze returns a one-shot supportive analysis
// POST /analyze/
func (h *ChatHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req services.AnalyzeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.conversationService.Analyze(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}
