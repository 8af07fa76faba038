package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/smeflowhq/leadbot-platform/internal/session"
	"github.com/smeflowhq/leadbot-platform/pkg/logging"
)

// Engine is the conversation core the handler fronts.
type Engine interface {
	GetSession(ctx context.Context, phone string) (*session.Session, error)
	HandleMessage(ctx context.Context, phone, text string) (string, error)
}

// Handler exposes the qualification bot over HTTP for the chat widget.
type Handler struct {
	engine Engine
	logger *logging.Logger
}

// NewHandler creates a chat handler.
func NewHandler(engine Engine, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		engine: engine,
		logger: logger,
	}
}

// SendMessageRequest is what the chat widget posts.
type SendMessageRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// SendMessageResponse carries the bot's reply.
type SendMessageResponse struct {
	Reply string `json:"reply"`
}

// SendMessage handles POST /chat/messages.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	phone := strings.TrimSpace(req.Phone)
	message := strings.TrimSpace(req.Message)
	if phone == "" {
		http.Error(w, "phone is required", http.StatusBadRequest)
		return
	}
	if message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	reply, err := h.engine.HandleMessage(r.Context(), phone, message)
	if err != nil {
		// The engine reports the precise failure; the widget only sees a
		// generic outage message.
		h.logger.Error("chat turn failed", "error", err, "phone", phone)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "We're temporarily unavailable. Please try again in a moment.",
		})
		return
	}

	writeJSON(w, http.StatusOK, SendMessageResponse{Reply: reply})
}

// GetSession handles GET /chat/sessions/{phone}, returning the session with
// its transcript for chat-history rendering.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	phone := strings.TrimSpace(chi.URLParam(r, "phone"))
	if phone == "" {
		http.Error(w, "missing phone", http.StatusBadRequest)
		return
	}

	sess, err := h.engine.GetSession(r.Context(), phone)
	if err != nil {
		h.logger.Error("failed to load session", "error", err, "phone", phone)
		http.Error(w, "failed to load session", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, sess)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
