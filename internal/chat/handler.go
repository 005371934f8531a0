package chat

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/chatbox-platform/chatbox/internal/api"
	"github.com/chatbox-platform/chatbox/internal/prompt"
)

// Handler handles the chat HTTP endpoints.
type Handler struct {
	svc      *Service
	validate *validator.Validate
	model    string
}

// NewHandler creates a new chat handler. model is the configured model
// identifier, reported by the health endpoint.
func NewHandler(svc *Service, model string) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
		model:    model,
	}
}

// ChatRequest is the /api/chat request body. Message is deliberately not
// required: empty messages are tolerated, not enforced against.
type ChatRequest struct {
	SessionID string   `json:"session_id" validate:"required"`
	Message   string   `json:"message"`
	ImageURLs []string `json:"image_urls,omitempty"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type newSessionResponse struct {
	SessionID string `json:"session_id"`
}

type historyResponse struct {
	Messages []HistoryEntry `json:"messages"`
}

type healthResponse struct {
	OK    bool   `json:"ok"`
	Model string `json:"model"`
}

// NewSession creates a new chat session (used by the frontend on first load).
func (h *Handler) NewSession(w http.ResponseWriter, r *http.Request) {
	key := h.svc.NewSession()
	api.JSON(w, http.StatusOK, newSessionResponse{SessionID: key})
}

// Chat sends a message to the chatbot and returns the reply.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.HandleError(w, api.ErrBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		api.HandleError(w, api.NewValidationError(err.Error()))
		return
	}

	reply, err := h.svc.Chat(r.Context(), req.SessionID, req.Message, req.ImageURLs)
	if err != nil {
		var invalidRef *prompt.InvalidImageReferenceError
		if errors.As(err, &invalidRef) {
			api.HandleError(w, api.NewBadRequestError(invalidRef.Error()))
			return
		}

		var infErr *InferenceError
		if errors.As(err, &infErr) {
			slog.Error("inference call failed", "error", infErr.Err, "session_id", req.SessionID)
			api.HandleError(w, api.NewBadGatewayError(infErr.Error()))
			return
		}

		slog.Error("chat failed", "error", err, "session_id", req.SessionID)
		api.HandleError(w, api.ErrInternalServer)
		return
	}

	api.JSON(w, http.StatusOK, chatResponse{Reply: reply})
}

// History returns the chat history for a session, mapped to {sender, text}.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		api.HandleError(w, api.NewBadRequestError("session_id query parameter is required"))
		return
	}

	api.JSON(w, http.StatusOK, historyResponse{Messages: h.svc.History(sessionID)})
}

// Health reports service liveness and the configured model identifier.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, http.StatusOK, healthResponse{OK: true, Model: h.model})
}
