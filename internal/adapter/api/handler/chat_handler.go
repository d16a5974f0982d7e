package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/user/build-triage/internal/usecase"
)

// ChatHandler exposes the configured collaborator for operator probes.
type ChatHandler struct {
	chat   *usecase.ChatUseCase
	logger *slog.Logger
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chat *usecase.ChatUseCase, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, logger: logger.With("component", "chat_handler")}
}

// ServeHTTP forwards the message to the collaborator and returns its reply.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad request: invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(payload.Message) == "" {
		http.Error(w, "Bad request: message is required", http.StatusBadRequest)
		return
	}

	response, err := h.chat.Send(r.Context(), payload.Message)
	if err != nil {
		h.logger.Error("chat request failed", "error", err)
		http.Error(w, "Bad gateway: collaborator unavailable", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"response": response})
}
