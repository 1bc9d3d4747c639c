package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/joseph-ayodele/study-tracker/internal/common"
	"github.com/joseph-ayodele/study-tracker/internal/llm"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// handleChat forwards a free-form question to the configured provider. Unlike
// the analysis pipelines, chat has no heuristic fallback: with no provider
// the endpoint reports unavailability.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, common.NewAppError("REQUEST_ERROR", "invalid JSON body", common.ErrInvalidInput))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, common.NewAppError("REQUEST_ERROR", "message is required", common.ErrInvalidInput))
		return
	}
	if !s.completer.Available() {
		s.writeError(w, common.NewAppError("CHAT_ERROR", "no intelligence provider configured", common.ErrUnavailable))
		return
	}

	reply, err := s.completer.Complete(r.Context(), llm.Request{
		System:      "You are a helpful educational assistant for students. Answer questions about study topics, learning strategies, and academic subjects.",
		User:        req.Message,
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		s.logger.Warn("chat completion failed",
			zap.String("request_id", common.RequestIDFromContext(r.Context())),
			zap.Error(err))
		s.writeError(w, common.NewAppError("CHAT_ERROR", "completion failed", common.ErrUnavailable))
		return
	}
	s.writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}
