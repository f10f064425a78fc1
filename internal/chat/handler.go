package chat

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/agent-hub/pkg/handlers"
	"github.com/JaimeStill/agent-hub/pkg/routes"
)

// Chatter answers one user message for an agent.
type Chatter interface {
	HandleChat(ctx context.Context, agentID uuid.UUID, message string) (string, error)
}

// Request is the chat request body.
type Request struct {
	Message string `json:"message"`
}

// Response is the chat response body.
type Response struct {
	Reply string `json:"reply"`
}

// Handler serves the chat endpoint.
type Handler struct {
	chat        Chatter
	logger      *slog.Logger
	maxBodySize int64
}

func NewHandler(chat Chatter, logger *slog.Logger, maxBodySize int64) *Handler {
	return &Handler{chat: chat, logger: logger, maxBodySize: maxBodySize}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/agents",
		Tags:        []string{"Chat"},
		Description: "Tool-aware chat relay",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/{id}/chat", Handler: h.Chat, OpenAPI: Spec.Chat},
		},
		Schemas: Spec.Schemas(),
	}
}

// Chat handles POST /agents/{id}/chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req, err := handlers.DecodeJSON[Request](w, r, h.maxBodySize)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	reply, err := h.chat.HandleChat(r.Context(), id, req.Message)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{Reply: reply})
}
