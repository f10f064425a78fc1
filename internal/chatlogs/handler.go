package chatlogs

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/agent-hub/pkg/handlers"
	"github.com/JaimeStill/agent-hub/pkg/routes"
)

// Handler serves agent transcripts.
type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{sys: sys, logger: logger}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/agents",
		Tags:        []string{"Chat Logs"},
		Description: "Agent chat transcripts",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}/logs", Handler: h.ListByAgent, OpenAPI: Spec.ListByAgent},
		},
		Schemas: Spec.Schemas(),
	}
}

// ListByAgent handles GET /agents/{id}/logs.
func (h *Handler) ListByAgent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	entries, err := h.sys.ListByAgent(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, entries)
}
