package metalogs

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/agent-hub/pkg/handlers"
	"github.com/JaimeStill/agent-hub/pkg/pagination"
	"github.com/JaimeStill/agent-hub/pkg/routes"
)

// Handler serves the chat audit log.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{sys: sys, logger: logger, pagination: pagination}
}

// Routes mounts the global listing and the per-agent listing.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "",
		Tags:        []string{"Meta Logs"},
		Description: "Chat request audit log",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/metalogs", Handler: h.List, OpenAPI: Spec.List},
			{Method: "GET", Pattern: "/agents/{id}/metalogs", Handler: h.ListByAgent, OpenAPI: Spec.ListByAgent},
		},
		Schemas: Spec.Schemas(),
	}
}

// List handles GET /metalogs.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ListByAgent handles GET /agents/{id}/metalogs.
func (h *Handler) ListByAgent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	entries, err := h.sys.ListByAgent(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, entries)
}
