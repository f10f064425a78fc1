package registry

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/agent-hub/pkg/handlers"
	"github.com/JaimeStill/agent-hub/pkg/routes"
)

// Handler serves the read-only tool catalog.
type Handler struct {
	registry *Registry
	logger   *slog.Logger
}

func NewHandler(registry *Registry, logger *slog.Logger) *Handler {
	return &Handler{registry: registry, logger: logger}
}

// Routes returns the route group for the tool catalog.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/tools",
		Tags:        []string{"Tools"},
		Description: "Tools available for attachment",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "GET", Pattern: "/{key}", Handler: h.Find, OpenAPI: Spec.Find},
		},
		Schemas: Spec.Schemas(),
	}
}

// List handles GET /tools.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.registry.List())
}

// Find handles GET /tools/{key}.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	m, ok := h.registry.Lookup(key)
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrUnknownTool)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, m)
}
