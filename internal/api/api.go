// Package api assembles the JSON API: domain systems, route groups, the
// OpenAPI document, and the middleware stack.
package api

import (
	"net/http"
	"strings"

	"github.com/JaimeStill/agent-hub/internal/config"
	"github.com/JaimeStill/agent-hub/internal/infrastructure"
	"github.com/JaimeStill/agent-hub/pkg/middleware"
	"github.com/JaimeStill/agent-hub/pkg/openapi"
)

// Module is the API handler mounted under its base path.
type Module struct {
	prefix  string
	handler http.Handler
}

// NewModule builds the API module. Routes are registered relative to the
// base path, which is stripped before dispatch.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(cfg, runtime)

	basePath := strings.TrimSuffix(cfg.API.BasePath, "/")

	spec := cfg.API.OpenAPI.NewSpec(cfg.Version)
	spec.AddServer(cfg.Domain)

	mux := http.NewServeMux()
	registerRoutes(mux, spec, basePath, runtime, domain)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	mw := middleware.New()
	mw.Use(middleware.TrimSlash())
	mw.Use(middleware.CORS(&cfg.API.CORS))
	mw.Use(middleware.Logger(runtime.Logger))

	return &Module{
		prefix:  basePath,
		handler: mw.Apply(http.StripPrefix(basePath, mux)),
	}, nil
}

// Prefix returns the base path the module serves.
func (m *Module) Prefix() string {
	return m.prefix
}

// Mount registers the module on mux for everything below its base path.
// The bare base path is answered with 404 so the mux does not redirect it
// into the slash-trimming middleware.
func (m *Module) Mount(mux *http.ServeMux) {
	mux.Handle(m.prefix, http.NotFoundHandler())
	mux.Handle(m.prefix+"/", m.handler)
}

func (m *Module) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
