package agents_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/agent-hub/internal/agents"
	"github.com/JaimeStill/agent-hub/pkg/openapi"
	"github.com/JaimeStill/agent-hub/pkg/pagination"
	"github.com/JaimeStill/agent-hub/pkg/routes"
)

type fakeSystem struct {
	agents   map[uuid.UUID]*agents.Agent
	lastPage pagination.PageRequest
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{agents: make(map[uuid.UUID]*agents.Agent)}
}

func (f *fakeSystem) List(ctx context.Context, page pagination.PageRequest, filters agents.Filters) (*pagination.PageResult[agents.Agent], error) {
	f.lastPage = page
	var out []agents.Agent
	for _, a := range f.agents {
		out = append(out, *a)
	}
	result := pagination.NewPageResult(out, len(out), page.Page, page.PageSize)
	return &result, nil
}

func (f *fakeSystem) Find(ctx context.Context, id uuid.UUID) (*agents.Agent, error) {
	a, ok := f.agents[id]
	if !ok {
		return nil, agents.ErrNotFound
	}
	return a, nil
}

func (f *fakeSystem) Create(ctx context.Context, cmd agents.CreateCommand) (*agents.Agent, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", agents.ErrInvalidInput)
	}
	a := &agents.Agent{
		ID:          uuid.New(),
		Name:        cmd.Name,
		Description: cmd.Description,
		Tools:       cmd.Tools,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if a.Tools == nil {
		a.Tools = []agents.ToolEntry{}
	}
	f.agents[a.ID] = a
	return a, nil
}

func (f *fakeSystem) Update(ctx context.Context, id uuid.UUID, cmd agents.UpdateCommand) (*agents.Agent, error) {
	a, err := f.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if cmd.Name != nil {
		a.Name = *cmd.Name
	}
	if cmd.Description != nil {
		a.Description = cmd.Description
	}
	return a, nil
}

func (f *fakeSystem) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.agents[id]; !ok {
		return agents.ErrNotFound
	}
	delete(f.agents, id)
	return nil
}

func (f *fakeSystem) ListTools(ctx context.Context, id uuid.UUID) ([]agents.ToolEntry, error) {
	a, err := f.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.Tools, nil
}

func (f *fakeSystem) AddTool(ctx context.Context, id uuid.UUID, entry agents.ToolEntry) (*agents.ToolEntry, error) {
	a, err := f.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, ok := a.Tool(entry.Key); ok {
		return nil, fmt.Errorf("%w: %s", agents.ErrConflict, entry.Key)
	}
	a.Tools = append(a.Tools, entry)
	return &entry, nil
}

func (f *fakeSystem) RemoveTool(ctx context.Context, id uuid.UUID, key string) (*agents.ToolEntry, error) {
	a, err := f.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	rest, removed, err := agents.DetachTool(a.Tools, key)
	if err != nil {
		return nil, err
	}
	a.Tools = rest
	return &removed, nil
}

func newTestServer(t *testing.T, sys agents.System) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := agents.NewHandler(sys, logger, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}, 1<<20)

	mux := http.NewServeMux()
	routes.Register(mux, "/api", openapi.NewSpec("test", "1.0.0"), h.Routes())

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func TestHandler_CreateAndFind(t *testing.T) {
	sys := newFakeSystem()
	srv := newTestServer(t, sys)

	resp := do(t, http.MethodPost, srv.URL+"/agents", `{"name":"release-bot","description":"Ships releases"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	created := decode[agents.Agent](t, resp)
	if created.Name != "release-bot" || created.Description == nil || *created.Description != "Ships releases" {
		t.Errorf("created = %+v", created)
	}

	resp = do(t, http.MethodGet, srv.URL+"/agents/"+created.ID.String(), "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("find status = %d", resp.StatusCode)
	}
	found := decode[agents.Agent](t, resp)
	if found.ID != created.ID {
		t.Errorf("found id = %s", found.ID)
	}
}

func TestHandler_Errors(t *testing.T) {
	srv := newTestServer(t, newFakeSystem())

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"create missing name", http.MethodPost, "/agents", `{"name":"  "}`, http.StatusBadRequest},
		{"create malformed body", http.MethodPost, "/agents", `{"name":`, http.StatusBadRequest},
		{"find invalid id", http.MethodGet, "/agents/not-a-uuid", "", http.StatusBadRequest},
		{"find missing", http.MethodGet, "/agents/" + uuid.NewString(), "", http.StatusNotFound},
		{"delete missing", http.MethodDelete, "/agents/" + uuid.NewString(), "", http.StatusNotFound},
		{"tools missing agent", http.MethodGet, "/agents/" + uuid.NewString() + "/tools", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, tt.method, srv.URL+tt.path, tt.body)
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
			body := decode[map[string]string](t, resp)
			if body["error"] == "" {
				t.Error("missing error message")
			}
		})
	}
}

func TestHandler_ToolLifecycle(t *testing.T) {
	sys := newFakeSystem()
	srv := newTestServer(t, sys)

	a, _ := sys.Create(context.Background(), agents.CreateCommand{Name: "notifier"})
	base := srv.URL + "/agents/" + a.ID.String() + "/tools"

	entry := `{"key":"slackNotifier","config":{"webhookUrl":"https://hooks.slack.com/services/T/B/X"}}`

	resp := do(t, http.MethodPost, base, entry)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add status = %d", resp.StatusCode)
	}

	resp = do(t, http.MethodPost, base, entry)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", resp.StatusCode)
	}

	resp = do(t, http.MethodGet, base, "")
	tools := decode[[]agents.ToolEntry](t, resp)
	if len(tools) != 1 || tools[0].Key != "slackNotifier" {
		t.Errorf("tools = %+v", tools)
	}

	resp = do(t, http.MethodDelete, base+"/slackNotifier", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("remove status = %d", resp.StatusCode)
	}
	removed := decode[agents.ToolEntry](t, resp)
	if removed.Key != "slackNotifier" {
		t.Errorf("removed = %+v", removed)
	}

	resp = do(t, http.MethodDelete, base+"/slackNotifier", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second remove status = %d, want 404", resp.StatusCode)
	}
}

func TestHandler_ListAndSearch(t *testing.T) {
	sys := newFakeSystem()
	srv := newTestServer(t, sys)

	resp := do(t, http.MethodGet, srv.URL+"/agents?page=2&page_size=500&sort=-CreatedAt", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	result := decode[pagination.PageResult[agents.Agent]](t, resp)
	if result.Data == nil {
		t.Error("data should be an empty array")
	}
	if sys.lastPage.Page != 2 || sys.lastPage.PageSize != 100 {
		t.Errorf("page = %+v", sys.lastPage)
	}
	if sys.lastPage.SortBy != "CreatedAt" || !sys.lastPage.Descending {
		t.Errorf("sort = %q desc=%v", sys.lastPage.SortBy, sys.lastPage.Descending)
	}

	resp = do(t, http.MethodPost, srv.URL+"/agents/search", `{"page":1,"page_size":5,"search":"bot"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search status = %d", resp.StatusCode)
	}
	if sys.lastPage.Search == nil || *sys.lastPage.Search != "bot" {
		t.Errorf("search = %v", sys.lastPage.Search)
	}
}

func TestHandler_UpdateAndDelete(t *testing.T) {
	sys := newFakeSystem()
	srv := newTestServer(t, sys)

	a, _ := sys.Create(context.Background(), agents.CreateCommand{Name: "old"})
	url := srv.URL + "/agents/" + a.ID.String()

	resp := do(t, http.MethodPut, url, `{"name":"new"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d", resp.StatusCode)
	}
	if got := decode[agents.Agent](t, resp); got.Name != "new" {
		t.Errorf("name = %q", got.Name)
	}

	resp = do(t, http.MethodDelete, url, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}
	if _, ok := sys.agents[a.ID]; ok {
		t.Error("agent still present")
	}
}
