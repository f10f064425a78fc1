package chat_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/agent-hub/internal/agents"
	"github.com/JaimeStill/agent-hub/internal/chat"
	"github.com/JaimeStill/agent-hub/internal/chatlogs"
	"github.com/JaimeStill/agent-hub/internal/llm"
	"github.com/JaimeStill/agent-hub/internal/metalogs"
	"github.com/JaimeStill/agent-hub/internal/registry"
	"github.com/JaimeStill/agent-hub/internal/tools"
)

type fakeAgents map[uuid.UUID]*agents.Agent

func (f fakeAgents) Find(ctx context.Context, id uuid.UUID) (*agents.Agent, error) {
	a, ok := f[id]
	if !ok {
		return nil, agents.ErrNotFound
	}
	return a, nil
}

type fakeTranscript struct {
	mu      sync.Mutex
	entries []chatlogs.Entry
}

func (f *fakeTranscript) Append(ctx context.Context, agentID uuid.UUID, role chatlogs.Role, message string) (*chatlogs.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := chatlogs.Entry{ID: int64(len(f.entries) + 1), AgentID: agentID, Role: role, Message: message, Timestamp: time.Now()}
	f.entries = append(f.entries, e)
	return &e, nil
}

type fakeAudit struct {
	records []metalogs.RecordCommand
}

func (f *fakeAudit) Record(ctx context.Context, cmd metalogs.RecordCommand) (*metalogs.Entry, error) {
	f.records = append(f.records, cmd)
	return &metalogs.Entry{ID: int64(len(f.records)), AgentID: cmd.AgentID, Query: cmd.Query, Response: cmd.Response, Metadata: cmd.Metadata}, nil
}

// scriptedLLM answers each call with the next step.
type scriptedLLM struct {
	mu       sync.Mutex
	steps    []step
	requests []llm.Request
}

type step struct {
	reply string
	err   error
	block bool
}

func (s *scriptedLLM) Complete(ctx context.Context, req llm.Request) (string, error) {
	s.mu.Lock()
	i := len(s.requests)
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if i >= len(s.steps) {
		return "", errors.New("unexpected llm call")
	}
	st := s.steps[i]
	if st.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return st.reply, st.err
}

func (s *scriptedLLM) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

type failingInvoker struct{ err error }

func (f failingInvoker) Invoke(ctx context.Context, handler string, config, args map[string]any) (string, error) {
	return "", f.err
}

type harness struct {
	agent      *agents.Agent
	transcript *fakeTranscript
	audit      *fakeAudit
	llm        *scriptedLLM
	orch       *chat.Orchestrator
}

func newHarness(t *testing.T, agent *agents.Agent, invoker chat.ToolInvoker, summarize bool, steps ...step) *harness {
	t.Helper()

	if agent.ID == uuid.Nil {
		agent.ID = uuid.New()
	}

	h := &harness{
		agent:      agent,
		transcript: &fakeTranscript{},
		audit:      &fakeAudit{},
		llm:        &scriptedLLM{steps: steps},
	}
	if invoker == nil {
		invoker = tools.NewInvoker()
	}

	h.orch = chat.New(chat.Deps{
		Agents:     fakeAgents{agent.ID: agent},
		Transcript: h.transcript,
		Audit:      h.audit,
		Invoker:    invoker,
		Catalog:    registry.Default(),
		LLM:        h.llm,
	}, chat.Config{Summarize: summarize, Timeout: 5 * time.Second}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	return h
}

func (h *harness) assertTranscript(t *testing.T, message, reply string) {
	t.Helper()

	if len(h.transcript.entries) != 2 {
		t.Fatalf("transcript entries = %d, want 2", len(h.transcript.entries))
	}
	user, agent := h.transcript.entries[0], h.transcript.entries[1]
	if user.Role != chatlogs.RoleUser || user.Message != message {
		t.Errorf("user turn = %+v", user)
	}
	if agent.Role != chatlogs.RoleAgent || agent.Message != reply {
		t.Errorf("agent turn = %+v, want message %q", agent, reply)
	}
}

func TestHandleChat_PlainText(t *testing.T) {
	h := newHarness(t, &agents.Agent{Name: "Helper"}, nil, false, step{reply: "Hi there!"})

	reply, err := h.orch.HandleChat(context.Background(), h.agent.ID, "hello")
	if err != nil {
		t.Fatalf("HandleChat: %v", err)
	}
	if reply != "Hi there!" {
		t.Errorf("reply = %q", reply)
	}
	h.assertTranscript(t, "hello", reply)

	req := h.llm.requests[0]
	if len(req.Messages) != 2 || req.Messages[0].Role != llm.RoleSystem || req.Messages[1].Content != "hello" {
		t.Errorf("primary request = %+v", req.Messages)
	}
}

func TestHandleChat_PlainTextSummarized(t *testing.T) {
	h := newHarness(t, &agents.Agent{Name: "Helper"}, nil, true,
		step{reply: "Hi there!"},
		step{reply: "Hi!"},
	)

	reply, err := h.orch.HandleChat(context.Background(), h.agent.ID, "hello")
	if err != nil {
		t.Fatalf("HandleChat: %v", err)
	}
	if reply != "Hi!" {
		t.Errorf("reply = %q", reply)
	}
	h.assertTranscript(t, "hello", "Hi!")

	if !strings.Contains(h.llm.requests[1].Messages[1].Content, "Hi there!") {
		t.Errorf("summary input = %q", h.llm.requests[1].Messages[1].Content)
	}
	if meta := h.audit.records[0].Metadata; !meta.Summarized || meta.Raw != "Hi there!" {
		t.Errorf("metadata = %+v", meta)
	}
}

func TestHandleChat_SummarizationRecovered(t *testing.T) {
	tests := []struct {
		name    string
		summary step
	}{
		{"error", step{err: errors.New("rate limited")}},
		{"empty", step{reply: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, &agents.Agent{Name: "Helper"}, nil, true, step{reply: "Hi there!"}, tt.summary)

			reply, err := h.orch.HandleChat(context.Background(), h.agent.ID, "hello")
			if err != nil {
				t.Fatalf("HandleChat: %v", err)
			}
			if reply != "Hi there!" {
				t.Errorf("reply = %q", reply)
			}
			h.assertTranscript(t, "hello", "Hi there!")
			if h.audit.records[0].Metadata.Summarized {
				t.Error("summarized should be false")
			}
		})
	}
}

func TestHandleChat_PrimaryFailure(t *testing.T) {
	h := newHarness(t, &agents.Agent{Name: "Helper"}, nil, true, step{err: errors.New("401 unauthorized")})

	_, err := h.orch.HandleChat(context.Background(), h.agent.ID, "hello")
	if !errors.Is(err, chat.ErrGateway) {
		t.Fatalf("err = %v, want ErrGateway", err)
	}

	if len(h.transcript.entries) != 1 || h.transcript.entries[0].Role != chatlogs.RoleUser {
		t.Errorf("transcript = %+v", h.transcript.entries)
	}
	if len(h.audit.records) != 0 {
		t.Errorf("audit records = %d, want 0", len(h.audit.records))
	}
	if h.llm.calls() != 1 {
		t.Errorf("llm calls = %d, want 1", h.llm.calls())
	}
}

func TestHandleChat_Timeout(t *testing.T) {
	agent := &agents.Agent{ID: uuid.New(), Name: "Helper"}
	llmClient := &scriptedLLM{steps: []step{{block: true}}}
	transcript := &fakeTranscript{}

	orch := chat.New(chat.Deps{
		Agents:     fakeAgents{agent.ID: agent},
		Transcript: transcript,
		Audit:      &fakeAudit{},
		Invoker:    tools.NewInvoker(),
		Catalog:    registry.Default(),
		LLM:        llmClient,
	}, chat.Config{Timeout: 20 * time.Millisecond}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := orch.HandleChat(context.Background(), agent.ID, "hello")
	if !errors.Is(err, chat.ErrGateway) {
		t.Fatalf("err = %v, want ErrGateway", err)
	}
	if len(transcript.entries) != 1 {
		t.Errorf("transcript entries = %d, want 1", len(transcript.entries))
	}
}

func TestHandleChat_InputErrors(t *testing.T) {
	h := newHarness(t, &agents.Agent{Name: "Helper"}, nil, false)

	if _, err := h.orch.HandleChat(context.Background(), uuid.New(), "hello"); !errors.Is(err, agents.ErrNotFound) {
		t.Errorf("unknown agent err = %v", err)
	}
	if _, err := h.orch.HandleChat(context.Background(), h.agent.ID, "  "); !errors.Is(err, chat.ErrInvalidInput) {
		t.Errorf("empty message err = %v", err)
	}
	if len(h.transcript.entries) != 0 || h.llm.calls() != 0 {
		t.Errorf("side effects: entries=%d calls=%d", len(h.transcript.entries), h.llm.calls())
	}
}

func TestHandleChat_GitHubMissingPR(t *testing.T) {
	gh := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/widgets/pulls/42" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer gh.Close()

	agent := &agents.Agent{
		Name: "Release Bot",
		Tools: []agents.ToolEntry{{
			Key:     "githubSummarizer",
			Handler: "githubSummarizer",
			Config:  map[string]any{"owner": "acme", "repo": "widgets"},
		}},
	}

	steps := []step{{reply: `{"toolKey":"githubSummarizer","toolArgs":{"prNumber":42}}`}}

	h := newHarness(t, agent, nil, false, steps...)
	h.orch = chat.New(chat.Deps{
		Agents:     fakeAgents{agent.ID: agent},
		Transcript: h.transcript,
		Audit:      h.audit,
		Invoker:    tools.NewInvoker(tools.NewGitHubSummarizer(tools.Transport{}, gh.URL, "", h.llm)),
		Catalog:    registry.Default(),
		LLM:        h.llm,
	}, chat.Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	reply, err := h.orch.HandleChat(context.Background(), agent.ID, "summarize PR 42")
	if err != nil {
		t.Fatalf("HandleChat: %v", err)
	}

	want := "Pull request #42 does not exist in acme/widgets"
	if reply != want {
		t.Errorf("reply = %q, want %q", reply, want)
	}
	h.assertTranscript(t, "summarize PR 42", want)

	if h.llm.calls() != 1 {
		t.Errorf("llm calls = %d, want 1", h.llm.calls())
	}

	meta := h.audit.records[0].Metadata
	if meta.ToolKey != "githubSummarizer" || meta.ToolHandler != "githubSummarizer" || meta.ToolResult != want {
		t.Errorf("metadata = %+v", meta)
	}
}

func TestHandleChat_ToolNotConfigured(t *testing.T) {
	h := newHarness(t, &agents.Agent{Name: "Helper"}, nil, false,
		step{reply: `{"toolKey":"slackNotifier","toolArgs":{"text":"hi"}}`},
	)

	reply, err := h.orch.HandleChat(context.Background(), h.agent.ID, "tell the team")
	if err != nil {
		t.Fatalf("HandleChat: %v", err)
	}

	want := `Tool "slackNotifier" is not configured for this agent.`
	if reply != want {
		t.Errorf("reply = %q, want %q", reply, want)
	}
	h.assertTranscript(t, "tell the team", want)
}

func TestHandleChat_ToolFailureRecovered(t *testing.T) {
	agent := &agents.Agent{
		Name:  "Notifier",
		Tools: []agents.ToolEntry{{Key: "slackNotifier", Config: map[string]any{"webhookUrl": "https://hooks.example.com/x"}}},
	}
	invoker := failingInvoker{err: errors.New("upstream call failed: connection refused")}

	h := newHarness(t, agent, invoker, false,
		step{reply: `{"toolKey":"slackNotifier","toolArgs":{"text":"deploy done"}}`},
	)

	reply, err := h.orch.HandleChat(context.Background(), agent.ID, "tell the team")
	if err != nil {
		t.Fatalf("HandleChat: %v", err)
	}

	want := "tool slackNotifier failed: upstream call failed: connection refused"
	if reply != want {
		t.Errorf("reply = %q, want %q", reply, want)
	}
	h.assertTranscript(t, "tell the team", want)

	if meta := h.audit.records[0].Metadata; meta.ToolError == "" || meta.ToolArgs["text"] != "deploy done" {
		t.Errorf("metadata = %+v", meta)
	}
}

func TestHandleChat_HandlerOverride(t *testing.T) {
	var got string
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("pong"))
	}))
	defer hook.Close()

	agent := &agents.Agent{
		Name: "Pinger",
		Tools: []agents.ToolEntry{{
			Key:     "groqChat",
			Handler: "http",
			Config:  map[string]any{"url": hook.URL, "method": "GET"},
		}},
	}

	h := newHarness(t, agent, tools.NewInvoker(tools.NewHTTPCaller(tools.Transport{})), false,
		step{reply: `{"toolKey":"groqChat","toolArgs":{"q":"ping"}}`},
	)

	reply, err := h.orch.HandleChat(context.Background(), agent.ID, "ping it")
	if err != nil {
		t.Fatalf("HandleChat: %v", err)
	}
	if reply != "pong" || got != "ping" {
		t.Errorf("reply = %q, query = %q", reply, got)
	}
	if meta := h.audit.records[0].Metadata; meta.ToolHandler != "http" {
		t.Errorf("handler = %q", meta.ToolHandler)
	}
}

func TestHandleChat_JSONPlainAnswer(t *testing.T) {
	h := newHarness(t, &agents.Agent{Name: "Helper"}, nil, false, step{reply: `{"answer": 42}`})

	reply, err := h.orch.HandleChat(context.Background(), h.agent.ID, "what is the answer")
	if err != nil {
		t.Fatalf("HandleChat: %v", err)
	}
	if reply != `{"answer": 42}` {
		t.Errorf("reply = %q", reply)
	}
	if h.audit.records[0].Metadata.ToolKey != "" {
		t.Error("plain JSON treated as directive")
	}
}
