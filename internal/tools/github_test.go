package tools_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/agent-hub/internal/tools"
)

var acme = map[string]any{"owner": "acme", "repo": "widgets"}

func githubServer(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.URL.Path]; ok {
			h(w, r)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGitHubSummarizer_Summarizes(t *testing.T) {
	var auth string
	srv := githubServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/repos/acme/widgets/pulls/7": func(w http.ResponseWriter, r *http.Request) {
			auth = r.Header.Get("Authorization")
			w.Write([]byte(`{"number":7,"title":"Add gears","body":"","html_url":"https://github.com/acme/widgets/pull/7"}`))
		},
	})

	fake := &fakeLLM{reply: "Adds gears."}
	h := tools.NewGitHubSummarizer(tools.Transport{}, srv.URL, "server-token", fake)

	got, err := h.Invoke(context.Background(), acme, map[string]any{"prNumber": float64(7)})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if got != "Adds gears." {
		t.Errorf("reply = %q", got)
	}
	if auth != "Bearer server-token" {
		t.Errorf("authorization = %q", auth)
	}

	req := fake.requests[0]
	if req.Messages[0].Content != "You are a PR summarization assistant for acme/widgets." {
		t.Errorf("system prompt = %q", req.Messages[0].Content)
	}
	user := req.Messages[1].Content
	for _, want := range []string{"(#7)", "Title: Add gears", "(no description)", "https://github.com/acme/widgets/pull/7"} {
		if !strings.Contains(user, want) {
			t.Errorf("user prompt missing %q:\n%s", want, user)
		}
	}
}

func TestGitHubSummarizer_ConfigTokenWins(t *testing.T) {
	var auth string
	srv := githubServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/repos/acme/widgets/pulls/3": func(w http.ResponseWriter, r *http.Request) {
			auth = r.Header.Get("Authorization")
			w.Write([]byte(`{"number":3,"title":"t","body":"b","html_url":"u"}`))
		},
	})

	h := tools.NewGitHubSummarizer(tools.Transport{}, srv.URL, "server-token", &fakeLLM{reply: "ok"})
	cfg := map[string]any{"owner": "acme", "repo": "widgets", "token": "agent-token"}

	if _, err := h.Invoke(context.Background(), cfg, map[string]any{"prNumber": "3"}); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if auth != "Bearer agent-token" {
		t.Errorf("authorization = %q", auth)
	}
}

func TestGitHubSummarizer_NotFound(t *testing.T) {
	srv := githubServer(t, nil)
	fake := &fakeLLM{reply: "unused"}
	h := tools.NewGitHubSummarizer(tools.Transport{}, srv.URL, "", fake)

	got, err := h.Invoke(context.Background(), acme, map[string]any{"prNumber": float64(42)})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if got != "Pull request #42 does not exist in acme/widgets" {
		t.Errorf("reply = %q", got)
	}
	if fake.calls() != 0 {
		t.Errorf("llm called %d times, want 0", fake.calls())
	}
}

func TestGitHubSummarizer_Latest(t *testing.T) {
	t.Run("no open pull requests", func(t *testing.T) {
		var query string
		srv := githubServer(t, map[string]func(http.ResponseWriter, *http.Request){
			"/repos/acme/widgets/pulls": func(w http.ResponseWriter, r *http.Request) {
				query = r.URL.RawQuery
				w.Write([]byte(`[]`))
			},
		})
		fake := &fakeLLM{reply: "unused"}
		h := tools.NewGitHubSummarizer(tools.Transport{}, srv.URL, "", fake)

		got, err := h.Invoke(context.Background(), acme, map[string]any{"prNumber": "latest"})
		if err != nil {
			t.Fatalf("Invoke: %v", err)
		}
		if got != "No pull requests found in acme/widgets" {
			t.Errorf("reply = %q", got)
		}
		if fake.calls() != 0 {
			t.Errorf("llm called %d times, want 0", fake.calls())
		}
		if !strings.Contains(query, "state=open") || !strings.Contains(query, "direction=desc") {
			t.Errorf("query = %q", query)
		}
	})

	t.Run("resolves newest", func(t *testing.T) {
		srv := githubServer(t, map[string]func(http.ResponseWriter, *http.Request){
			"/repos/acme/widgets/pulls": func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[{"number":12}]`))
			},
			"/repos/acme/widgets/pulls/12": func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"number":12,"title":"Newest","body":"b","html_url":"u"}`))
			},
		})
		fake := &fakeLLM{reply: "summary of 12"}
		h := tools.NewGitHubSummarizer(tools.Transport{}, srv.URL, "", fake)

		got, err := h.Invoke(context.Background(), acme, map[string]any{"prNumber": "latest"})
		if err != nil {
			t.Fatalf("Invoke: %v", err)
		}
		if got != "summary of 12" {
			t.Errorf("reply = %q", got)
		}
	})
}

func TestGitHubSummarizer_PRNumberForms(t *testing.T) {
	srv := githubServer(t, nil)
	h := tools.NewGitHubSummarizer(tools.Transport{}, srv.URL, "", &fakeLLM{})

	tests := []struct {
		name string
		arg  any
	}{
		{"float", float64(42)},
		{"int", 42},
		{"json integer", json.Number("42")},
		{"json whole float", json.Number("42.0")},
		{"numeric string", "42"},
		{"hash prefixed string", "#42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.Invoke(context.Background(), acme, map[string]any{"prNumber": tt.arg})
			if err != nil {
				t.Fatalf("Invoke: %v", err)
			}
			if got != "Pull request #42 does not exist in acme/widgets" {
				t.Errorf("reply = %q", got)
			}
		})
	}
}

func TestGitHubSummarizer_Errors(t *testing.T) {
	srv := githubServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/repos/acme/widgets/pulls/5": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
	})
	h := tools.NewGitHubSummarizer(tools.Transport{}, srv.URL, "", &fakeLLM{})

	tests := []struct {
		name   string
		config map[string]any
		args   map[string]any
		want   error
	}{
		{"upstream status", acme, map[string]any{"prNumber": 5}, tools.ErrUpstream},
		{"missing pr number", acme, map[string]any{}, tools.ErrInvalidArgs},
		{"bad pr number", acme, map[string]any{"prNumber": "abc"}, tools.ErrInvalidArgs},
		{"fractional pr number", acme, map[string]any{"prNumber": 1.5}, tools.ErrInvalidArgs},
		{"fractional json number", acme, map[string]any{"prNumber": json.Number("42.5")}, tools.ErrInvalidArgs},
		{"zero pr number", acme, map[string]any{"prNumber": json.Number("0")}, tools.ErrInvalidArgs},
		{"missing repo", map[string]any{"owner": "acme"}, map[string]any{"prNumber": 1}, tools.ErrConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Invoke(context.Background(), tt.config, tt.args)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
