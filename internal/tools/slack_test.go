package tools_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/agent-hub/internal/tools"
)

func TestSlackNotifier(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		want    string
		message string
	}{
		{"ok", http.StatusOK, tools.SlackStatusSuccess, "Your message has been sent to Slack!"},
		{"rejected", http.StatusForbidden, tools.SlackStatusError, "Slack webhook failed: 403 Forbidden"},
		{"server error", http.StatusInternalServerError, tools.SlackStatusError, "Slack webhook failed: 500 Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var received map[string]string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewDecoder(r.Body).Decode(&received)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			h := tools.NewSlackNotifier(tools.Transport{})
			out, err := h.Invoke(context.Background(),
				map[string]any{"webhookUrl": srv.URL},
				map[string]any{"text": "deploy finished"},
			)
			if err != nil {
				t.Fatalf("Invoke: %v", err)
			}

			var result tools.SlackResult
			if err := json.Unmarshal([]byte(out), &result); err != nil {
				t.Fatalf("result is not JSON: %q", out)
			}
			if result.Status != tt.want {
				t.Errorf("status = %q, want %q", result.Status, tt.want)
			}
			if result.Message != tt.message {
				t.Errorf("message = %q, want %q", result.Message, tt.message)
			}
			if result.Text != "deploy finished" || received["text"] != "deploy finished" {
				t.Errorf("text = %q, received %v", result.Text, received)
			}
		})
	}
}

func TestSlackNotifier_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	unreachable := srv.URL
	srv.Close()

	h := tools.NewSlackNotifier(tools.Transport{})

	tests := []struct {
		name   string
		config map[string]any
		args   map[string]any
		want   error
	}{
		{"network failure", map[string]any{"webhookUrl": unreachable}, map[string]any{"text": "x"}, tools.ErrUpstream},
		{"missing text", map[string]any{"webhookUrl": unreachable}, map[string]any{}, tools.ErrInvalidArgs},
		{"missing webhook", map[string]any{}, map[string]any{"text": "x"}, tools.ErrConfiguration},
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
