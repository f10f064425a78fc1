// Package llm puts chat completion behind a single blocking Complete call.
// OpenAI-compatible endpoints such as Groq go through go-openai; ollama and
// azure go through go-agents providers.
package llm

import (
	"context"
	"errors"
)

// Message roles accepted by the completion endpoint.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

var (
	ErrEmptyResponse      = errors.New("llm returned no choices")
	ErrMissingCredentials = errors.New("llm api key not configured")
)

// Message is a single role-tagged chat message.
type Message struct {
	Role    string
	Content string
}

// Request is one completion call. Empty APIKey or Model fall back to the
// client defaults.
type Request struct {
	APIKey   string
	Model    string
	Messages []Message
}

// Client produces the reply text for a list of messages.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Prompt builds a message list of one system and one user message.
func Prompt(systemPrompt, user string) []Message {
	return []Message{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: user},
	}
}
