package chat

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/agent-hub/internal/agents"
)

const directiveContract = `Reply in plain text unless a tool is required.
If and only if a tool is required, reply with exactly one JSON object and nothing else, in this form:
{"toolKey": "<tool key>", "toolArgs": {<arguments>}}
Do not wrap the object in prose. Any reply that is not this object is shown to the user as written.`

const noTools = "No tools are available. Always reply in plain text."

const summaryPrompt = "Rewrite the draft reply below as a concise final answer to the user. " +
	"Keep facts, names, numbers, and links intact. Reply with the answer only."

// SystemPrompt renders the system message for agent: its description (or a
// name line), one line per attached tool, and the directive contract.
func SystemPrompt(agent *agents.Agent, catalog ToolCatalog) string {
	var b strings.Builder

	if agent.Description != nil && strings.TrimSpace(*agent.Description) != "" {
		b.WriteString(strings.TrimSpace(*agent.Description))
	} else {
		fmt.Fprintf(&b, "You are %s.", agent.Name)
	}
	b.WriteString("\n\n")

	if len(agent.Tools) == 0 {
		b.WriteString(noTools)
		return b.String()
	}

	b.WriteString("Available tools:\n")
	for _, t := range agent.Tools {
		line, ok := catalog.Describe(t.Key)
		if !ok {
			line = t.Key
		}
		fmt.Fprintf(&b, "- %s\n", line)
	}
	b.WriteString("\n")
	b.WriteString(directiveContract)
	return b.String()
}

func summaryInput(message, draft string) string {
	return fmt.Sprintf("User message:\n%s\n\nDraft reply:\n%s", message, draft)
}
