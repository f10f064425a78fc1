package chat

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

// Directive is a tool call requested by the LLM.
type Directive struct {
	ToolKey  string         `json:"toolKey"`
	ToolArgs map[string]any `json:"toolArgs"`
}

var fenced = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// ParseDirective reports whether reply is a tool directive. The reply must
// be exactly one JSON object, optionally wrapped in a ```json fence, with a
// non-empty string toolKey and an object toolArgs. Anything else is plain
// text, including JSON that lacks either field.
func ParseDirective(reply string) (Directive, bool) {
	text := strings.TrimSpace(reply)
	if m := fenced.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	if !strings.HasPrefix(text, "{") {
		return Directive{}, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return Directive{}, false
	}

	var key string
	if err := json.Unmarshal(fields["toolKey"], &key); err != nil || strings.TrimSpace(key) == "" {
		return Directive{}, false
	}

	raw := bytes.TrimSpace(fields["toolArgs"])
	if len(raw) == 0 || raw[0] != '{' {
		return Directive{}, false
	}

	args := make(map[string]any)
	argDec := json.NewDecoder(bytes.NewReader(raw))
	argDec.UseNumber()
	if err := argDec.Decode(&args); err != nil {
		return Directive{}, false
	}

	return Directive{ToolKey: strings.TrimSpace(key), ToolArgs: args}, true
}
