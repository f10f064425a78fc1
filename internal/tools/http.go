package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/JaimeStill/agent-hub/pkg/decode"
)

// HTTPName is the handler name of the generic webhook caller.
const HTTPName = "http"

var placeholderRegex = regexp.MustCompile(`\{\{(\w+)\}\}`)

// HTTPConfig is the agent-level configuration of the webhook caller.
type HTTPConfig struct {
	URL          string            `json:"url" validate:"required,url" jsonschema:"description=Endpoint URL"`
	Method       string            `json:"method,omitempty" validate:"omitempty,oneof=GET POST PUT PATCH DELETE get post put patch delete" jsonschema:"description=HTTP method (default POST)"`
	Headers      map[string]string `json:"headers,omitempty" jsonschema:"description=Extra request headers"`
	BodyTemplate string            `json:"bodyTemplate,omitempty" jsonschema:"description=Request body with {{argName}} placeholders"`
}

// HTTPCaller sends a configured request built from the directive arguments.
type HTTPCaller struct {
	transport Transport
}

func NewHTTPCaller(transport Transport) *HTTPCaller {
	return &HTTPCaller{transport: transport}
}

func (h *HTTPCaller) Name() string { return HTTPName }

func (h *HTTPCaller) Invoke(ctx context.Context, config, args map[string]any) (string, error) {
	cfg, err := decode.FromMap[HTTPConfig](config)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if cfg.URL == "" {
		return "", fmt.Errorf("%w: url is required", ErrConfiguration)
	}

	method := strings.ToUpper(cfg.Method)
	if method == "" {
		method = http.MethodPost
	}

	target, body, contentType, err := buildRequest(cfg, method, args)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range cfg.Headers {
		req.Header.Set(k, v)
	}

	resp, err := h.transport.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s %s: %v", ErrUpstream, method, cfg.URL, err)
	}
	defer resp.Body.Close()

	data, err := h.transport.readBody(resp)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s %s returned %s", ErrUpstream, method, cfg.URL, resp.Status)
	}

	return formatBody(data), nil
}

// buildRequest resolves the target URL and body. Without a template, GET and
// DELETE carry args as query parameters and other methods send them as JSON.
// A template starting with { or [ is a JSON template: string values are
// escaped on substitution and the rendered body must be valid JSON.
func buildRequest(cfg HTTPConfig, method string, args map[string]any) (string, io.Reader, string, error) {
	if cfg.BodyTemplate != "" {
		if !isJSONTemplate(cfg.BodyTemplate) {
			rendered := renderTemplate(cfg.BodyTemplate, args, argString)
			return cfg.URL, strings.NewReader(rendered), "text/plain; charset=utf-8", nil
		}

		rendered := renderTemplate(cfg.BodyTemplate, args, jsonArgString)
		if !json.Valid([]byte(rendered)) {
			return "", nil, "", fmt.Errorf("%w: body template renders invalid JSON: %s", ErrInvalidArgs, rendered)
		}
		return cfg.URL, strings.NewReader(rendered), "application/json", nil
	}

	if method == http.MethodGet || method == http.MethodDelete {
		u, err := url.Parse(cfg.URL)
		if err != nil {
			return "", nil, "", fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		q := u.Query()
		for k, v := range args {
			q.Set(k, argString(v))
		}
		u.RawQuery = q.Encode()
		return u.String(), nil, "", nil
	}

	payload, err := json.Marshal(args)
	if err != nil {
		return "", nil, "", fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	return cfg.URL, bytes.NewReader(payload), "application/json", nil
}

func isJSONTemplate(tmpl string) bool {
	trimmed := strings.TrimSpace(tmpl)
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
}

// renderTemplate replaces {{name}} with format(args[name]). Missing
// arguments render as the empty string.
func renderTemplate(tmpl string, args map[string]any, format func(any) string) string {
	return placeholderRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := placeholderRegex.FindStringSubmatch(match)[1]
		return format(args[name])
	})
}

func argString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// jsonArgString renders strings as the contents of a JSON string literal,
// so placeholders belong inside quotes. Other values render as JSON.
func jsonArgString(v any) string {
	s, ok := v.(string)
	if !ok {
		return argString(v)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return s
	}
	quoted := strings.TrimSuffix(buf.String(), "\n")
	return quoted[1 : len(quoted)-1]
}

// formatBody indents JSON bodies with two spaces and returns anything else verbatim.
func formatBody(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && json.Valid(trimmed) {
		var out bytes.Buffer
		if err := json.Indent(&out, trimmed, "", "  "); err == nil {
			return out.String()
		}
	}
	return string(data)
}
