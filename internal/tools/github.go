package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/JaimeStill/agent-hub/internal/llm"
	"github.com/JaimeStill/agent-hub/pkg/decode"
)

// GitHubSummarizerName is the handler name of the GitHub PR summarizer.
const GitHubSummarizerName = "githubSummarizer"

// GitHubConfig is the agent-level configuration of the PR summarizer.
type GitHubConfig struct {
	Owner  string `json:"owner" validate:"required" jsonschema:"description=Repository owner or organization"`
	Repo   string `json:"repo" validate:"required" jsonschema:"description=Repository name"`
	Token  string `json:"token,omitempty" jsonschema:"description=GitHub token; the server token is used when empty"`
	APIKey string `json:"apiKey,omitempty" jsonschema:"description=LLM API key override for the summary call"`
	Model  string `json:"model,omitempty" jsonschema:"description=LLM model override for the summary call"`
}

type pullRequest struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`
}

// GitHubSummarizer fetches a pull request and asks the LLM for a summary.
type GitHubSummarizer struct {
	transport Transport
	baseURL   string
	token     string
	llm       llm.Client
}

// NewGitHubSummarizer creates the summarizer. token is used when the agent
// config carries none.
func NewGitHubSummarizer(transport Transport, baseURL, token string, client llm.Client) *GitHubSummarizer {
	return &GitHubSummarizer{
		transport: transport,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		token:     token,
		llm:       client,
	}
}

func (g *GitHubSummarizer) Name() string { return GitHubSummarizerName }

func (g *GitHubSummarizer) Invoke(ctx context.Context, config, args map[string]any) (string, error) {
	cfg, err := decode.FromMap[GitHubConfig](config)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if cfg.Owner == "" || cfg.Repo == "" {
		return "", fmt.Errorf("%w: owner and repo are required", ErrConfiguration)
	}
	if cfg.Token == "" {
		cfg.Token = g.token
	}

	number, latest, err := prNumber(args)
	if err != nil {
		return "", err
	}

	slug := cfg.Owner + "/" + cfg.Repo

	if latest {
		number, err = g.latest(ctx, cfg)
		if err != nil {
			return "", err
		}
		if number == 0 {
			return fmt.Sprintf("No pull requests found in %s", slug), nil
		}
	}

	var pr pullRequest
	status, err := g.get(ctx, cfg, fmt.Sprintf("/pulls/%d", number), &pr)
	if err != nil {
		return "", err
	}
	if status == http.StatusNotFound {
		return fmt.Sprintf("Pull request #%d does not exist in %s", number, slug), nil
	}

	body := pr.Body
	if body == "" {
		body = "(no description)"
	}

	prompt := fmt.Sprintf(
		"Summarize this PR (#%d):\n\nTitle: %s\n\nDescription:\n%s\n\nURL: %s",
		number, pr.Title, body, pr.HTMLURL,
	)

	summary, err := g.llm.Complete(ctx, llm.Request{
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		Messages: llm.Prompt(fmt.Sprintf("You are a PR summarization assistant for %s.", slug), prompt),
	})
	if err != nil {
		return "", fmt.Errorf("%w: summarize pull request: %v", ErrUpstream, err)
	}
	return summary, nil
}

// latest returns the most recently opened open pull request, or 0 when the
// repository has none.
func (g *GitHubSummarizer) latest(ctx context.Context, cfg GitHubConfig) (int, error) {
	var prs []pullRequest
	status, err := g.get(ctx, cfg, "/pulls?state=open&sort=created&direction=desc&per_page=1", &prs)
	if err != nil {
		return 0, err
	}
	if status == http.StatusNotFound || len(prs) == 0 {
		return 0, nil
	}
	return prs[0].Number, nil
}

// get issues an authenticated request below /repos/{owner}/{repo}. A 404 is
// reported through the status without error so callers can word it.
func (g *GitHubSummarizer) get(ctx context.Context, cfg GitHubConfig, path string, out any) (int, error) {
	endpoint := fmt.Sprintf(
		"%s/repos/%s/%s%s",
		g.baseURL, url.PathEscape(cfg.Owner), url.PathEscape(cfg.Repo), path,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Token)
	}

	resp, err := g.transport.client().Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: github request: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, fmt.Errorf("%w: github api error: %s", ErrUpstream, resp.Status)
	}

	data, err := g.transport.readBody(resp)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: read github response: %v", ErrUpstream, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: decode github response: %v", ErrUpstream, err)
	}
	return resp.StatusCode, nil
}

// prNumber resolves args.prNumber. JSON numbers, numeric strings, and the
// literal "latest" are accepted. Numbers must be whole.
func prNumber(args map[string]any) (int, bool, error) {
	raw, ok := args["prNumber"]
	if !ok || raw == nil {
		return 0, false, fmt.Errorf("%w: prNumber is required", ErrInvalidArgs)
	}

	switch v := raw.(type) {
	case float64:
		return wholeNumber(v)
	case int:
		return wholeNumber(float64(v))
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false, fmt.Errorf("%w: prNumber must be a positive integer", ErrInvalidArgs)
		}
		return wholeNumber(f)
	case string:
		s := strings.TrimPrefix(strings.TrimSpace(v), "#")
		if strings.EqualFold(s, "latest") {
			return 0, true, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false, fmt.Errorf("%w: prNumber must be a number or \"latest\"", ErrInvalidArgs)
		}
		return wholeNumber(f)
	default:
		return 0, false, fmt.Errorf("%w: prNumber must be a number or \"latest\"", ErrInvalidArgs)
	}
}

func wholeNumber(f float64) (int, bool, error) {
	if f < 1 || f > math.MaxInt32 || f != math.Trunc(f) {
		return 0, false, fmt.Errorf("%w: prNumber must be a positive integer", ErrInvalidArgs)
	}
	return int(f), false, nil
}
