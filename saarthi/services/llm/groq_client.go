package llm

import (
	"context"
	"errors"
	"strings"

	httputils "saarthi/saarthi/utils/http"
	"saarthi/saarthi/utils/logging"
)

const defaultGroqModel = "llama-3.1-8b-instant"

var errNoChoices = errors.New("no choices returned")

// GroqClient speaks Groq's OpenAI-compatible chat completions API.
type GroqClient struct {
	baseURL string
	apiKey  string
	opts    Options
}

func NewGroqClient(apiKey string, opts Options) *GroqClient {
	if opts.Model == "" {
		opts.Model = defaultGroqModel
	}
	return &GroqClient{
		baseURL: "https://api.groq.com/openai/v1",
		apiKey:  apiKey,
		opts:    opts,
	}
}

// WithBaseURL points the client at another OpenAI-compatible endpoint.
func (c *GroqClient) WithBaseURL(baseURL string) *GroqClient {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream"`
	Temperature float64   `json:"temperature"`
	TopP        float64   `json:"top_p,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func (c *GroqClient) Generate(ctx context.Context, prompt string) (string, error) {
	defer logging.LogDuration(ctx, "groq_generate")()
	req := chatRequest{
		Model:       c.opts.Model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: c.opts.Temperature,
		TopP:        c.opts.TopP,
		MaxTokens:   c.opts.MaxTokens,
	}
	return retry(ctx, "groq", c.opts, func(ctx context.Context) (string, error) {
		var resp chatResponse
		if err := httputils.PostJSONWithAuth(ctx, c.baseURL+"/chat/completions", c.apiKey, req, &resp); err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", errNoChoices
		}
		return resp.Choices[0].Message.Content, nil
	})
}
