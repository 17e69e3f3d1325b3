package llm

import (
	"context"
	"strings"

	httputils "saarthi/saarthi/utils/http"
	"saarthi/saarthi/utils/logging"
)

const defaultOllamaModel = "llama3.1"

type OllamaClient struct {
	baseURL string
	opts    Options
}

// NewOllamaClient targets a local Ollama server, e.g. http://localhost:11434/api.
func NewOllamaClient(baseURL string, opts Options) *OllamaClient {
	if baseURL == "" {
		baseURL = "http://localhost:11434/api"
	}
	if opts.Model == "" {
		opts.Model = defaultOllamaModel
	}
	return &OllamaClient{baseURL: strings.TrimRight(baseURL, "/"), opts: opts}
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p,omitempty"`
	TopK        int     `json:"top_k,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	defer logging.LogDuration(ctx, "ollama_generate")()
	req := ollamaRequest{
		Model:  c.opts.Model,
		Prompt: prompt,
		Options: ollamaOptions{
			Temperature: c.opts.Temperature,
			TopP:        c.opts.TopP,
			TopK:        c.opts.TopK,
			NumPredict:  c.opts.MaxTokens,
		},
	}
	return retry(ctx, "ollama", c.opts, func(ctx context.Context) (string, error) {
		var resp ollamaResponse
		if err := httputils.PostJSON(ctx, c.baseURL+"/generate", req, &resp); err != nil {
			return "", err
		}
		return resp.Response, nil
	})
}
