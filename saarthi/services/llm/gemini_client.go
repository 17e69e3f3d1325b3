package llm

import (
	"context"
	"fmt"

	"saarthi/saarthi/utils/logging"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

type GeminiConfig struct {
	APIKey string
	// BaseURL overrides the API endpoint; empty uses the public Gemini API.
	BaseURL string
	Options Options
}

type GeminiClient struct {
	client *genai.Client
	model  string
	opts   Options
	config *genai.GenerateContentConfig
}

func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	opts := cfg.Options
	model := opts.Model
	if model == "" {
		model = defaultGeminiModel
	}
	temp := float32(opts.Temperature)
	topP := float32(opts.TopP)
	topK := float32(opts.TopK)
	gen := &genai.GenerateContentConfig{
		Temperature:     &temp,
		TopP:            &topP,
		MaxOutputTokens: int32(opts.MaxTokens),
	}
	if opts.TopK > 0 {
		gen.TopK = &topK
	}
	return &GeminiClient{client: client, model: model, opts: opts, config: gen}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	defer logging.LogDuration(ctx, "gemini_generate")()
	return retry(ctx, "gemini", c.opts, func(ctx context.Context) (string, error) {
		res, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.config)
		if err != nil {
			return "", err
		}
		return res.Text(), nil
	})
}
