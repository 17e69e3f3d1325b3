package llm

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"saarthi/saarthi/config"
	"saarthi/saarthi/utils/logging"

	"go.uber.org/zap"
)

var (
	// ErrGenerationUnavailable covers a missing, misconfigured or failing backend.
	ErrGenerationUnavailable = errors.New("llm: generation unavailable")
	// ErrGenerationEmpty means the backend answered without usable text.
	ErrGenerationEmpty = errors.New("llm: empty generation")
)

// Generator turns a complete prompt into generated text. Implementations
// return ErrGenerationEmpty for blank output and wrap every other failure in
// ErrGenerationUnavailable.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Options are the sampling settings shared by all backends.
type Options struct {
	Model       string
	MaxTokens   int
	Temperature float64
	TopP        float64
	TopK        int
	Attempts    int
	Backoff     time.Duration
}

func DefaultOptions() Options {
	return Options{
		MaxTokens:   200,
		Temperature: 1,
		TopP:        0.95,
		TopK:        50,
		Attempts:    3,
		Backoff:     time.Second,
	}
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NewGenerator picks the backend named by cfg.LLMProvider. It returns nil when
// the provider is "none" or its credentials are missing; callers treat a nil
// generator as permanently unavailable.
func NewGenerator(ctx context.Context, cfg config.Config) Generator {
	opts := DefaultOptions()
	opts.Model = cfg.LLMModel
	if cfg.LLMMaxTokens > 0 {
		opts.MaxTokens = cfg.LLMMaxTokens
	}
	opts.Temperature = cfg.LLMTemperature

	switch cfg.LLMProvider {
	case "gemini", "":
		if cfg.GeminiAPIKey == "" {
			logging.AppLogger.Warn("API_KEY_GEMINI not set, generation disabled")
			return nil
		}
		g, err := NewGeminiClient(ctx, GeminiConfig{APIKey: cfg.GeminiAPIKey, Options: opts})
		if err != nil {
			logging.ErrorLogger.Error("gemini client init failed", zap.Error(err))
			return nil
		}
		return g
	case "groq":
		if cfg.GroqAPIKey == "" {
			logging.AppLogger.Warn("API_KEY_GROQ not set, generation disabled")
			return nil
		}
		return NewGroqClient(cfg.GroqAPIKey, opts)
	case "ollama":
		return NewOllamaClient(cfg.OllamaBaseURL, opts)
	case "none":
		return nil
	default:
		logging.ErrorLogger.Error("unknown LLM_PROVIDER", zap.String("provider", cfg.LLMProvider))
		return nil
	}
}

// retry runs call up to attempts times with jittered linear backoff. Empty
// output and context cancellation end the loop immediately.
func retry(ctx context.Context, name string, opts Options, call func(context.Context) (string, error)) (string, error) {
	attempts := max(opts.Attempts, 1)
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		text, err := call(ctx)
		if err == nil {
			text = strings.TrimSpace(text)
			if text == "" {
				return "", ErrGenerationEmpty
			}
			return text, nil
		}
		if errors.Is(err, ErrGenerationEmpty) {
			return "", err
		}
		lastErr = err
		logging.AppLogger.Warn("generation attempt failed",
			zap.String("backend", name), zap.Int("attempt", attempt), zap.Error(err))
		if attempt == attempts || ctx.Err() != nil {
			break
		}
		wait := opts.Backoff * time.Duration(attempt)
		if wait > 0 {
			wait += rand.N(wait/2 + 1)
		}
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %s: %w", ErrGenerationUnavailable, name, ctx.Err())
		case <-time.After(wait):
		}
	}
	return "", fmt.Errorf("%w: %s: %w", ErrGenerationUnavailable, name, lastErr)
}
