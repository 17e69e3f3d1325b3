package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"saarthi/saarthi/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastOptions() Options {
	opts := DefaultOptions()
	opts.Backoff = 0
	return opts
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	var calls int
	out, err := retry(context.Background(), "test", fastOptions(), func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("503")
		}
		return "  Seedhe chalo \n", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Seedhe chalo", out)
	assert.Equal(t, 3, calls)
}

func TestRetry_ExhaustedIsUnavailable(t *testing.T) {
	var calls int
	_, err := retry(context.Background(), "test", fastOptions(), func(context.Context) (string, error) {
		calls++
		return "", errors.New("boom")
	})
	assert.ErrorIs(t, err, ErrGenerationUnavailable)
	assert.Equal(t, 3, calls)
}

func TestRetry_EmptyIsNotRetried(t *testing.T) {
	var calls int
	_, err := retry(context.Background(), "test", fastOptions(), func(context.Context) (string, error) {
		calls++
		return "   ", nil
	})
	assert.ErrorIs(t, err, ErrGenerationEmpty)
	assert.Equal(t, 1, calls)
}

func TestRetry_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	opts := fastOptions()
	opts.Backoff = time.Hour
	var calls int
	_, err := retry(ctx, "test", opts, func(context.Context) (string, error) {
		calls++
		cancel()
		return "", errors.New("boom")
	})
	assert.ErrorIs(t, err, ErrGenerationUnavailable)
	assert.Equal(t, 1, calls)
}

func TestOllamaClient_Generate(t *testing.T) {
	var got ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(ollamaResponse{Response: "Left lo", Done: true})
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL+"/api/", fastOptions())
	out, err := c.Generate(context.Background(), "User: kidhar?\nSaarthi:")
	require.NoError(t, err)
	assert.Equal(t, "Left lo", out)
	assert.Equal(t, defaultOllamaModel, got.Model)
	assert.False(t, got.Stream)
	assert.Equal(t, 200, got.Options.NumPredict)
}

func TestGroqClient_Generate(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, "/chat/completions", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"x","choices":[{"message":{"role":"assistant","content":"Haan"}}]}`))
	}))
	defer srv.Close()

	out, err := NewGroqClient("secret", fastOptions()).WithBaseURL(srv.URL).Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "Haan", out)
	assert.Equal(t, "Bearer secret", auth)
}

func TestGroqClient_ServerErrorsAreUnavailable(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewGroqClient("k", fastOptions()).WithBaseURL(srv.URL).Generate(context.Background(), "p")
	assert.ErrorIs(t, err, ErrGenerationUnavailable)
	assert.Equal(t, int32(3), hits.Load())
}

func TestGroqClient_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewGroqClient("k", fastOptions()).WithBaseURL(srv.URL).Generate(context.Background(), "p")
	assert.ErrorIs(t, err, errNoChoices)
}

func TestGeminiClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-test:generateContent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Saarthi: Aage right"}]},"finishReason":"STOP"}]}`))
	}))
	defer srv.Close()

	opts := fastOptions()
	opts.Model = "gemini-test"
	c, err := NewGeminiClient(context.Background(), GeminiConfig{APIKey: "k", BaseURL: srv.URL, Options: opts})
	require.NoError(t, err)
	out, err := c.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Saarthi: Aage right", out)
}

func TestNewGenerator(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, NewGenerator(ctx, config.Config{LLMProvider: "gemini"}))
	assert.Nil(t, NewGenerator(ctx, config.Config{LLMProvider: "groq"}))
	assert.Nil(t, NewGenerator(ctx, config.Config{LLMProvider: "none"}))
	assert.Nil(t, NewGenerator(ctx, config.Config{LLMProvider: "watson"}))
	assert.IsType(t, &OllamaClient{}, NewGenerator(ctx, config.Config{LLMProvider: "ollama"}))
	assert.IsType(t, &GroqClient{}, NewGenerator(ctx, config.Config{LLMProvider: "groq", GroqAPIKey: "k"}))
}
