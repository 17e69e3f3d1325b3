// saarthi/utils/http/httputils.go
package httputils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is shared by the outbound collaborators; per-call deadlines come from ctx.
var Client = &http.Client{Timeout: 30 * time.Second}

// StatusError reports a non-2xx upstream reply.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bad status: %d", e.Code)
}

func do(req *http.Request, resp interface{}) error {
	r, err := Client.Do(req)
	if err != nil {
		return err
	}
	defer r.Body.Close()
	if r.StatusCode < 200 || r.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(r.Body, 2048))
		return &StatusError{Code: r.StatusCode, Body: string(body)}
	}
	if resp != nil {
		return json.NewDecoder(r.Body).Decode(resp)
	}
	return nil
}

func newJSONRequest(ctx context.Context, target string, body interface{}) (*http.Request, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func PostJSON(ctx context.Context, target string, body interface{}, resp interface{}) error {
	req, err := newJSONRequest(ctx, target, body)
	if err != nil {
		return err
	}
	return do(req, resp)
}

func PostJSONWithAuth(ctx context.Context, target, apiKey string, body interface{}, resp interface{}) error {
	req, err := newJSONRequest(ctx, target, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	return do(req, resp)
}
