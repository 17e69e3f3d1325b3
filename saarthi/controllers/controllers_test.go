package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"saarthi/saarthi/services/session"
	"saarthi/saarthi/services/voicelog"
	"saarthi/saarthi/services/wake"
	"saarthi/saarthi/utils/types"
)

func TestHealthCheck(t *testing.T) {
	hc := NewHealthController(session.NewStore())
	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()

	hc.HealthCheck(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	expectedBody := `{"status": "ok"}`
	if rr.Body.String() != expectedBody {
		t.Errorf("expected body %q, got %q", expectedBody, rr.Body.String())
	}

	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("expected Content-Type application/json, got %v", rr.Header().Get("Content-Type"))
	}
}

func TestBannerCountsSessions(t *testing.T) {
	store := session.NewStore()
	store.Create("", "")
	store.Create("", "")
	hc := NewHealthController(store)
	rr := httptest.NewRecorder()

	hc.Banner(rr, httptest.NewRequest("GET", "/", nil))

	var body struct {
		Status   string `json:"status"`
		Sessions int    `json:"sessions"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode banner: %v", err)
	}
	if body.Status != "running" || body.Sessions != 2 {
		t.Errorf("unexpected banner %+v", body)
	}
}

func TestWakeDetectLogsToVoiceRing(t *testing.T) {
	ring := voicelog.NewRing(5)
	c := NewWakeController(wake.NewDetector(nil, nil), ring)

	resp, err := c.Detect(types.WakeWordRequest{Text: "Suno Saarthi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Detected || resp.Confidence != wake.ConfidencePrimary || resp.WakeWordFound == nil || *resp.WakeWordFound != "suno saarthi" {
		t.Errorf("unexpected response %+v", resp)
	}
	if got := ring.Snapshot(); len(got) != 1 || got[0].Type != "success" {
		t.Errorf("expected one success entry, got %+v", got)
	}

	if _, err := c.Detect(types.WakeWordRequest{Text: "   "}); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestSessionsControllerWithoutArchive(t *testing.T) {
	store := session.NewStore()
	id := store.Create("", "")
	if err := store.AddMessage(id, session.RoleUser, "namaste"); err != nil {
		t.Fatal(err)
	}
	c := NewSessionsController(store, nil)

	msgs, err := c.Messages(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Role != "user" || msgs[0].Content != "namaste" {
		t.Errorf("unexpected messages %+v", msgs)
	}

	list, err := c.ListArchived(context.Background(), 10)
	if err != nil || len(list) != 0 {
		t.Errorf("expected empty archive listing, got %v %v", list, err)
	}

	if err := c.Delete(context.Background(), id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := c.Messages(id); !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}
