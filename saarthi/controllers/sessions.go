package controllers

import (
	"context"
	"time"

	"saarthi/saarthi/services/session"
	"saarthi/saarthi/sources/psql/dao"
	"saarthi/saarthi/utils/types"
)

type SessionsController struct {
	store       *session.Store
	transcripts *dao.TranscriptDAO
}

// NewSessionsController takes an optional transcript DAO; without one the
// archive listing is empty.
func NewSessionsController(store *session.Store, transcripts *dao.TranscriptDAO) *SessionsController {
	return &SessionsController{store: store, transcripts: transcripts}
}

// Messages returns a live session's history.
func (c *SessionsController) Messages(sessionID string) ([]types.SessionMessage, error) {
	sess, err := c.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]types.SessionMessage, 0, len(sess.Messages))
	for _, m := range sess.Messages {
		out = append(out, types.SessionMessage{
			Role:      string(m.Role),
			Content:   m.Content,
			Timestamp: m.Timestamp.Format(time.RFC3339),
		})
	}
	return out, nil
}

// Delete drops the live session and its archived transcript.
func (c *SessionsController) Delete(ctx context.Context, sessionID string) error {
	if err := c.store.Delete(sessionID); err != nil {
		return err
	}
	if c.transcripts != nil {
		return c.transcripts.DeleteSession(ctx, sessionID)
	}
	return nil
}

func (c *SessionsController) ListArchived(ctx context.Context, limit int) ([]types.ChatSessionSummary, error) {
	if c.transcripts == nil {
		return []types.ChatSessionSummary{}, nil
	}
	recs, err := c.transcripts.ListRecentSessions(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]types.ChatSessionSummary, 0, len(recs))
	for _, r := range recs {
		out = append(out, types.ChatSessionSummary{
			SessionID:       r.SessionID,
			LastMessage:     r.LastMessage,
			LastMessageRole: r.LastMessageRole,
			LastActivity:    r.UpdatedAt.Format(time.RFC3339),
			Turns:           r.Turns,
		})
	}
	return out, nil
}
