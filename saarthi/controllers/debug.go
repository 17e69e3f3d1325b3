package controllers

import (
	"context"
	"encoding/json"

	"saarthi/saarthi/services/voicelog"
	"saarthi/saarthi/utils/logging"

	"github.com/coder/websocket"
	"go.uber.org/zap"
)

type DebugController struct {
	voice *voicelog.Ring
}

func NewDebugController(voice *voicelog.Ring) *DebugController {
	return &DebugController{voice: voice}
}

func (c *DebugController) VoiceLogs() []voicelog.Entry {
	return c.voice.Snapshot()
}

// StreamVoiceLogs replays the retained entries and then forwards new ones
// until the client goes away.
func (c *DebugController) StreamVoiceLogs(ctx context.Context, conn *websocket.Conn) {
	snap, ch, cancel := c.voice.Subscribe(32)
	defer cancel()

	// reads only detect the client closing
	ctx = conn.CloseRead(ctx)

	send := func(e voicelog.Entry) bool {
		data, err := json.Marshal(e)
		if err != nil {
			return false
		}
		if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
			logging.AppLogger.Info("voice log stream closed", zap.Error(err))
			return false
		}
		return true
	}
	for _, e := range snap {
		if !send(e) {
			return
		}
	}
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case e, ok := <-ch:
			if !ok || !send(e) {
				return
			}
		}
	}
}
