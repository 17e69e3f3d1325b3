package controllers

import (
	"context"
	"encoding/json"
	"fmt"

	"saarthi/saarthi/agents/core"
	"saarthi/saarthi/services/voicelog"
	"saarthi/saarthi/utils/logging"
	"saarthi/saarthi/utils/types"

	"github.com/coder/websocket"
	"go.uber.org/zap"
)

type ChatController struct {
	orch  *core.Orchestrator
	voice *voicelog.Ring
}

func NewChatController(orch *core.Orchestrator, voice *voicelog.Ring) *ChatController {
	return &ChatController{orch: orch, voice: voice}
}

// Query runs one conversational turn and shapes it for the client.
func (c *ChatController) Query(ctx context.Context, req types.LLMQueryRequest) (types.LLMQueryResponse, error) {
	reply, err := c.orch.Respond(ctx, core.Request{
		Utterance: req.Query,
		Context:   req.Context,
		Location:  req.Location,
	})
	if err != nil {
		return types.LLMQueryResponse{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	meta := map[string]any{"session_id": reply.SessionID}
	if reply.Status == core.StatusFallback {
		meta["category"] = string(reply.Category)
		if len(reply.Slots) > 0 {
			meta["slots"] = reply.Slots
		}
	}
	if reply.DestinationChange != "" {
		meta["destination_change"] = reply.DestinationChange
		meta["reload_map"] = true
		if reply.NewDirections != nil {
			meta["new_directions"] = reply.NewDirections
		}
		c.log(fmt.Sprintf("destination changed to %s", reply.DestinationChange), "success")
	}
	c.log(fmt.Sprintf("reply (%s): %s", reply.Status, reply.Text), "info")

	return types.LLMQueryResponse{
		Reply:     reply.Text,
		Status:    string(reply.Status),
		SessionID: reply.SessionID,
		Metadata:  meta,
	}, nil
}

func (c *ChatController) log(msg, typ string) {
	if c.voice != nil {
		c.voice.Add(msg, typ)
	}
}

// ChatWebSocket answers one JSON LLMQueryRequest per text frame until the
// client disconnects. Session continuity is carried in each request's context.
func (c *ChatController) ChatWebSocket(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close(websocket.StatusInternalError, "internal error")
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				logging.AppLogger.Info("chat websocket closed", zap.Error(err))
			}
			return
		}
		if typ != websocket.MessageText {
			conn.Close(websocket.StatusUnsupportedData, "unsupported data")
			return
		}
		out := []byte(`{"error":"invalid json"}`)
		var req types.LLMQueryRequest
		if err := json.Unmarshal(data, &req); err == nil {
			out = c.answerFrame(ctx, req)
		}
		if err := conn.Write(ctx, websocket.MessageText, out); err != nil {
			logging.AppLogger.Info("chat websocket write failed", zap.Error(err))
			return
		}
	}
}

func (c *ChatController) answerFrame(ctx context.Context, req types.LLMQueryRequest) []byte {
	resp, err := c.Query(ctx, req)
	if err != nil {
		return []byte(`{"error":"query is required"}`)
	}
	out, err := json.Marshal(resp)
	if err != nil {
		logging.ErrorLogger.Error("chat response encode failed", zap.Error(err))
		return []byte(`{"error":"internal error"}`)
	}
	return out
}
