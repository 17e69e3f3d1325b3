package routes

import (
	"net/http"

	"saarthi/saarthi/controllers"
	"saarthi/saarthi/utils/logging"
	"saarthi/saarthi/utils/types"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func ChatRoutes(ctrl *controllers.ChatController) chi.Router {
	r := chi.NewRouter()
	// POST /api/llm/query : one conversational turn
	r.Post("/query", func(w http.ResponseWriter, r *http.Request) {
		var req types.LLMQueryRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		resp, err := ctrl.Query(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})
	return r
}

// ChatSocket serves GET /api/llm/ws.
func ChatSocket(ctrl *controllers.ChatController) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			logging.ErrorLogger.Error("websocket accept error", zap.Error(err))
			return
		}
		ctrl.ChatWebSocket(r.Context(), conn)
	}
}
