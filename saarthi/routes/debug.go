package routes

import (
	"net/http"

	"saarthi/saarthi/controllers"
	"saarthi/saarthi/utils/logging"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func DebugRoutes(ctrl *controllers.DebugController) chi.Router {
	r := chi.NewRouter()
	r.Get("/voice-logs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ctrl.VoiceLogs())
	})
	return r
}

// VoiceLogSocket serves GET /api/debug/voice-logs/ws.
func VoiceLogSocket(ctrl *controllers.DebugController) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			logging.ErrorLogger.Error("websocket accept error", zap.Error(err))
			return
		}
		ctrl.StreamVoiceLogs(r.Context(), conn)
	}
}
