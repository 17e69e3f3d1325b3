package routes

import (
	"net/http"

	"saarthi/saarthi/controllers"
	"saarthi/saarthi/utils/types"

	"github.com/go-chi/chi/v5"
)

func WakeRoutes(ctrl *controllers.WakeController) chi.Router {
	r := chi.NewRouter()
	r.Post("/detect", func(w http.ResponseWriter, r *http.Request) {
		var req types.WakeWordRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		resp, err := ctrl.Detect(req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})
	return r
}
