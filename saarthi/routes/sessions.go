package routes

import (
	"net/http"
	"strconv"

	"saarthi/saarthi/config"
	"saarthi/saarthi/controllers"
	"saarthi/saarthi/middlewares"

	"github.com/go-chi/chi/v5"
)

const defaultSessionListLimit = 20

func SessionRoutes(ctrl *controllers.SessionsController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))
		// GET /api/sessions : archived sessions, most recent first
		gr.Get("/", func(w http.ResponseWriter, r *http.Request) {
			limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
			if err != nil || limit <= 0 {
				limit = defaultSessionListLimit
			}
			list, err := ctrl.ListArchived(r.Context(), limit)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, list)
		})
		gr.Get("/{session_id}/messages", func(w http.ResponseWriter, r *http.Request) {
			msgs, err := ctrl.Messages(chi.URLParam(r, "session_id"))
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, msgs)
		})
		gr.Delete("/{session_id}", func(w http.ResponseWriter, r *http.Request) {
			if err := ctrl.Delete(r.Context(), chi.URLParam(r, "session_id")); err != nil {
				writeError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	})
	return r
}
