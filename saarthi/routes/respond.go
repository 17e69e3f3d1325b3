package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"saarthi/saarthi/controllers"
	"saarthi/saarthi/services/maps"
	"saarthi/saarthi/services/session"
	"saarthi/saarthi/utils/logging"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.ErrorLogger.Error("response encode failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, controllers.ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
	case errors.Is(err, session.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": err.Error()})
	default:
		logging.ErrorLogger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
	}
}

// decode reads a JSON body; malformed input is a client error.
func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(controllers.ErrInvalidRequest, err)
	}
	return nil
}

// lookupStatus maps an in-band maps failure to 502; zero results are still a 200.
func lookupStatus(status string) int {
	if status == maps.StatusError {
		return http.StatusBadGateway
	}
	return http.StatusOK
}
