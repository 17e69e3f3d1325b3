package routes

import (
	"net/http"

	"saarthi/saarthi/controllers"
	"saarthi/saarthi/utils/types"

	"github.com/go-chi/chi/v5"
)

func NavigationRoutes(ctrl *controllers.NavigationController) chi.Router {
	r := chi.NewRouter()
	r.Post("/query", func(w http.ResponseWriter, r *http.Request) {
		var req types.NavigationQueryRequest
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

	directions := func(w http.ResponseWriter, r *http.Request, req types.DirectionsRequest) {
		res, err := ctrl.Directions(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, lookupStatus(res.Status), res)
	}
	r.Get("/directions", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		directions(w, r, types.DirectionsRequest{Origin: q.Get("origin"), Destination: q.Get("destination"), Mode: q.Get("mode")})
	})
	r.Post("/directions", func(w http.ResponseWriter, r *http.Request) {
		var req types.DirectionsRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		directions(w, r, req)
	})

	places := func(w http.ResponseWriter, r *http.Request, req types.PlacesRequest) {
		res, err := ctrl.Places(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, lookupStatus(res.Status), res)
	}
	r.Get("/places", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		places(w, r, types.PlacesRequest{Query: q.Get("query"), Location: q.Get("location")})
	})
	r.Post("/places", func(w http.ResponseWriter, r *http.Request) {
		var req types.PlacesRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		places(w, r, req)
	})

	geocode := func(w http.ResponseWriter, r *http.Request, req types.GeocodeRequest) {
		res, err := ctrl.Geocode(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, lookupStatus(res.Status), res)
	}
	r.Get("/geocode", func(w http.ResponseWriter, r *http.Request) {
		geocode(w, r, types.GeocodeRequest{Address: r.URL.Query().Get("address")})
	})
	r.Post("/geocode", func(w http.ResponseWriter, r *http.Request) {
		var req types.GeocodeRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		geocode(w, r, req)
	})

	trafficInfo := func(w http.ResponseWriter, r *http.Request, req types.TrafficRequest) {
		res, err := ctrl.Traffic(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, lookupStatus(res.Status), res)
	}
	r.Get("/traffic", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		trafficInfo(w, r, types.TrafficRequest{Origin: q.Get("origin"), Destination: q.Get("destination")})
	})
	r.Post("/traffic", func(w http.ResponseWriter, r *http.Request) {
		var req types.TrafficRequest
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		trafficInfo(w, r, req)
	})
	return r
}
