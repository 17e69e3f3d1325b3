// Package maps is the directions/places/geocoding collaborator. Lookups never
// return raw errors; every result carries a Status and, on failure, Error text.
package maps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"saarthi/saarthi/utils/logging"

	"go.uber.org/zap"
)

const (
	StatusOK          = "OK"
	StatusZeroResults = "ZERO_RESULTS"
	StatusError       = "error"
)

var (
	ErrZeroResults  = errors.New("maps: zero results")
	ErrLookupFailed = errors.New("maps: lookup failed")
)

var validModes = map[string]bool{"driving": true, "walking": true, "bicycling": true, "transit": true}

// NormalizeMode falls back to driving for unknown travel modes.
func NormalizeMode(mode string) string {
	if validModes[mode] {
		return mode
	}
	return "driving"
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type TextValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

type Step struct {
	Distance      TextValue `json:"distance"`
	Duration      TextValue `json:"duration"`
	Instructions  string    `json:"instructions"`
	StartLocation LatLng    `json:"start_location"`
	EndLocation   LatLng    `json:"end_location"`
	Maneuver      string    `json:"maneuver"`
}

type Route struct {
	Summary           string     `json:"summary"`
	Distance          TextValue  `json:"distance"`
	Duration          TextValue  `json:"duration"`
	DurationInTraffic *TextValue `json:"duration_in_traffic,omitempty"`
	StartAddress      string     `json:"start_address"`
	EndAddress        string     `json:"end_address"`
	StartLocation     LatLng     `json:"start_location"`
	EndLocation       LatLng     `json:"end_location"`
	Steps             []Step     `json:"steps"`
}

type DirectionsResult struct {
	Status string  `json:"status"`
	Routes []Route `json:"routes"`
	Error  string  `json:"error,omitempty"`
}

type Place struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Address          string   `json:"address"`
	Location         LatLng   `json:"location"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	Types            []string `json:"types"`
	Photos           []string `json:"photos,omitempty"`
}

type PlacesResult struct {
	Status string  `json:"status"`
	Places []Place `json:"places"`
	Error  string  `json:"error,omitempty"`
}

type GeocodeMatch struct {
	FormattedAddress string   `json:"formatted_address"`
	PlaceID          string   `json:"place_id"`
	Location         LatLng   `json:"location"`
	Types            []string `json:"types,omitempty"`
}

type GeocodeResult struct {
	Status  string         `json:"status"`
	Results []GeocodeMatch `json:"results"`
	Error   string         `json:"error,omitempty"`
}

// Client is the maps collaborator consumed by the traffic reporter, the
// intent classifier and the navigation routes.
type Client interface {
	Directions(ctx context.Context, origin, destination, mode string, departure *time.Time) DirectionsResult
	PlacesNearby(ctx context.Context, location, keyword string) PlacesResult
	Geocode(ctx context.Context, address string) GeocodeResult
}

func statusErr(status, msg string) error {
	switch status {
	case StatusOK:
		return nil
	case StatusZeroResults:
		return ErrZeroResults
	default:
		if msg == "" {
			msg = status
		}
		return fmt.Errorf("%w: %s", ErrLookupFailed, msg)
	}
}

func (r DirectionsResult) Err() error {
	if r.Status == StatusOK && len(r.Routes) == 0 {
		return ErrZeroResults
	}
	return statusErr(r.Status, r.Error)
}

func (r PlacesResult) Err() error {
	if r.Status == StatusOK && len(r.Places) == 0 {
		return ErrZeroResults
	}
	return statusErr(r.Status, r.Error)
}

func (r GeocodeResult) Err() error {
	if r.Status == StatusOK && len(r.Results) == 0 {
		return ErrZeroResults
	}
	return statusErr(r.Status, r.Error)
}

func failedDirections(err error) DirectionsResult {
	return DirectionsResult{Status: StatusError, Routes: []Route{}, Error: err.Error()}
}

func failedPlaces(err error) PlacesResult {
	return PlacesResult{Status: StatusError, Places: []Place{}, Error: err.Error()}
}

func failedGeocode(err error) GeocodeResult {
	return GeocodeResult{Status: StatusError, Results: []GeocodeMatch{}, Error: err.Error()}
}

// NewClient returns the Google-backed client, or the canned MockClient when no key is set.
func NewClient(apiKey string) Client {
	if apiKey == "" {
		return NewMockClient()
	}
	c, err := NewGoogleClient(apiKey)
	if err != nil {
		logging.ErrorLogger.Error("google maps client unavailable, serving mock data", zap.Error(err))
		return NewMockClient()
	}
	return c
}
