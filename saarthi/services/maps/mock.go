package maps

import (
	"context"
	"fmt"
	"time"

	"saarthi/saarthi/utils/logging"

	"go.uber.org/zap"
)

// MockClient serves canned results so the assistant stays usable without a maps key.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (MockClient) Directions(ctx context.Context, origin, destination, mode string, departure *time.Time) DirectionsResult {
	logging.AppLogger.Info("serving mock directions", zap.String("origin", origin), zap.String("destination", destination))
	route := Route{
		Summary:      fmt.Sprintf("Route from %s to %s", origin, destination),
		Distance:     TextValue{Text: "5 km", Value: 5000},
		Duration:     TextValue{Text: "15 mins", Value: 900},
		StartAddress: origin,
		EndAddress:   destination,
		Steps: []Step{
			{Distance: TextValue{"1 km", 1000}, Duration: TextValue{"3 mins", 180}, Instructions: "Head north on Main St"},
			{Distance: TextValue{"2 km", 2000}, Duration: TextValue{"6 mins", 360}, Instructions: "Turn right onto Broadway", Maneuver: "turn-right"},
			{Distance: TextValue{"2 km", 2000}, Duration: TextValue{"6 mins", 360}, Instructions: "Turn left onto Park Ave", Maneuver: "turn-left"},
		},
	}
	if departure != nil {
		route.DurationInTraffic = &TextValue{Text: "20 mins", Value: 1200}
	}
	return DirectionsResult{Status: StatusOK, Routes: []Route{route}}
}

func (MockClient) PlacesNearby(ctx context.Context, location, keyword string) PlacesResult {
	logging.AppLogger.Info("serving mock places", zap.String("keyword", keyword))
	addresses := []string{"123 Main St", "456 Broadway", "789 Park Ave"}
	ratings := []float64{4.5, 4.0, 3.5}
	totals := []int{100, 75, 50}
	places := make([]Place, 0, len(addresses))
	for i := range addresses {
		places = append(places, Place{
			PlaceID:          fmt.Sprintf("mock_place_%d", i+1),
			Name:             fmt.Sprintf("%s Place %d", keyword, i+1),
			Address:          addresses[i],
			Rating:           ratings[i],
			UserRatingsTotal: totals[i],
			Types:            []string{"point_of_interest", "establishment"},
		})
	}
	return PlacesResult{Status: StatusOK, Places: places}
}

func (MockClient) Geocode(ctx context.Context, address string) GeocodeResult {
	logging.AppLogger.Info("serving mock geocode", zap.String("address", address))
	return GeocodeResult{
		Status:  StatusOK,
		Results: []GeocodeMatch{{FormattedAddress: address, PlaceID: "mock_place_id"}},
	}
}
