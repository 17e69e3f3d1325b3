package maps

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"saarthi/saarthi/utils/logging"
	"saarthi/saarthi/utils/types"

	"go.uber.org/zap"
	gmaps "googlemaps.github.io/maps"
)

const maxPhotos = 3

// GoogleClient talks to the Google Maps web services through the official client.
type GoogleClient struct {
	client *gmaps.Client
}

// NewGoogleClient builds a client for apiKey. Extra options (base URL, HTTP
// client, rate limit) are passed straight to the underlying library.
func NewGoogleClient(apiKey string, opts ...gmaps.ClientOption) (*GoogleClient, error) {
	c, err := gmaps.NewClient(append([]gmaps.ClientOption{gmaps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("maps client: %w", err)
	}
	return &GoogleClient{client: c}, nil
}

func (c *GoogleClient) Directions(ctx context.Context, origin, destination, mode string, departure *time.Time) DirectionsResult {
	defer logging.LogDuration(ctx, "maps_directions")()
	req := &gmaps.DirectionsRequest{
		Origin:       origin,
		Destination:  destination,
		Mode:         gmaps.Mode(NormalizeMode(mode)),
		Alternatives: true,
	}
	if departure != nil {
		req.DepartureTime = strconv.FormatInt(departure.Unix(), 10)
	}
	routes, _, err := c.client.Directions(ctx, req)
	if err != nil {
		logging.ErrorLogger.Error("directions lookup failed", zap.String("origin", origin), zap.Error(err))
		return failedDirections(err)
	}
	out := DirectionsResult{Status: StatusOK, Routes: make([]Route, 0, len(routes))}
	for _, r := range routes {
		if len(r.Legs) == 0 || r.Legs[0] == nil {
			continue
		}
		leg := r.Legs[0]
		route := Route{
			Summary:       r.Summary,
			Distance:      distanceValue(leg.Distance),
			Duration:      durationValue(leg.Duration),
			StartAddress:  leg.StartAddress,
			EndAddress:    leg.EndAddress,
			StartLocation: latLng(leg.StartLocation),
			EndLocation:   latLng(leg.EndLocation),
			Steps:         make([]Step, 0, len(leg.Steps)),
		}
		if leg.DurationInTraffic > 0 {
			dt := durationValue(leg.DurationInTraffic)
			route.DurationInTraffic = &dt
		}
		for _, s := range leg.Steps {
			if s == nil {
				continue
			}
			route.Steps = append(route.Steps, Step{
				Distance:      distanceValue(s.Distance),
				Duration:      durationValue(s.Duration),
				Instructions:  s.HTMLInstructions,
				StartLocation: latLng(s.StartLocation),
				EndLocation:   latLng(s.EndLocation),
				Maneuver:      s.Maneuver,
			})
		}
		out.Routes = append(out.Routes, route)
	}
	if len(out.Routes) == 0 {
		out.Status = StatusZeroResults
	}
	return out
}

// PlacesNearby ranks by distance around location. A location that is not a
// coordinate pair is geocoded first; if that fails, a text search is used.
func (c *GoogleClient) PlacesNearby(ctx context.Context, location, keyword string) PlacesResult {
	defer logging.LogDuration(ctx, "maps_places")()
	if location == "" {
		return c.textSearch(ctx, keyword)
	}
	loc, ok := types.ParseLocation(location)
	if !ok {
		geo := c.Geocode(ctx, location)
		if geo.Err() != nil {
			return c.textSearch(ctx, keyword)
		}
		first := geo.Results[0].Location
		loc = types.Location{Lat: first.Lat, Lng: first.Lng}
	}
	resp, err := c.client.NearbySearch(ctx, &gmaps.NearbySearchRequest{
		Location: &gmaps.LatLng{Lat: loc.Lat, Lng: loc.Lng},
		Keyword:  keyword,
		RankBy:   gmaps.RankByDistance,
	})
	return placesResult("nearby", resp, err)
}

func (c *GoogleClient) textSearch(ctx context.Context, query string) PlacesResult {
	resp, err := c.client.TextSearch(ctx, &gmaps.TextSearchRequest{Query: query})
	return placesResult("text", resp, err)
}

func placesResult(kind string, resp gmaps.PlacesSearchResponse, err error) PlacesResult {
	if err != nil {
		logging.ErrorLogger.Error("places lookup failed", zap.String("search", kind), zap.Error(err))
		return failedPlaces(err)
	}
	if len(resp.Results) == 0 {
		return PlacesResult{Status: StatusZeroResults, Places: []Place{}}
	}
	out := PlacesResult{Status: StatusOK, Places: make([]Place, 0, len(resp.Results))}
	for _, p := range resp.Results {
		address := p.Vicinity
		if address == "" {
			address = p.FormattedAddress
		}
		place := Place{
			PlaceID:          p.PlaceID,
			Name:             p.Name,
			Address:          address,
			Location:         latLng(p.Geometry.Location),
			Rating:           float64(p.Rating),
			UserRatingsTotal: p.UserRatingsTotal,
			Types:            p.Types,
		}
		for i, ph := range p.Photos {
			if i == maxPhotos {
				break
			}
			place.Photos = append(place.Photos, ph.PhotoReference)
		}
		out.Places = append(out.Places, place)
	}
	return out
}

func (c *GoogleClient) Geocode(ctx context.Context, address string) GeocodeResult {
	defer logging.LogDuration(ctx, "maps_geocode")()
	results, err := c.client.Geocode(ctx, &gmaps.GeocodingRequest{Address: address})
	if err != nil {
		logging.ErrorLogger.Error("geocode failed", zap.String("address", address), zap.Error(err))
		return failedGeocode(err)
	}
	if len(results) == 0 {
		return GeocodeResult{Status: StatusZeroResults, Results: []GeocodeMatch{}}
	}
	out := GeocodeResult{Status: StatusOK, Results: make([]GeocodeMatch, 0, len(results))}
	for _, r := range results {
		out.Results = append(out.Results, GeocodeMatch{
			FormattedAddress: r.FormattedAddress,
			PlaceID:          r.PlaceID,
			Location:         latLng(r.Geometry.Location),
			Types:            r.Types,
		})
	}
	return out
}

func latLng(l gmaps.LatLng) LatLng {
	return LatLng{Lat: l.Lat, Lng: l.Lng}
}

func distanceValue(d gmaps.Distance) TextValue {
	return TextValue{Text: d.HumanReadable, Value: d.Meters}
}

// durationValue restores the service's "1 hour 5 mins" rendering, which the
// library decodes away into a time.Duration.
func durationValue(d time.Duration) TextValue {
	return TextValue{Text: durationText(d), Value: int(d / time.Second)}
}

func durationText(d time.Duration) string {
	if d <= 0 {
		return "0 mins"
	}
	mins := int((d + 30*time.Second) / time.Minute)
	if mins < 1 {
		mins = 1
	}
	hours, mins := mins/60, mins%60
	var parts []string
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if mins > 0 {
		parts = append(parts, plural(mins, "min"))
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}
