// Package intent is the deterministic keyword classifier used when generation
// is unavailable or the caller asks for rule-based answers.
package intent

import (
	"context"
	"fmt"
	"strings"

	"saarthi/saarthi/services/maps"
	"saarthi/saarthi/services/traffic"
	"saarthi/saarthi/utils/logging"
	"saarthi/saarthi/utils/types"

	"go.uber.org/zap"
)

type Category string

const (
	CategoryTraffic          Category = "traffic"
	CategoryRouteFeature     Category = "route_feature"
	CategoryAlternativeRoute Category = "alternative_route"
	CategoryNearbyPlace      Category = "nearby_place"
	CategoryDefault          Category = "default"
)

const (
	replyTrafficGeneric = "Let me check the traffic conditions for you. Please make sure your location is enabled."
	replyAlternative    = "I'll check for alternatives on your route. Let me analyze the traffic conditions."
	replyDefault        = "I'll help you with your navigation needs. Please provide more details or ask a specific question."

	maxPlacesSummarized = 3
)

var (
	trafficKeywords     = []string{"traffic", "congestion", "jam", "busy"}
	featureKeywords     = []string{"flyover", "underpass", "bridge", "tunnel"}
	alternativeKeywords = []string{"shortcut", "faster", "quicker", "alternative", "another way"}
	nearbyKeywords      = []string{"nearby", "close", "around", "find", "search"}
	placeTypes          = []string{"restaurant", "gas", "petrol", "fuel", "hotel", "hospital", "pharmacy", "atm", "bank", "cafe", "coffee"}
)

// Result is a fallback answer. Slots carries whatever the rule extracted or looked up.
type Result struct {
	Category Category               `json:"category"`
	Reply    string                 `json:"reply"`
	Slots    map[string]interface{} `json:"slots,omitempty"`
}

// PlacesFinder is the places lookup used to enrich nearby-place answers.
type PlacesFinder interface {
	PlacesNearby(ctx context.Context, location, keyword string) maps.PlacesResult
}

// TrafficReporter supplies live traffic for traffic answers.
type TrafficReporter interface {
	Report(ctx context.Context, origin, destination string) (traffic.Report, error)
}

// Classifier maps a query to a canned reply. Either collaborator may be nil,
// in which case the matching category answers generically.
type Classifier struct {
	places  PlacesFinder
	traffic TrafficReporter
}

func NewClassifier(places PlacesFinder, reporter TrafficReporter) *Classifier {
	return &Classifier{places: places, traffic: reporter}
}

// Classify never fails: missing hints or lookup errors degrade to the generic reply.
func (c *Classifier) Classify(ctx context.Context, query string, loc *types.Location, nav *types.NavigationContext) Result {
	q := strings.ToLower(query)
	switch {
	case containsAny(q, trafficKeywords):
		return c.trafficReply(ctx, currentPosition(loc, nav), nav.Dest())
	case containsAny(q, featureKeywords):
		feature := firstMatch(q, featureKeywords)
		return Result{
			Category: CategoryRouteFeature,
			Reply:    fmt.Sprintf("There's a %s ahead on your route. I'll guide you when we get closer.", feature),
			Slots:    map[string]interface{}{"feature": feature},
		}
	case containsAny(q, alternativeKeywords):
		return Result{Category: CategoryAlternativeRoute, Reply: replyAlternative}
	case containsAny(q, nearbyKeywords):
		if placeType := firstMatch(q, placeTypes); placeType != "" {
			return c.nearbyReply(ctx, placeType, currentPosition(loc, nav))
		}
	}
	return Result{Category: CategoryDefault, Reply: replyDefault}
}

func (c *Classifier) trafficReply(ctx context.Context, origin, destination string) Result {
	res := Result{Category: CategoryTraffic, Reply: replyTrafficGeneric}
	if c.traffic == nil || origin == "" || destination == "" {
		return res
	}
	report, err := c.traffic.Report(ctx, origin, destination)
	if err != nil {
		logging.AppLogger.Warn("fallback traffic lookup failed", zap.String("destination", destination), zap.Error(err))
		return res
	}
	res.Reply = fmt.Sprintf("Traffic is %s on your route. Expected delay of %d minutes.", report.Level, report.DelayMinutes)
	res.Slots = map[string]interface{}{"traffic_info": report}
	return res
}

func (c *Classifier) nearbyReply(ctx context.Context, placeType, location string) Result {
	searchTerm := SearchTerm(placeType)
	res := Result{
		Category: CategoryNearbyPlace,
		Reply:    fmt.Sprintf("I'll help you find %ss nearby. Please make sure your location is enabled.", placeType),
		Slots:    map[string]interface{}{"place_type": placeType},
	}
	if c.places == nil || location == "" {
		return res
	}
	found := c.places.PlacesNearby(ctx, location, searchTerm)
	if err := found.Err(); err != nil || len(found.Places) == 0 {
		logging.AppLogger.Info("fallback places lookup returned nothing",
			zap.String("search_term", searchTerm), zap.String("status", found.Status))
		return res
	}
	n := min(maxPlacesSummarized, len(found.Places))
	res.Reply = fmt.Sprintf("I found %d %ss nearby. The closest one is %s.", n, searchTerm, found.Places[0].Name)
	res.Slots["places"] = found.Places[:n]
	return res
}

// SearchTerm normalizes fuel synonyms to the term the places service understands.
func SearchTerm(placeType string) string {
	switch placeType {
	case "gas", "petrol", "fuel":
		return "gas station"
	}
	return placeType
}

// currentPosition prefers the device location over the context's reported position.
func currentPosition(loc *types.Location, nav *types.NavigationContext) string {
	if loc != nil {
		return loc.String()
	}
	if nav != nil {
		return nav.CurrentLocation
	}
	return ""
}

func containsAny(q string, keywords []string) bool {
	return firstMatch(q, keywords) != ""
}

func firstMatch(q string, keywords []string) string {
	for _, k := range keywords {
		if strings.Contains(q, k) {
			return k
		}
	}
	return ""
}
