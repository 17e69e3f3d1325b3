package intent

import (
	"context"
	"errors"
	"testing"

	"saarthi/saarthi/services/maps"
	"saarthi/saarthi/services/traffic"
	"saarthi/saarthi/utils/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlaces struct {
	result   maps.PlacesResult
	location string
	keyword  string
	calls    int
}

func (f *fakePlaces) PlacesNearby(_ context.Context, location, keyword string) maps.PlacesResult {
	f.calls++
	f.location, f.keyword = location, keyword
	return f.result
}

type fakeReporter struct {
	report      traffic.Report
	err         error
	origin      string
	destination string
}

func (f *fakeReporter) Report(_ context.Context, origin, destination string) (traffic.Report, error) {
	f.origin, f.destination = origin, destination
	return f.report, f.err
}

func TestClassify_Categories(t *testing.T) {
	c := NewClassifier(nil, nil)
	tests := []struct {
		query string
		want  Category
	}{
		{"Is there a flyover ahead?", CategoryRouteFeature},
		{"BRIDGE coming up?", CategoryRouteFeature},
		{"kitna traffic hai", CategoryTraffic},
		{"busy road with a flyover", CategoryTraffic},
		{"any shortcut?", CategoryAlternativeRoute},
		{"is there another way", CategoryAlternativeRoute},
		{"find a hospital", CategoryNearbyPlace},
		{"find something", CategoryDefault},
		{"play some music", CategoryDefault},
		{"", CategoryDefault},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(context.Background(), tt.query, nil, nil).Category)
		})
	}
}

func TestClassify_RouteFeatureSlot(t *testing.T) {
	res := NewClassifier(nil, nil).Classify(context.Background(), "Is there a flyover ahead?", nil, nil)
	assert.Equal(t, "flyover", res.Slots["feature"])
	assert.Equal(t, "There's a flyover ahead on your route. I'll guide you when we get closer.", res.Reply)
}

func TestClassify_NearbyWithoutLocation(t *testing.T) {
	places := &fakePlaces{}
	res := NewClassifier(places, nil).Classify(context.Background(), "find nearby coffee", nil, nil)
	assert.Equal(t, CategoryNearbyPlace, res.Category)
	assert.Equal(t, "I'll help you find coffees nearby. Please make sure your location is enabled.", res.Reply)
	assert.Zero(t, places.calls)
}

func TestClassify_NearbyWithLocation(t *testing.T) {
	places := &fakePlaces{result: maps.PlacesResult{Status: maps.StatusOK, Places: []maps.Place{
		{Name: "HP Petrol Pump"}, {Name: "IOCL"}, {Name: "Shell"}, {Name: "BPCL"},
	}}}
	loc := &types.Location{Lat: 12.97, Lng: 77.59}
	res := NewClassifier(places, nil).Classify(context.Background(), "petrol pump nearby?", loc, nil)

	assert.Equal(t, "12.97,77.59", places.location)
	assert.Equal(t, "gas station", places.keyword)
	assert.Equal(t, "I found 3 gas stations nearby. The closest one is HP Petrol Pump.", res.Reply)
	assert.Len(t, res.Slots["places"], 3)
	assert.Equal(t, "petrol", res.Slots["place_type"])
}

func TestClassify_NearbyLookupFailureDegrades(t *testing.T) {
	places := &fakePlaces{result: maps.PlacesResult{Status: maps.StatusError, Error: "quota"}}
	nav := &types.NavigationContext{CurrentLocation: "Indiranagar"}
	res := NewClassifier(places, nil).Classify(context.Background(), "search for an atm", nil, nav)
	assert.Equal(t, 1, places.calls)
	assert.Equal(t, "Indiranagar", places.location)
	assert.Equal(t, "I'll help you find atms nearby. Please make sure your location is enabled.", res.Reply)
}

func TestClassify_TrafficWithData(t *testing.T) {
	rep := &fakeReporter{report: traffic.Report{Sample: traffic.Classify(1200, 1000)}}
	loc := &types.Location{Lat: 28.6, Lng: 77.2}
	nav := &types.NavigationContext{Destination: "Connaught Place"}
	res := NewClassifier(nil, rep).Classify(context.Background(), "how is the traffic", loc, nav)

	assert.Equal(t, "28.6,77.2", rep.origin)
	assert.Equal(t, "Connaught Place", rep.destination)
	assert.Equal(t, "Traffic is moderate on your route. Expected delay of 3 minutes.", res.Reply)
	require.Contains(t, res.Slots, "traffic_info")
}

func TestClassify_TrafficDegrades(t *testing.T) {
	loc := &types.Location{Lat: 28.6, Lng: 77.2}
	nav := &types.NavigationContext{Destination: "Connaught Place"}

	res := NewClassifier(nil, &fakeReporter{err: errors.New("boom")}).
		Classify(context.Background(), "jam hai kya", loc, nav)
	assert.Equal(t, replyTrafficGeneric, res.Reply)

	res = NewClassifier(nil, &fakeReporter{}).Classify(context.Background(), "congestion?", loc, nil)
	assert.Equal(t, replyTrafficGeneric, res.Reply)
}

func TestSearchTerm(t *testing.T) {
	assert.Equal(t, "gas station", SearchTerm("fuel"))
	assert.Equal(t, "cafe", SearchTerm("cafe"))
}
