package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigationContext_StringIsSessionID(t *testing.T) {
	var req LLMQueryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"query":"hi","context":"abc-123"}`), &req))
	require.NotNil(t, req.Context)
	assert.Equal(t, "abc-123", req.Context.SessionID)
	assert.True(t, req.Context.IsEmpty())
}

func TestNavigationContext_Object(t *testing.T) {
	body := `{
		"session_id": "s1",
		"currentLocation": {"lat": 12.97, "lng": 77.59},
		"destination": "Indiranagar",
		"distance_remaining": 4.2,
		"route_info": {"summary": "MG Road"},
		"vehicle": "bike"
	}`
	var c NavigationContext
	require.NoError(t, json.Unmarshal([]byte(body), &c))
	assert.Equal(t, "s1", c.SessionID)
	assert.Equal(t, "12.97,77.59", c.CurrentLocation)
	assert.Equal(t, "Indiranagar", c.Destination)
	assert.Equal(t, "4.2", c.DistanceRemaining)
	assert.JSONEq(t, `{"summary":"MG Road"}`, string(c.RouteInfo))
	assert.Equal(t, map[string]string{"vehicle": "bike"}, c.Extra)
	assert.Equal(t, "12.97,77.59", c.StartPoint())
}

func TestNavigationContext_MalformedNeverFails(t *testing.T) {
	for _, body := range []string{`[1,2,3]`, `42`, `{"destination": ["x"], "next_turn": {"a": 1}}`} {
		var c NavigationContext
		assert.NoError(t, json.Unmarshal([]byte(body), &c), body)
		assert.True(t, c.IsEmpty(), body)
	}
}

func TestNavigationContext_NilSafe(t *testing.T) {
	var c *NavigationContext
	assert.True(t, c.IsEmpty())
	assert.Equal(t, "", c.StartPoint())
	assert.Equal(t, "", c.Dest())
}

func TestLocation_BothShapes(t *testing.T) {
	var a, b Location
	require.NoError(t, json.Unmarshal([]byte(`{"lat":1.5,"lng":2}`), &a))
	require.NoError(t, json.Unmarshal([]byte(`{"latitude":1.5,"longitude":2}`), &b))
	assert.Equal(t, a, b)
	assert.Equal(t, "1.5,2", a.String())
	assert.Error(t, json.Unmarshal([]byte(`{"lat":1.5}`), &a))
}

func TestParseLocation(t *testing.T) {
	loc, ok := ParseLocation("12.9, 77.6")
	assert.True(t, ok)
	assert.Equal(t, Location{Lat: 12.9, Lng: 77.6}, loc)

	_, ok = ParseLocation("MG Road, Bengaluru")
	assert.False(t, ok)
	_, ok = ParseLocation("91,0")
	assert.False(t, ok)
}
