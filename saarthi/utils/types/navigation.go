// saarthi/utils/types/navigation.go
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Location is a WGS84 coordinate. Clients send either {lat,lng} or
// {latitude,longitude}; both decode into the same value.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (l *Location) UnmarshalJSON(data []byte) error {
	var raw struct {
		Lat       *float64 `json:"lat"`
		Lng       *float64 `json:"lng"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Lat != nil && raw.Lng != nil:
		l.Lat, l.Lng = *raw.Lat, *raw.Lng
	case raw.Latitude != nil && raw.Longitude != nil:
		l.Lat, l.Lng = *raw.Latitude, *raw.Longitude
	default:
		return fmt.Errorf("location needs lat/lng")
	}
	return nil
}

// String renders the "lat,lng" form the maps services accept.
func (l Location) String() string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lng, 'f', -1, 64)
}

// ParseLocation accepts "lat,lng" and reports whether it is a valid coordinate pair.
func ParseLocation(s string) (Location, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Location{}, false
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return Location{}, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return Location{}, false
	}
	return Location{Lat: lat, Lng: lng}, true
}

// NavigationContext is the optional driving state a client attaches to a query.
// Every field may be absent; values of the wrong shape are dropped on decode.
type NavigationContext struct {
	SessionID         string            `json:"session_id,omitempty"`
	CurrentLocation   string            `json:"current_location,omitempty"`
	Origin            string            `json:"origin,omitempty"`
	Destination       string            `json:"destination,omitempty"`
	NextTurn          string            `json:"next_turn,omitempty"`
	DistanceRemaining string            `json:"distance_remaining,omitempty"`
	RouteInfo         json.RawMessage   `json:"route_info,omitempty"`
	Extra             map[string]string `json:"extra,omitempty"`
}

var contextAliases = map[string]string{
	"session_id":         "session_id",
	"sessionid":          "session_id",
	"current_location":   "current_location",
	"currentlocation":    "current_location",
	"origin":             "origin",
	"destination":        "destination",
	"next_turn":          "next_turn",
	"nextturn":           "next_turn",
	"distance_remaining": "distance_remaining",
	"distanceremaining":  "distance_remaining",
	"route_info":         "route_info",
	"routeinfo":          "route_info",
}

// UnmarshalJSON accepts a bare string (treated as a session id) or an object.
// It never fails: anything else leaves the context empty.
func (c *NavigationContext) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		c.SessionID = strings.TrimSpace(id)
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	for key, raw := range fields {
		name, known := contextAliases[strings.ToLower(key)]
		if !known {
			if v, ok := scalarString(raw); ok && v != "" {
				if c.Extra == nil {
					c.Extra = map[string]string{}
				}
				c.Extra[key] = v
			}
			continue
		}
		if name == "route_info" {
			if len(bytes.TrimSpace(raw)) > 0 && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
				c.RouteInfo = append(json.RawMessage(nil), raw...)
			}
			continue
		}
		v, ok := scalarString(raw)
		if !ok {
			continue
		}
		switch name {
		case "session_id":
			c.SessionID = v
		case "current_location":
			c.CurrentLocation = v
		case "origin":
			c.Origin = v
		case "destination":
			c.Destination = v
		case "next_turn":
			c.NextTurn = v
		case "distance_remaining":
			c.DistanceRemaining = v
		}
	}
	return nil
}

// scalarString flattens strings, numbers, booleans and coordinate objects.
func scalarString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b), true
	}
	var loc Location
	if err := json.Unmarshal(raw, &loc); err == nil {
		return loc.String(), true
	}
	return "", false
}

// IsEmpty reports whether no field beyond the session id is set.
func (c *NavigationContext) IsEmpty() bool {
	if c == nil {
		return true
	}
	return c.CurrentLocation == "" && c.Origin == "" && c.Destination == "" &&
		c.NextTurn == "" && c.DistanceRemaining == "" && len(c.RouteInfo) == 0 && len(c.Extra) == 0
}

// StartPoint is where a re-route begins: the explicit origin, else the current location.
func (c *NavigationContext) StartPoint() string {
	if c == nil {
		return ""
	}
	if c.Origin != "" {
		return c.Origin
	}
	return c.CurrentLocation
}

// Dest is nil-safe access to the destination.
func (c *NavigationContext) Dest() string {
	if c == nil {
		return ""
	}
	return c.Destination
}
