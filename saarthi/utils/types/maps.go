package types

type DirectionsRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Mode        string `json:"mode,omitempty"`
}

type PlacesRequest struct {
	Query    string `json:"query"`
	Location string `json:"location,omitempty"`
}

type GeocodeRequest struct {
	Address string `json:"address"`
}

type TrafficRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}
