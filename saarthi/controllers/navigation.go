package controllers

import (
	"context"
	"fmt"
	"strings"

	"saarthi/saarthi/agents/core"
	"saarthi/saarthi/services/maps"
	"saarthi/saarthi/services/traffic"
	"saarthi/saarthi/utils/logging"
	"saarthi/saarthi/utils/types"

	"go.uber.org/zap"
)

type NavigationController struct {
	orch     *core.Orchestrator
	maps     maps.Client
	reporter *traffic.Reporter
}

func NewNavigationController(orch *core.Orchestrator, client maps.Client, reporter *traffic.Reporter) *NavigationController {
	return &NavigationController{orch: orch, maps: client, reporter: reporter}
}

// Query answers a stateless navigation question.
func (c *NavigationController) Query(ctx context.Context, req types.NavigationQueryRequest) (types.NavigationQueryResponse, error) {
	res, err := c.orch.Answer(ctx, core.Query{
		Text:      req.Query,
		Location:  req.Location,
		Context:   req.Context,
		RuleBased: req.RuleBased,
	})
	if err != nil {
		return types.NavigationQueryResponse{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return types.NavigationQueryResponse{
		Category:      string(res.Category),
		Reply:         res.Reply,
		OriginalQuery: req.Query,
		Slots:         res.Slots,
	}, nil
}

func (c *NavigationController) Directions(ctx context.Context, req types.DirectionsRequest) (maps.DirectionsResult, error) {
	if strings.TrimSpace(req.Origin) == "" || strings.TrimSpace(req.Destination) == "" {
		return maps.DirectionsResult{}, fmt.Errorf("%w: origin and destination are required", ErrInvalidRequest)
	}
	return c.maps.Directions(ctx, req.Origin, req.Destination, maps.NormalizeMode(req.Mode), nil), nil
}

func (c *NavigationController) Places(ctx context.Context, req types.PlacesRequest) (maps.PlacesResult, error) {
	if strings.TrimSpace(req.Query) == "" {
		return maps.PlacesResult{}, fmt.Errorf("%w: query is required", ErrInvalidRequest)
	}
	return c.maps.PlacesNearby(ctx, req.Location, req.Query), nil
}

func (c *NavigationController) Geocode(ctx context.Context, req types.GeocodeRequest) (maps.GeocodeResult, error) {
	if strings.TrimSpace(req.Address) == "" {
		return maps.GeocodeResult{}, fmt.Errorf("%w: address is required", ErrInvalidRequest)
	}
	return c.maps.Geocode(ctx, req.Address), nil
}

// Traffic reports live conditions. Lookup failures are reported in-band with
// level "unknown" rather than as an error.
func (c *NavigationController) Traffic(ctx context.Context, req types.TrafficRequest) (TrafficResponse, error) {
	if strings.TrimSpace(req.Origin) == "" || strings.TrimSpace(req.Destination) == "" {
		return TrafficResponse{}, fmt.Errorf("%w: origin and destination are required", ErrInvalidRequest)
	}
	report, err := c.reporter.Report(ctx, req.Origin, req.Destination)
	if err != nil {
		logging.ErrorLogger.Error("traffic route lookup failed", zap.Error(err))
		return TrafficResponse{Status: maps.StatusError, TrafficLevel: "unknown", Error: err.Error()}, nil
	}
	return TrafficResponse{
		Status:          maps.StatusOK,
		TrafficLevel:    string(report.Level),
		HasTraffic:      report.HasTraffic,
		DelayMinutes:    report.DelayMinutes,
		Ratio:           report.Ratio,
		NormalDuration:  report.NormalDuration,
		TrafficDuration: report.TrafficDuration,
	}, nil
}

type TrafficResponse struct {
	Status          string  `json:"status"`
	TrafficLevel    string  `json:"traffic_level"`
	HasTraffic      bool    `json:"has_traffic"`
	DelayMinutes    int     `json:"delay_minutes"`
	Ratio           float64 `json:"ratio"`
	NormalDuration  string  `json:"normal_duration,omitempty"`
	TrafficDuration string  `json:"traffic_duration,omitempty"`
	Error           string  `json:"error,omitempty"`
}
