package traffic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"saarthi/saarthi/services/maps"
	"saarthi/saarthi/utils/logging"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrNoTrafficData = errors.New("traffic: route has no live traffic duration")

// DirectionsFinder is the slice of the maps collaborator the reporter needs.
type DirectionsFinder interface {
	Directions(ctx context.Context, origin, destination, mode string, departure *time.Time) maps.DirectionsResult
}

// Report is a classified live traffic reading for one origin/destination pair.
type Report struct {
	Sample
	NormalDuration  string `json:"normal_duration"`
	TrafficDuration string `json:"traffic_duration"`
}

type Reporter struct {
	finder DirectionsFinder
	now    func() time.Time
}

func NewReporter(finder DirectionsFinder) *Reporter {
	return &Reporter{finder: finder, now: time.Now}
}

// Report fetches the live and baseline routes concurrently and classifies them.
func (r *Reporter) Report(ctx context.Context, origin, destination string) (Report, error) {
	defer logging.LogDuration(ctx, "traffic_report")()

	var live, baseline maps.DirectionsResult
	departure := r.now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		live = r.finder.Directions(gctx, origin, destination, "driving", &departure)
		return live.Err()
	})
	g.Go(func() error {
		baseline = r.finder.Directions(gctx, origin, destination, "driving", nil)
		return baseline.Err()
	})
	if err := g.Wait(); err != nil {
		logging.ErrorLogger.Error("traffic lookup failed",
			zap.String("origin", origin), zap.String("destination", destination), zap.Error(err))
		return Report{}, fmt.Errorf("traffic report: %w", err)
	}

	withTraffic := live.Routes[0].DurationInTraffic
	if withTraffic == nil {
		return Report{}, ErrNoTrafficData
	}
	normal := baseline.Routes[0].Duration
	return Report{
		Sample:          Classify(float64(withTraffic.Value), float64(normal.Value)),
		NormalDuration:  normal.Text,
		TrafficDuration: withTraffic.Text,
	}, nil
}
