// Package traffic turns travel-time pairs into spoken severity levels.
package traffic

import "math"

type Level string

const (
	LevelLight    Level = "light"
	LevelModerate Level = "moderate"
	LevelHeavy    Level = "heavy"
	LevelSevere   Level = "severe"
)

const (
	moderateRatio = 1.1
	heavyRatio    = 1.3
	severeRatio   = 1.5
)

// Sample is the classification of one with/without-traffic duration pair.
type Sample struct {
	Level        Level   `json:"traffic_level"`
	Ratio        float64 `json:"ratio"`
	DelayMinutes int     `json:"delay_minutes"`
	HasTraffic   bool    `json:"has_traffic"`
}

// Classify maps durations in seconds onto a severity band. Each band includes
// its lower bound. DelayMinutes is negative when traffic beats the baseline.
func Classify(withTraffic, withoutTraffic float64) Sample {
	ratio := 1.0
	if withoutTraffic > 0 {
		ratio = withTraffic / withoutTraffic
	}
	return Sample{
		Level:        levelFor(ratio),
		Ratio:        ratio,
		DelayMinutes: int(math.Floor((withTraffic - withoutTraffic) / 60)),
		HasTraffic:   withTraffic > withoutTraffic*moderateRatio,
	}
}

func levelFor(ratio float64) Level {
	switch {
	case ratio < moderateRatio:
		return LevelLight
	case ratio < heavyRatio:
		return LevelModerate
	case ratio < severeRatio:
		return LevelHeavy
	default:
		return LevelSevere
	}
}
