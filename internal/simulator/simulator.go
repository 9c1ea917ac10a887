// Package simulator advances the mock coastal environment with bounded random walks.
package simulator

import (
	"math/rand/v2"
	"time"

	"github.com/mr1hm/go-coastal-alerts/internal/models"
	"github.com/mr1hm/go-coastal-alerts/internal/threat"
)

// Source yields uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a seeded PCG source, or a time-seeded one when seed is 0.
func NewSource(seed uint64) Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

type bounds struct {
	spread   float64
	min, max float64
}

var (
	seaLevelWalk  = bounds{spread: 0.1, min: 0.5, max: 4}
	windSpeedWalk = bounds{spread: 2, min: 5, max: 60}
	pollutionWalk = bounds{spread: 3, min: 0, max: 100}
	stormWalk     = bounds{spread: 5, min: 0, max: 100}

	tideSeriesWalk = bounds{spread: 0.1, min: 0.5, max: 3}
	windSeriesWalk = bounds{spread: 2, min: 5, max: 50}
)

func (b bounds) step(src Source, v float64) float64 {
	v += (src.Float64() - 0.5) * b.spread
	return clamp(v, b.min, b.max)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// StepLocations perturbs every location in place and reclassifies it with
// threat.Classify. Draw order per location is sea level, wind, pollution, storm.
func StepLocations(src Source, locations []models.Location) {
	for i := range locations {
		loc := &locations[i]
		loc.SeaLevel = seaLevelWalk.step(src, loc.SeaLevel)
		loc.WindSpeed = windSpeedWalk.step(src, loc.WindSpeed)
		loc.Pollution = pollutionWalk.step(src, loc.Pollution)
		loc.StormProbability = stormWalk.step(src, loc.StormProbability)
		loc.ThreatLevel = threat.Classify(threat.FromLocation(loc))
	}
}

// StepSeries perturbs the tide and wind chart series in place.
func StepSeries(src Source, s *models.Series) {
	for i := range s.Tide {
		s.Tide[i].Level = tideSeriesWalk.step(src, s.Tide[i].Level)
	}
	for i := range s.Wind {
		s.Wind[i].Speed = windSeriesWalk.step(src, s.Wind[i].Speed)
	}
}

// OverallStatus is the worst threat level across locations.
func OverallStatus(locations []models.Location) models.ThreatLevel {
	levels := make([]models.ThreatLevel, len(locations))
	for i := range locations {
		levels[i] = locations[i].ThreatLevel
	}
	return models.Worst(levels...)
}
