package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr1hm/go-coastal-alerts/internal/models"
	"github.com/mr1hm/go-coastal-alerts/internal/threat"
)

// sequence replays fixed values, cycling when exhausted.
type sequence struct {
	values []float64
	i      int
}

func (s *sequence) Float64() float64 {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v
}

func seedLocations() []models.Location {
	return []models.Location{
		{ID: "miami", Name: "Miami Beach, FL", ThreatLevel: models.ThreatWarning, SeaLevel: 2.3, WindSpeed: 25, Pollution: 68, StormProbability: 35},
		{ID: "boston", Name: "Boston Harbor, MA", ThreatLevel: models.ThreatSafe, SeaLevel: 1.2, WindSpeed: 12, Pollution: 42, StormProbability: 15},
		{ID: "sanfrancisco", Name: "San Francisco Bay, CA", ThreatLevel: models.ThreatCritical, SeaLevel: 3.1, WindSpeed: 45, Pollution: 85, StormProbability: 78},
	}
}

func TestStepLocations_ExactDeltas(t *testing.T) {
	locs := []models.Location{{SeaLevel: 1.0, WindSpeed: 20, Pollution: 50, StormProbability: 50}}
	// (1-0.5)*range gives the maximum positive delta, (0-0.5)*range the maximum negative one.
	src := &sequence{values: []float64{1, 0, 1, 0}}

	StepLocations(src, locs)

	assert.InDelta(t, 1.05, locs[0].SeaLevel, 1e-9)
	assert.InDelta(t, 19.0, locs[0].WindSpeed, 1e-9)
	assert.InDelta(t, 51.5, locs[0].Pollution, 1e-9)
	assert.InDelta(t, 47.5, locs[0].StormProbability, 1e-9)
	assert.Equal(t, models.ThreatSafe, locs[0].ThreatLevel)
}

func TestStepLocations_NeutralDrawKeepsValues(t *testing.T) {
	locs := seedLocations()
	StepLocations(&sequence{values: []float64{0.5}}, locs)

	assert.Equal(t, 2.3, locs[0].SeaLevel)
	assert.Equal(t, 25.0, locs[0].WindSpeed)
	assert.Equal(t, models.ThreatWarning, locs[0].ThreatLevel)
	assert.Equal(t, models.ThreatSafe, locs[1].ThreatLevel)
	assert.Equal(t, models.ThreatCritical, locs[2].ThreatLevel)
}

func TestStepLocations_Clamps(t *testing.T) {
	locs := []models.Location{
		{SeaLevel: 0.5, WindSpeed: 5, Pollution: 0, StormProbability: 0},
		{SeaLevel: 4, WindSpeed: 60, Pollution: 100, StormProbability: 100},
	}
	src := &sequence{values: []float64{0, 0, 0, 0, 0.999, 0.999, 0.999, 0.999}}

	StepLocations(src, locs)

	assert.Equal(t, 0.5, locs[0].SeaLevel)
	assert.Equal(t, 5.0, locs[0].WindSpeed)
	assert.Equal(t, 0.0, locs[0].Pollution)
	assert.Equal(t, 0.0, locs[0].StormProbability)

	assert.Equal(t, 4.0, locs[1].SeaLevel)
	assert.Equal(t, 60.0, locs[1].WindSpeed)
	assert.Equal(t, 100.0, locs[1].Pollution)
	assert.Equal(t, 100.0, locs[1].StormProbability)
}

func TestStepLocations_InvariantsOverManyTicks(t *testing.T) {
	locs := seedLocations()
	src := NewSource(42)

	for tick := 0; tick < 5000; tick++ {
		StepLocations(src, locs)
		for _, l := range locs {
			require.GreaterOrEqual(t, l.SeaLevel, 0.5)
			require.LessOrEqual(t, l.SeaLevel, 4.0)
			require.GreaterOrEqual(t, l.WindSpeed, 5.0)
			require.LessOrEqual(t, l.WindSpeed, 60.0)
			require.GreaterOrEqual(t, l.Pollution, 0.0)
			require.LessOrEqual(t, l.Pollution, 100.0)
			require.GreaterOrEqual(t, l.StormProbability, 0.0)
			require.LessOrEqual(t, l.StormProbability, 100.0)
			require.Equal(t, threat.Classify(threat.FromLocation(&l)), l.ThreatLevel)
		}
	}
}

func TestStepLocations_CrossingThresholdReclassifies(t *testing.T) {
	locs := []models.Location{{SeaLevel: 2.49, WindSpeed: 10, Pollution: 10, ThreatLevel: models.ThreatWarning}}
	StepLocations(&sequence{values: []float64{1, 0.5, 0.5, 0.5}}, locs)

	assert.InDelta(t, 2.54, locs[0].SeaLevel, 1e-9)
	assert.Equal(t, models.ThreatCritical, locs[0].ThreatLevel)
}

func TestStepSeries(t *testing.T) {
	s := &models.Series{
		Tide: []models.TidePoint{{Time: "00:00", Level: 1.2}, {Time: "03:00", Level: 2.98}},
		Wind: []models.WindPoint{{Time: "00:00", Speed: 5.5}},
		Storm: []models.StormRisk{{Category: "Low Risk", Probability: 45}},
	}
	StepSeries(&sequence{values: []float64{1, 1, 0}}, s)

	assert.InDelta(t, 1.25, s.Tide[0].Level, 1e-9)
	assert.Equal(t, 3.0, s.Tide[1].Level)
	assert.Equal(t, 5.0, s.Wind[0].Speed)
	assert.Equal(t, 45.0, s.Storm[0].Probability)
}

func TestOverallStatus(t *testing.T) {
	locs := seedLocations()
	assert.Equal(t, models.ThreatCritical, OverallStatus(locs))

	locs[2].ThreatLevel = models.ThreatSafe
	assert.Equal(t, models.ThreatWarning, OverallStatus(locs))

	locs[0].ThreatLevel = models.ThreatSafe
	assert.Equal(t, models.ThreatSafe, OverallStatus(locs))

	assert.Equal(t, models.ThreatSafe, OverallStatus(nil))
}

func TestNewSource_Deterministic(t *testing.T) {
	a, b := NewSource(7), NewSource(7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}
