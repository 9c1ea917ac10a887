// Package threat holds the two threshold classifiers used by the dashboard.
//
// Classify is the direct rule applied after every simulation tick. Predict is
// the additive risk score used by the threat checker to decide whether a new
// alert is raised. The two can disagree for the same metrics and are kept
// separate on purpose.
package threat

import "github.com/mr1hm/go-coastal-alerts/internal/models"

type Metrics struct {
	SeaLevel         float64
	WindSpeed        float64
	Pollution        float64
	StormProbability float64
}

func FromLocation(l *models.Location) Metrics {
	return Metrics{
		SeaLevel:         l.SeaLevel,
		WindSpeed:        l.WindSpeed,
		Pollution:        l.Pollution,
		StormProbability: l.StormProbability,
	}
}

// Classify applies the direct threshold rule. Storm probability is not considered.
func Classify(m Metrics) models.ThreatLevel {
	switch {
	case m.SeaLevel > 2.5 || m.WindSpeed > 40 || m.Pollution > 80:
		return models.ThreatCritical
	case m.SeaLevel > 2 || m.WindSpeed > 25 || m.Pollution > 60:
		return models.ThreatWarning
	default:
		return models.ThreatSafe
	}
}

// RiskScore sums weighted threshold hits. The result is in [0, 100].
func RiskScore(m Metrics) int {
	score := 0

	if m.SeaLevel > 2.5 {
		score += 40
	} else if m.SeaLevel > 2 {
		score += 20
	}

	if m.WindSpeed > 40 {
		score += 30
	} else if m.WindSpeed > 25 {
		score += 15
	}

	if m.Pollution > 80 {
		score += 20
	} else if m.Pollution > 60 {
		score += 10
	}

	if m.StormProbability > 70 {
		score += 10
	}

	return score
}

func LevelForScore(score int) models.ThreatLevel {
	switch {
	case score >= 60:
		return models.ThreatCritical
	case score >= 30:
		return models.ThreatWarning
	default:
		return models.ThreatSafe
	}
}

// Predict maps the additive risk score to a threat level.
func Predict(m Metrics) models.ThreatLevel {
	return LevelForScore(RiskScore(m))
}
