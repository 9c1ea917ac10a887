package api

import (
	"strings"

	"github.com/mr1hm/go-coastal-alerts/internal/models"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func toGeoJSON(locations []models.Location) FeatureCollection {
	features := make([]Feature, 0, len(locations))

	for _, l := range locations {
		f := Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{l.Longitude(), l.Latitude()},
			},
			Properties: map[string]any{
				"id":                l.ID,
				"name":              l.Name,
				"threat_level":      strings.ToLower(l.ThreatLevel.String()),
				"sea_level":         l.SeaLevel,
				"wind_speed":        l.WindSpeed,
				"pollution":         l.Pollution,
				"storm_probability": l.StormProbability,
			},
		}
		features = append(features, f)
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
