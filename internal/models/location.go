package models

type Location struct {
	ID               string      `json:"id" yaml:"id"`
	Name             string      `json:"name" yaml:"name"`
	Coordinates      [2]float64  `json:"coordinates" yaml:"coordinates"` // [lon, lat]
	ThreatLevel      ThreatLevel `json:"threat_level" yaml:"threat_level"`
	SeaLevel         float64     `json:"sea_level" yaml:"sea_level"`                 // meters
	WindSpeed        float64     `json:"wind_speed" yaml:"wind_speed"`               // km/h
	Pollution        float64     `json:"pollution" yaml:"pollution"`                 // index 0-100
	StormProbability float64     `json:"storm_probability" yaml:"storm_probability"` // percent 0-100
}

func (l *Location) Longitude() float64 {
	return l.Coordinates[0]
}

func (l *Location) Latitude() float64 {
	return l.Coordinates[1]
}
