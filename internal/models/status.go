package models

import "time"

type SystemStatus struct {
	OverallStatus      ThreatLevel `json:"overall_status" yaml:"overall_status"`
	LastUpdated        time.Time   `json:"last_updated" yaml:"last_updated"`
	ActiveAlerts       int         `json:"active_alerts" yaml:"active_alerts"`
	MonitoredLocations int         `json:"monitored_locations" yaml:"monitored_locations"`
	SystemUptime       string      `json:"system_uptime" yaml:"system_uptime"`
}

// Overview counts locations per threat level.
type Overview struct {
	Safe         int    `json:"safe"`
	Warning      int    `json:"warning"`
	Critical     int    `json:"critical"`
	SystemUptime string `json:"system_uptime"`
}

type WeatherMetrics struct {
	Temperature float64 `json:"temperature" yaml:"temperature"`
	Humidity    float64 `json:"humidity" yaml:"humidity"`
	Pressure    float64 `json:"pressure" yaml:"pressure"`
	Visibility  float64 `json:"visibility" yaml:"visibility"`
	UVIndex     float64 `json:"uv_index" yaml:"uv_index"`
}

type TidePoint struct {
	Time  string  `json:"time" yaml:"time"`
	Level float64 `json:"level" yaml:"level"`
}

type WindPoint struct {
	Time  string  `json:"time" yaml:"time"`
	Speed float64 `json:"speed" yaml:"speed"`
}

type PollutionReading struct {
	Location string  `json:"location" yaml:"location"`
	Level    float64 `json:"level" yaml:"level"`
}

type StormRisk struct {
	Category    string  `json:"category" yaml:"category"`
	Probability float64 `json:"probability" yaml:"probability"`
}

// Series groups the chart datasets.
type Series struct {
	Tide      []TidePoint        `json:"tide" yaml:"tide"`
	Wind      []WindPoint        `json:"wind" yaml:"wind"`
	Pollution []PollutionReading `json:"pollution" yaml:"pollution"`
	Storm     []StormRisk        `json:"storm" yaml:"storm"`
}
