// Package dataset loads the seed state of the dashboard from YAML.
package dataset

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mr1hm/go-coastal-alerts/internal/models"
)

//go:embed default.yaml
var defaultDataset []byte

type Dataset struct {
	Locations []models.Location     `yaml:"locations"`
	Series    models.Series         `yaml:"series"`
	Alerts    []models.Alert        `yaml:"alerts"` // most recent first
	Weather   models.WeatherMetrics `yaml:"weather"`
	Status    models.SystemStatus   `yaml:"status"`
}

// Default returns the built-in dataset.
func Default() (*Dataset, error) {
	return Parse(defaultDataset)
}

// Load reads a dataset file, falling back to the built-in one when path is empty.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("error decoding dataset: %w", err)
	}
	if err := ds.validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (d *Dataset) validate() error {
	if len(d.Locations) == 0 {
		return fmt.Errorf("dataset has no locations")
	}

	seen := make(map[string]bool, len(d.Locations))
	for _, l := range d.Locations {
		if l.ID == "" {
			return fmt.Errorf("location %q has no id", l.Name)
		}
		if seen[l.ID] {
			return fmt.Errorf("duplicate location id: %s", l.ID)
		}
		seen[l.ID] = true
		if !l.ThreatLevel.Valid() {
			return fmt.Errorf("location %s has invalid threat level %q", l.ID, l.ThreatLevel)
		}
	}

	for _, a := range d.Alerts {
		if !a.Severity.Valid() {
			return fmt.Errorf("alert %s has invalid severity %q", a.ID, a.Severity)
		}
	}

	if d.Status.OverallStatus == "" {
		d.Status.OverallStatus = models.ThreatSafe
	}
	if d.Status.MonitoredLocations == 0 {
		d.Status.MonitoredLocations = len(d.Locations)
	}
	return nil
}
