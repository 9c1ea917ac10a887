package dashboard

import (
	"context"

	"github.com/mr1hm/go-coastal-alerts/internal/models"
	"github.com/mr1hm/go-coastal-alerts/internal/repository"
)

// Alerts returns the alert list, most recent first. An empty severity returns all alerts.
func (e *Engine) Alerts(severity models.ThreatLevel) []models.Alert {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.Alert, 0, len(e.alerts))
	for _, a := range e.alerts {
		if severity == "" || a.Severity == severity {
			out = append(out, a)
		}
	}
	return out
}

func (e *Engine) Alert(id string) (models.Alert, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if idx := e.indexLocked(id); idx >= 0 {
		return e.alerts[idx], true
	}
	return models.Alert{}, false
}

// Archived lists alerts evicted from memory. Without an archive it is always empty.
func (e *Engine) Archived(ctx context.Context, opts repository.Filter) ([]models.Alert, error) {
	if e.archive == nil {
		return nil, nil
	}
	return e.archive.ListArchived(ctx, opts)
}

func (e *Engine) Locations() []models.Location {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.Location(nil), e.locations...)
}

func (e *Engine) Location(id string) (models.Location, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, l := range e.locations {
		if l.ID == id {
			return l, true
		}
	}
	return models.Location{}, false
}

// Status reports the system status with the live count of unacknowledged alerts.
func (e *Engine) Status() models.SystemStatus {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.status
	s.ActiveAlerts = e.activeAlertsLocked()
	return s
}

func (e *Engine) Overview() models.Overview {
	e.mu.Lock()
	defer e.mu.Unlock()

	o := models.Overview{SystemUptime: e.status.SystemUptime}
	for _, l := range e.locations {
		switch l.ThreatLevel {
		case models.ThreatSafe:
			o.Safe++
		case models.ThreatWarning:
			o.Warning++
		case models.ThreatCritical:
			o.Critical++
		}
	}
	return o
}

func (e *Engine) Series() models.Series {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copySeries(e.series)
}

func (e *Engine) Weather() models.WeatherMetrics {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.weather
}

func copySeries(s models.Series) models.Series {
	return models.Series{
		Tide:      append([]models.TidePoint(nil), s.Tide...),
		Wind:      append([]models.WindPoint(nil), s.Wind...),
		Pollution: append([]models.PollutionReading(nil), s.Pollution...),
		Storm:     append([]models.StormRisk(nil), s.Storm...),
	}
}
