// Package dashboard owns the monitoring state: locations, chart series and
// the alert list, and the operations that mutate them.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/go-coastal-alerts/internal/dataset"
	"github.com/mr1hm/go-coastal-alerts/internal/models"
	"github.com/mr1hm/go-coastal-alerts/internal/notify"
	"github.com/mr1hm/go-coastal-alerts/internal/observability"
	"github.com/mr1hm/go-coastal-alerts/internal/repository"
	"github.com/mr1hm/go-coastal-alerts/internal/simulator"
	"github.com/mr1hm/go-coastal-alerts/internal/threat"
)

var ErrInvalidSeverity = errors.New("invalid severity")

// Notifier is the side channel used to surface alert events to users.
type Notifier interface {
	Notify(title, message string, kind notify.Kind) notify.Notification
}

type Options struct {
	Source    simulator.Source
	Clock     clockwork.Clock
	Notifier  Notifier
	Archive   repository.AlertArchive // nil drops evicted alerts
	Metrics   *observability.Metrics
	Logger    *slog.Logger
	MaxAlerts int // 0 keeps every alert
}

type Engine struct {
	mu        sync.Mutex
	locations []models.Location
	series    models.Series
	alerts    []models.Alert // most recent first
	weather   models.WeatherMetrics
	status    models.SystemStatus

	src       simulator.Source
	clock     clockwork.Clock
	notifier  Notifier
	archive   repository.AlertArchive
	metrics   *observability.Metrics
	logger    *slog.Logger
	maxAlerts int
}

// NewAlert is the input for a manually authored alert.
type NewAlert struct {
	Location    string
	Severity    models.ThreatLevel
	Title       string
	Description string
}

func NewEngine(ds *dataset.Dataset, opts Options) *Engine {
	if opts.Source == nil {
		opts.Source = simulator.NewSource(0)
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Metrics == nil {
		opts.Metrics = observability.NewMetricsForTesting()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e := &Engine{
		locations: append([]models.Location(nil), ds.Locations...),
		series:    copySeries(ds.Series),
		alerts:    append([]models.Alert(nil), ds.Alerts...),
		weather:   ds.Weather,
		status:    ds.Status,
		src:       opts.Source,
		clock:     opts.Clock,
		notifier:  opts.Notifier,
		archive:   opts.Archive,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		maxAlerts: opts.MaxAlerts,
	}

	e.mu.Lock()
	e.refreshGaugesLocked()
	e.mu.Unlock()
	return e
}

// SimulateTick advances every location by one random-walk step and
// reclassifies it with the direct threshold rule. Chart series are only
// perturbed when updateSeries is set.
func (e *Engine) SimulateTick(updateSeries bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	simulator.StepLocations(e.src, e.locations)
	if updateSeries {
		simulator.StepSeries(e.src, &e.series)
	}
	e.status.OverallStatus = simulator.OverallStatus(e.locations)
	e.status.LastUpdated = e.clock.Now()

	e.metrics.SimulationTicks.Inc()
	e.refreshGaugesLocked()
	e.logger.Debug("simulation tick", "overall_status", e.status.OverallStatus, "series", updateSeries)
}

// CheckThreats runs the risk-score prediction for every location. An alert is
// raised when the prediction differs from the stored level and is not SAFE.
// The stored level always takes the prediction, alert or not.
func (e *Engine) CheckThreats(ctx context.Context) []models.Alert {
	type pending struct {
		alert    models.Alert
		location string
	}

	e.mu.Lock()
	now := e.clock.Now()
	var raised []pending
	for i := range e.locations {
		loc := &e.locations[i]
		prediction := threat.Predict(threat.FromLocation(loc))

		if prediction != loc.ThreatLevel && prediction != models.ThreatSafe {
			a := models.Alert{
				ID:          "auto_" + uuid.NewString(),
				Timestamp:   now,
				Severity:    prediction,
				Location:    loc.Name,
				Title:       prediction.Title() + " Threat Detected",
				Description: describe(prediction, loc),
			}
			raised = append(raised, pending{alert: a, location: loc.Name})
			e.logger.Info("threat detected", "location", loc.ID, "from", loc.ThreatLevel, "to", prediction)
		}

		loc.ThreatLevel = prediction
	}

	var evicted []models.Alert
	for _, p := range raised {
		evicted = append(evicted, e.prependLocked(p.alert)...)
		e.metrics.AlertsGenerated.WithLabelValues(string(p.alert.Severity), "auto").Inc()
	}
	e.status.OverallStatus = simulator.OverallStatus(e.locations)
	e.metrics.ThreatChecks.Inc()
	e.refreshGaugesLocked()
	e.mu.Unlock()

	e.archiveEvicted(ctx, evicted)

	alerts := make([]models.Alert, 0, len(raised))
	for _, p := range raised {
		e.notify(p.alert.Title, p.location+": "+p.alert.Description, notify.KindFor(p.alert.Severity))
		alerts = append(alerts, p.alert)
	}
	return alerts
}

// describe rounds sea level to one decimal; wind and pollution are shown as measured.
func describe(level models.ThreatLevel, loc *models.Location) string {
	return fmt.Sprintf("ML system detected %s conditions. Sea level: %.1fm, Wind: %skm/h, Pollution: %s",
		strings.ToLower(string(level)), loc.SeaLevel, formatReading(loc.WindSpeed), formatReading(loc.Pollution))
}

func formatReading(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Acknowledge marks the alert as reviewed. Unknown ids are ignored; the
// return value only reports whether the alert exists.
func (e *Engine) Acknowledge(id string) bool {
	e.mu.Lock()
	idx := e.indexLocked(id)
	if idx < 0 {
		e.mu.Unlock()
		e.logger.Debug("acknowledge: unknown alert", "id", id)
		return false
	}
	a := &e.alerts[idx]
	if !a.Acknowledged {
		a.Acknowledged = true
		e.metrics.AlertsAcked.Inc()
	}
	title := a.Title
	e.refreshGaugesLocked()
	e.mu.Unlock()

	e.notify("Alert Acknowledged", fmt.Sprintf("Alert %q has been acknowledged.", title), notify.KindSuccess)
	return true
}

func (e *Engine) CreateAlert(ctx context.Context, in NewAlert) (models.Alert, error) {
	if !in.Severity.Valid() {
		return models.Alert{}, fmt.Errorf("%w: %q", ErrInvalidSeverity, in.Severity)
	}

	e.mu.Lock()
	a := models.Alert{
		ID:          "alert_" + uuid.NewString(),
		Timestamp:   e.clock.Now(),
		Severity:    in.Severity,
		Location:    in.Location,
		Title:       in.Title,
		Description: in.Description,
	}
	evicted := e.prependLocked(a)
	e.metrics.AlertsGenerated.WithLabelValues(string(a.Severity), "manual").Inc()
	e.refreshGaugesLocked()
	e.mu.Unlock()

	e.archiveEvicted(ctx, evicted)
	e.notify("New Alert Created", fmt.Sprintf("%s alert created for %s", a.Severity, a.Location), notify.KindFor(a.Severity))
	e.logger.Info("alert created", "id", a.ID, "severity", a.Severity, "location", a.Location)
	return a, nil
}

// prependLocked inserts a at the head and returns whatever overflowed the cap.
func (e *Engine) prependLocked(a models.Alert) []models.Alert {
	e.alerts = append([]models.Alert{a}, e.alerts...)
	if e.maxAlerts <= 0 || len(e.alerts) <= e.maxAlerts {
		return nil
	}
	evicted := append([]models.Alert(nil), e.alerts[e.maxAlerts:]...)
	e.alerts = e.alerts[:e.maxAlerts:e.maxAlerts]
	return evicted
}

func (e *Engine) archiveEvicted(ctx context.Context, evicted []models.Alert) {
	if len(evicted) == 0 {
		return
	}
	e.metrics.AlertsArchived.Add(float64(len(evicted)))
	if e.archive == nil {
		return
	}
	if err := e.archive.ArchiveAlerts(ctx, evicted); err != nil {
		e.logger.Error("failed to archive alerts", "count", len(evicted), "error", err)
	}
}

func (e *Engine) notify(title, message string, kind notify.Kind) {
	if e.notifier != nil {
		e.notifier.Notify(title, message, kind)
	}
}

func (e *Engine) indexLocked(id string) int {
	for i := range e.alerts {
		if e.alerts[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) activeAlertsLocked() int {
	n := 0
	for i := range e.alerts {
		if !e.alerts[i].Acknowledged {
			n++
		}
	}
	return n
}

func (e *Engine) refreshGaugesLocked() {
	e.metrics.ActiveAlerts.Set(float64(e.activeAlertsLocked()))
	counts := map[models.ThreatLevel]int{}
	for i := range e.locations {
		counts[e.locations[i].ThreatLevel]++
	}
	for _, level := range []models.ThreatLevel{models.ThreatSafe, models.ThreatWarning, models.ThreatCritical} {
		e.metrics.LocationsByLevel.WithLabelValues(string(level)).Set(float64(counts[level]))
	}
}
