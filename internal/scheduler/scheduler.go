// Package scheduler drives the two periodic tasks of a monitoring session:
// the simulation tick and the threat check.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/go-coastal-alerts/internal/models"
	"github.com/mr1hm/go-coastal-alerts/internal/observability"
)

// Engine is the part of the dashboard the scheduler ticks.
type Engine interface {
	SimulateTick(updateSeries bool)
	CheckThreats(ctx context.Context) []models.Alert
}

type Options struct {
	SimulationInterval  time.Duration
	ThreatCheckInterval time.Duration

	// ChartsVisible reports whether chart series should move on this tick.
	ChartsVisible func() bool
	// ThreatGate reports whether threat checks may run. Nil always allows.
	ThreatGate func() bool
}

type Scheduler struct {
	engine  Engine
	opts    Options
	clock   clockwork.Clock
	metrics *observability.Metrics

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(engine Engine, opts Options, clock clockwork.Clock, metrics *observability.Metrics) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if metrics == nil {
		metrics = observability.NewMetricsForTesting()
	}
	return &Scheduler{
		engine:  engine,
		opts:    opts,
		clock:   clock,
		metrics: metrics,
	}
}

// Start launches both loops. Calling Start while running is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(2)
	go s.runLoop(ctx, "simulation", s.opts.SimulationInterval, s.simulate)
	go s.runLoop(ctx, "threat_check", s.opts.ThreatCheckInterval, s.checkThreats)

	s.metrics.SchedulerRunning.Set(1)
}

func (s *Scheduler) runLoop(ctx context.Context, task string, interval time.Duration, fn func(context.Context)) {
	defer s.wg.Done()
	slog.Info("starting periodic task", "task", task, "interval", interval)

	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("periodic task shutting down", "task", task)
			return
		case <-ticker.Chan():
			fn(ctx)
		}
	}
}

func (s *Scheduler) simulate(_ context.Context) {
	charts := s.opts.ChartsVisible != nil && s.opts.ChartsVisible()
	s.engine.SimulateTick(charts)
}

func (s *Scheduler) checkThreats(ctx context.Context) {
	if s.opts.ThreatGate != nil && !s.opts.ThreatGate() {
		slog.Debug("threat check skipped: no active view")
		return
	}
	alerts := s.engine.CheckThreats(ctx)
	slog.Debug("threat check complete", "alerts", len(alerts))
}

// Stop cancels both loops and waits for them to exit. It is safe to call
// when not running, and Start may be called again afterwards.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()
	s.metrics.SchedulerRunning.Set(0)
	slog.Info("scheduler stopped")
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}
