package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mr1hm/go-coastal-alerts/internal/models"
	"github.com/mr1hm/go-coastal-alerts/internal/observability"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingEngine struct {
	mu     sync.Mutex
	ticks  int
	charts int
	checks int
}

func (c *countingEngine) SimulateTick(updateSeries bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticks++
	if updateSeries {
		c.charts++
	}
}

func (c *countingEngine) CheckThreats(context.Context) []models.Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks++
	return nil
}

func (c *countingEngine) counts() (ticks, charts, checks int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks, c.charts, c.checks
}

const (
	simEvery   = 30 * time.Second
	checkEvery = 60 * time.Second
)

func waitForTickers(t *testing.T, clock *clockwork.FakeClock) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 2))
}

func TestScheduler_TicksAtIntervals(t *testing.T) {
	clock := clockwork.NewFakeClock()
	engine := &countingEngine{}
	metrics := observability.NewMetricsForTesting()
	s := New(engine, Options{SimulationInterval: simEvery, ThreatCheckInterval: checkEvery}, clock, metrics)

	s.Start(context.Background())
	defer s.Stop()
	waitForTickers(t, clock)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SchedulerRunning))

	clock.Advance(simEvery)
	require.Eventually(t, func() bool {
		ticks, _, _ := engine.counts()
		return ticks == 1
	}, time.Second, 5*time.Millisecond)

	clock.Advance(simEvery)
	require.Eventually(t, func() bool {
		ticks, _, checks := engine.counts()
		return ticks == 2 && checks == 1
	}, time.Second, 5*time.Millisecond)

	_, charts, _ := engine.counts()
	assert.Zero(t, charts, "series stay put unless charts are visible")
}

func TestScheduler_ChartsVisible(t *testing.T) {
	clock := clockwork.NewFakeClock()
	engine := &countingEngine{}
	var visible atomic.Bool
	visible.Store(true)

	s := New(engine, Options{
		SimulationInterval:  simEvery,
		ThreatCheckInterval: checkEvery,
		ChartsVisible:       visible.Load,
	}, clock, nil)
	s.Start(context.Background())
	defer s.Stop()
	waitForTickers(t, clock)

	clock.Advance(simEvery)
	require.Eventually(t, func() bool {
		_, charts, _ := engine.counts()
		return charts == 1
	}, time.Second, 5*time.Millisecond)
}

func TestScheduler_ThreatGate(t *testing.T) {
	clock := clockwork.NewFakeClock()
	engine := &countingEngine{}
	var open atomic.Bool

	s := New(engine, Options{
		SimulationInterval:  time.Hour,
		ThreatCheckInterval: checkEvery,
		ThreatGate:          open.Load,
	}, clock, nil)
	s.Start(context.Background())
	defer s.Stop()
	waitForTickers(t, clock)

	clock.Advance(checkEvery)
	// give the loop a chance to run the gated tick
	time.Sleep(20 * time.Millisecond)
	_, _, checks := engine.counts()
	assert.Zero(t, checks)

	open.Store(true)
	clock.Advance(checkEvery)
	require.Eventually(t, func() bool {
		_, _, checks := engine.counts()
		return checks == 1
	}, time.Second, 5*time.Millisecond)
}

func TestScheduler_StopHaltsTicks(t *testing.T) {
	clock := clockwork.NewFakeClock()
	engine := &countingEngine{}
	metrics := observability.NewMetricsForTesting()
	s := New(engine, Options{SimulationInterval: simEvery, ThreatCheckInterval: checkEvery}, clock, metrics)

	s.Start(context.Background())
	waitForTickers(t, clock)
	s.Stop()

	assert.False(t, s.Running())
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.SchedulerRunning))

	clock.Advance(10 * checkEvery)
	time.Sleep(20 * time.Millisecond)
	ticks, _, checks := engine.counts()
	assert.Zero(t, ticks)
	assert.Zero(t, checks)
}

func TestScheduler_StartIsIdempotent(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := New(&countingEngine{}, Options{SimulationInterval: simEvery, ThreatCheckInterval: checkEvery}, clock, nil)

	s.Start(context.Background())
	s.Start(context.Background())
	waitForTickers(t, clock)
	assert.True(t, s.Running())

	s.Stop()
	s.Stop()
	assert.False(t, s.Running())
}

func TestScheduler_Restart(t *testing.T) {
	clock := clockwork.NewFakeClock()
	engine := &countingEngine{}
	s := New(engine, Options{SimulationInterval: simEvery, ThreatCheckInterval: checkEvery}, clock, nil)

	s.Start(context.Background())
	waitForTickers(t, clock)
	s.Stop()

	s.Start(context.Background())
	defer s.Stop()
	waitForTickers(t, clock)

	clock.Advance(simEvery)
	require.Eventually(t, func() bool {
		ticks, _, _ := engine.counts()
		return ticks == 1
	}, time.Second, 5*time.Millisecond)
}

func TestScheduler_ParentContextCancel(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := New(&countingEngine{}, Options{SimulationInterval: simEvery, ThreatCheckInterval: checkEvery}, clock, nil)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	waitForTickers(t, clock)
	cancel()

	// loops exit on the parent context; Stop still reaps them
	s.Stop()
}
