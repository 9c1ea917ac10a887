package notify

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/go-coastal-alerts/internal/observability"
	"github.com/mr1hm/go-coastal-alerts/internal/worker"
)

type Options struct {
	ToastDuration time.Duration
	Workers       int
	BufferSize    int
}

// Dispatcher sends every notification to the toast broadcaster and, when push
// permission has been granted, queues it for the push sink. Delivery is
// fire-and-forget: failures are logged and counted, never returned.
type Dispatcher struct {
	opts        Options
	broadcaster *Broadcaster
	push        PushSink
	clock       clockwork.Clock
	metrics     *observability.Metrics
	logger      *slog.Logger

	permitted atomic.Bool

	mu      sync.RWMutex
	pool    *worker.WorkerPool[Notification]
	running bool
}

func NewDispatcher(opts Options, broadcaster *Broadcaster, push PushSink, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		opts:        opts,
		broadcaster: broadcaster,
		push:        push,
		clock:       clock,
		metrics:     metrics,
		logger:      logger,
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return
	}

	d.pool = worker.NewWorkerPool(d.opts.Workers, d.opts.BufferSize, d.deliver)
	d.pool.OnError(func(n Notification, err error) {
		d.metrics.Notifications.WithLabelValues("push", "failed").Inc()
		d.logger.Warn("push notification failed", "title", n.Title, "error", err)
	})
	d.pool.Start(ctx)
	d.running = true
}

func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running {
		return
	}
	d.running = false
	d.pool.Stop()
}

// SetPermission grants or revokes push delivery.
func (d *Dispatcher) SetPermission(granted bool) {
	d.permitted.Store(granted)
	d.logger.Info("notification permission", "granted", granted)
}

func (d *Dispatcher) Permitted() bool {
	return d.permitted.Load()
}

func (d *Dispatcher) Notify(title, message string, kind Kind) Notification {
	n := New(title, message, kind, d.clock.Now(), d.opts.ToastDuration)
	d.logger.Debug("showing notification", "title", title, "message", message, "kind", kind)

	delivered, dropped := d.broadcaster.Broadcast(n)
	if delivered > 0 {
		d.metrics.Notifications.WithLabelValues("toast", "delivered").Add(float64(delivered))
	}
	if dropped > 0 {
		d.metrics.Notifications.WithLabelValues("toast", "dropped").Add(float64(dropped))
	}

	if !d.permitted.Load() || d.push == nil {
		return n
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.running {
		return n
	}
	if !d.pool.TrySubmit(n) {
		d.metrics.Notifications.WithLabelValues("push", "dropped").Inc()
		d.logger.Warn("push queue full, dropping notification", "title", title)
	}
	return n
}

func (d *Dispatcher) deliver(ctx context.Context, n Notification) error {
	if err := d.push.Push(ctx, n); err != nil {
		return err
	}
	d.metrics.Notifications.WithLabelValues("push", "delivered").Inc()
	return nil
}
