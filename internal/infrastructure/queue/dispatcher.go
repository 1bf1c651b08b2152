package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/eventura/marketplace-system/internal/api/metrics"
	"github.com/eventura/marketplace-system/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher delivers notification events on a fixed set of workers using
// consistent hashing on the recipient's user ID, so one user's notifications
// arrive in emission order. Delivery is at-most-once: a failed write or send
// is counted, logged, and dropped, never surfaced to the emitting service.
type Dispatcher struct {
	workers []chan ports.NotificationEvent
	inbox   ports.NotificationService
	mailer  ports.Mailer
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, inbox ports.NotificationService, mailer ports.Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.NotificationEvent, numWorkers),
		inbox:   inbox,
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.NotificationEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Notify routes an event to the worker responsible for its recipient. A full
// worker channel drops the event rather than blocking the caller.
func (d *Dispatcher) Notify(event ports.NotificationEvent) {
	idx := d.shardIndex(event.UserID)
	select {
	case d.workers[idx] <- event:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.NotificationsFailedTotal.WithLabelValues(string(event.Kind), "in_app").Inc()
		d.log.Warn().
			Str("user_id", event.UserID).
			Str("kind", string(event.Kind)).
			Int("worker_id", idx).
			Msg("notification dropped: worker queue full")
	}
}

// shardIndex maps a user ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.NotificationEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			d.deliver(ctx, id, event)
			metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, workerID int, event ports.NotificationEvent) {
	if event.InApp {
		if _, err := d.inbox.Create(ctx, event.UserID, event.Message); err != nil {
			metrics.NotificationsFailedTotal.WithLabelValues(string(event.Kind), "in_app").Inc()
			d.log.Error().Err(err).
				Str("user_id", event.UserID).
				Str("kind", string(event.Kind)).
				Int("worker_id", workerID).
				Msg("in-app notification write failed")
		} else {
			metrics.NotificationsEmittedTotal.WithLabelValues(string(event.Kind), "in_app").Inc()
		}
	}

	if event.Mail != nil {
		if err := d.mailer.Send(*event.Mail); err != nil {
			metrics.NotificationsFailedTotal.WithLabelValues(string(event.Kind), "email").Inc()
			d.log.Error().Err(err).
				Str("to", event.Mail.To).
				Str("kind", string(event.Kind)).
				Int("worker_id", workerID).
				Msg("notification email failed")
		} else {
			metrics.NotificationsEmittedTotal.WithLabelValues(string(event.Kind), "email").Inc()
		}
	}
}
