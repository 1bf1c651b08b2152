// Package metrics defines and registers all custom Prometheus metrics for the
// Eventura marketplace API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register themselves with the default Prometheus registry via
// promauto at package load time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsEmittedTotal counts notification events delivered by the
// dispatcher workers.
// Labels:
//   - kind: the emission kind (e.g. "pitch_received", "payment_confirmed")
//   - channel: "in_app" or "email"
var NotificationsEmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_emitted_total",
		Help:      "Total number of notification deliveries completed, by kind and channel.",
	},
	[]string{"kind", "channel"},
)

// NotificationsFailedTotal counts notification deliveries that failed.
// Delivery is at-most-once: failures are logged and dropped, never retried.
// Labels:
//   - kind: the emission kind
//   - channel: "in_app" or "email"
var NotificationsFailedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_failed_total",
		Help:      "Total number of notification deliveries that failed, by kind and channel.",
	},
	[]string{"kind", "channel"},
)

// NotificationQueueDepth tracks the number of events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notification events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Marketplace metrics ───────────────────────────────────────────────────────

// RequestsCreatedTotal counts newly posted service requests.
// Label:
//   - service_type: the requested service category (e.g. "PHOTOGRAPHY")
var RequestsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_created_total",
		Help:      "Total number of service requests created, by service type.",
	},
	[]string{"service_type"},
)

// StatusTransitionsTotal counts lifecycle status changes across entities.
// Labels:
//   - entity: "request", "pitch", "payment", or "connection"
//   - to: the target status applied
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of accepted status transitions, by entity and target status.",
	},
	[]string{"entity", "to"},
)

// PaymentsAmountTotal accumulates the value of completed payments.
var PaymentsAmountTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_amount_total",
		Help:      "Cumulative amount of payments marked COMPLETED.",
	},
)
