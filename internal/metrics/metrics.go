// Package metrics exposes the server's Prometheus collectors. All
// collectors register against the default registry and are served by the
// /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "boardsync"

var (
	// ActiveRooms is the number of rooms currently held by the registry.
	ActiveRooms = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_rooms",
		Help:      "Rooms currently held by the registry.",
	})

	// Participants is the number of joined sessions across all rooms.
	Participants = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "participants",
		Help:      "Joined sessions across all rooms.",
	})

	// StrokesCommitted counts strokes appended to room histories.
	StrokesCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "strokes_committed_total",
		Help:      "Strokes committed to room histories.",
	})

	// MessagesReceived counts inbound websocket frames.
	MessagesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_received_total",
		Help:      "Inbound websocket frames read from clients.",
	})

	// FramesSent counts frames queued for delivery to clients.
	FramesSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "frames_sent_total",
		Help:      "Frames queued for delivery to clients.",
	})

	// FramesDropped counts frames dropped because a client's outbound
	// queue was full or the connection had already closed.
	FramesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "frames_dropped_total",
		Help:      "Frames dropped for slow or closed clients.",
	})
)
