// Package metrics declares the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upload results recorded in Uploads.
const (
	UploadAccepted = "accepted"
	UploadRejected = "rejected"
	UploadMissing  = "missing"
	UploadFailed   = "failed"
)

var (
	// EntriesAppended counts entries added to each shared list.
	EntriesAppended = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "homeboard_entries_appended_total",
		Help: "Entries appended per shared list",
	}, []string{"list"})

	// ConnectedClients tracks clients registered with the hub.
	ConnectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "homeboard_connected_clients",
		Help: "Real-time clients currently registered",
	})

	// ClientsEvicted counts clients disconnected because their event queue filled up.
	ClientsEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "homeboard_clients_evicted_total",
		Help: "Real-time clients disconnected for falling behind",
	})

	// Uploads counts image upload attempts by result.
	Uploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "homeboard_uploads_total",
		Help: "Image upload attempts by result",
	}, []string{"result"})

	// MalformedEvents counts inbound real-time frames that were dropped.
	MalformedEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "homeboard_malformed_events_total",
		Help: "Inbound real-time frames dropped by reason",
	}, []string{"reason"})
)
