package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	webhookMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_messages_total",
		Help: "Inbound webhook messages by classified intent and reply outcome.",
	}, []string{"intent", "outcome"})

	snapshotFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_fetch_total",
		Help: "Driver snapshot lookups by result.",
	}, []string{"result"})
)

func ObserveMessage(intent, outcome string) {
	webhookMessages.WithLabelValues(intent, outcome).Inc()
}

// ObserveSnapshot records a snapshot lookup; result is one of
// "ok", "unavailable", "timeout", "error", "cache_hit".
func ObserveSnapshot(result string) {
	snapshotFetches.WithLabelValues(result).Inc()
}
