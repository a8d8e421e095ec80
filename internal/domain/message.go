package domain

import "strings"

// A single message delivered by the messaging transport webhook.
type InboundMessage struct {
	Text     string
	SenderID string
}

// Sender returns the sender id without the transport channel prefix,
// e.g. "whatsapp:+60123456789" becomes "+60123456789".
func (m InboundMessage) Sender() string {
	from := strings.TrimSpace(m.SenderID)
	if i := strings.Index(from, ":"); i >= 0 && !strings.HasPrefix(from, "+") {
		from = from[i+1:]
	}
	return strings.TrimSpace(from)
}

// Intent is the menu option a message was classified into.
type Intent string

const (
	IntentMenu           Intent = "menu"
	IntentDriverLocation Intent = "driver_location"
	IntentEta            Intent = "eta"
	IntentDriverInfo     Intent = "driver_info"
	IntentLiveTracking   Intent = "live_tracking"
)
