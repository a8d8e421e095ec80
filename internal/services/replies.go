package services

import (
	"delivery-tracking-bot/internal/domain"
	"fmt"
	"time"
)

type Outcome string

const (
	OutcomeOK          Outcome = "ok"
	OutcomeUnavailable Outcome = "unavailable"
	OutcomeFailed      Outcome = "failed"
)

// Reply is the chat text answered to one message together with how it was
// produced. Every Reply, including failed ones, is safe to send.
type Reply struct {
	Outcome Outcome
	Text    string
}

const (
	SystemErrorText = `⚠️ System error. Please text "HELP" for options.`

	locationUnavailableText = "📍 Driver location not available. Please try again in 5 minutes."
	locationFailedText      = "🚨 Unable to fetch location. Please try again."
	etaUnavailableText      = "⏱️ ETA not available. Driver may be offline."
	etaFailedText           = "⏱️ Unable to calculate ETA. Please try location instead."
	trackingUnavailableText = "🚨 Live tracking not available. Driver may be offline."

	placeholderDriverName   = "Ahmad (Driver #007)"
	placeholderDriverPhone  = "+6012-345 6789"
	placeholderDriverStatus = "En route to your location"
)

const menuText = `🚚 *WOSH DELIVERY TRACKING*

Hello! I can help you track your delivery. Please choose an option:

1️⃣ *Driver Location* - See where your driver is
2️⃣ *Estimated Arrival* - Get ETA to your address
3️⃣ *Driver Contact* - Get driver details
4️⃣ *Live Tracking Link* - Open live map

*Reply with number (1, 2, 3, or 4)*`

func MenuReply() Reply {
	return Reply{Outcome: OutcomeOK, Text: menuText}
}

func liveMapLink(c domain.Coordinates) string {
	return "https://maps.app.goo.gl/?q=" + c.QueryString()
}

func mapsLink(c domain.Coordinates) string {
	return "https://www.google.com/maps?q=" + c.QueryString()
}

func driverLocationReply(snap *domain.DriverSnapshot, eta domain.EtaEstimate) Reply {
	speed := "45 km/h"
	if snap.SpeedKph > 0 {
		speed = fmt.Sprintf("%d km/h", snap.SpeedKph)
	}

	text := fmt.Sprintf(`📍 *DRIVER LOCATION*

🚗 *Driver:* %s
📍 *Live Map:* %s
📱 *Status:* %s
📞 *Contact:* %s
⏱️ *ETA to You:* %s (%s away)
📊 *Speed:* %s

_Reply "2" for updated ETA or "4" for live tracking_`,
		snap.DriverName,
		liveMapLink(*snap.Location),
		snap.Status.Label(),
		snap.PhoneNumber,
		eta.ArrivalTimeLabel, eta.DistanceLabel(),
		speed,
	)

	return Reply{Outcome: OutcomeOK, Text: text}
}

func etaReply(eta domain.EtaEstimate) Reply {
	text := fmt.Sprintf(`⏱️ *ESTIMATED ARRIVAL TIME*

📅 *Today's Delivery*

🕐 *Estimated Arrival:* %s
📏 *Distance:* %s
🚦 *Traffic Condition:* %s
📊 *Confidence:* %s

_Updates every 5 minutes. Reply "1" for live location._`,
		eta.ArrivalTimeLabel,
		eta.DistanceLabel(),
		eta.Traffic.Label(),
		eta.ConfidenceLabel(),
	)

	return Reply{Outcome: OutcomeOK, Text: text}
}

// driverInfoReply accepts a nil snapshot and fills any gap with placeholders.
func driverInfoReply(snap *domain.DriverSnapshot) Reply {
	name, phone, status := placeholderDriverName, placeholderDriverPhone, placeholderDriverStatus
	if snap != nil {
		if snap.DriverName != "" {
			name = snap.DriverName
		}
		if snap.PhoneNumber != "" {
			phone = snap.PhoneNumber
		}
		if snap.Status != "" {
			status = snap.Status.Label()
		}
	}

	text := fmt.Sprintf(`👤 *DRIVER INFORMATION*

*Name:* %s
*Phone:* %s
*Vehicle:* Motorcycle (WOSH Delivery)
*Rating:* ⭐⭐⭐⭐⭐ (4.8/5)
*Deliveries Today:* 12/15 completed

📍 _Currently: %s_

📞 *Need help?* Call dispatch: 03-1234 5678`,
		name, phone, status,
	)

	return Reply{Outcome: OutcomeOK, Text: text}
}

func liveTrackingReply(snap *domain.DriverSnapshot, now time.Time) Reply {
	text := fmt.Sprintf(`📍 *LIVE TRACKING LINK*

Click to open live tracking:

%s

_or open:_

%s

📍 *Driver is here:* %s
⏱️ *Last updated:* %s

_Note: Location updates every 2 minutes._`,
		liveMapLink(*snap.Location),
		mapsLink(*snap.Location),
		snap.Location.String(),
		lastUpdatedLabel(snap.CapturedAt, now),
	)

	return Reply{Outcome: OutcomeOK, Text: text}
}

// lastUpdatedLabel describes the snapshot age; cached snapshots can be minutes old.
func lastUpdatedLabel(capturedAt, now time.Time) string {
	if capturedAt.IsZero() {
		return "Just now"
	}

	mins := int(now.Sub(capturedAt) / time.Minute)
	switch {
	case mins < 1:
		return "Just now"
	case mins == 1:
		return "1 minute ago"
	default:
		return fmt.Sprintf("%d minutes ago", mins)
	}
}
