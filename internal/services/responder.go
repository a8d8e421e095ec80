package services

import (
	"context"
	"delivery-tracking-bot/internal/domain"
	"delivery-tracking-bot/internal/platform/obs"
	"delivery-tracking-bot/internal/ports"
	"errors"
	"log"
	"time"
)

// Responder turns one inbound message into the reply for the transport.
type Responder struct {
	Provider  ports.LocationProvider
	Estimator ports.EtaEstimator
	// FetchTimeout caps every snapshot fetch; zero disables the cap.
	FetchTimeout time.Duration
	Clock        func() time.Time
}

func NewResponder(provider ports.LocationProvider, estimator ports.EtaEstimator, fetchTimeout time.Duration) *Responder {
	return &Responder{
		Provider:     provider,
		Estimator:    estimator,
		FetchTimeout: fetchTimeout,
		Clock:        time.Now,
	}
}

// Respond classifies msg and builds the matching reply.
func (r *Responder) Respond(ctx context.Context, msg domain.InboundMessage) (domain.Intent, Reply) {
	intent := Classify(msg.Text)

	switch intent {
	case domain.IntentDriverLocation:
		return intent, r.driverLocation(ctx, msg.SenderID)
	case domain.IntentEta:
		return intent, r.eta(ctx, msg.SenderID)
	case domain.IntentDriverInfo:
		return intent, r.driverInfo(ctx, msg.SenderID)
	case domain.IntentLiveTracking:
		return intent, r.liveTracking(ctx, msg.SenderID)
	default:
		return intent, MenuReply()
	}
}

func (r *Responder) driverLocation(ctx context.Context, sender string) (reply Reply) {
	snap, outcome := r.fetchSnapshot(ctx, sender)
	if outcome != OutcomeOK {
		return Reply{Outcome: OutcomeUnavailable, Text: locationUnavailableText}
	}
	defer recoverReply(ctx, "driver location", locationFailedText, &reply)

	eta := estimateOrFallback(ctx, r.Estimator, snap)
	return driverLocationReply(snap, eta)
}

func (r *Responder) eta(ctx context.Context, sender string) (reply Reply) {
	snap, outcome := r.fetchSnapshot(ctx, sender)
	if outcome != OutcomeOK {
		return Reply{Outcome: OutcomeUnavailable, Text: etaUnavailableText}
	}
	defer recoverReply(ctx, "eta", etaFailedText, &reply)

	return etaReply(estimateOrFallback(ctx, r.Estimator, snap))
}

// driverInfo answers a profile card whatever the snapshot lookup returned.
func (r *Responder) driverInfo(ctx context.Context, sender string) Reply {
	snap, _ := r.fetchSnapshot(ctx, sender)
	return driverInfoReply(snap)
}

func (r *Responder) liveTracking(ctx context.Context, sender string) (reply Reply) {
	snap, outcome := r.fetchSnapshot(ctx, sender)
	if outcome != OutcomeOK {
		return Reply{Outcome: OutcomeUnavailable, Text: trackingUnavailableText}
	}
	defer recoverReply(ctx, "live tracking", SystemErrorText, &reply)

	return liveTrackingReply(snap, r.now())
}

// recoverReply turns a panic while building a reply from a fetched snapshot
// into a failed reply carrying text.
func recoverReply(ctx context.Context, op, text string, reply *Reply) {
	if rec := recover(); rec != nil {
		log.Printf("req_id=%s %s reply panicked: %v", obs.RequestID(ctx), op, rec)
		*reply = Reply{Outcome: OutcomeFailed, Text: text}
	}
}

// fetchSnapshot reads the driver snapshot under the fetch timeout and reports
// OutcomeOK only when the snapshot carries coordinates. Every other result,
// including provider errors and panics, is OutcomeUnavailable.
func (r *Responder) fetchSnapshot(ctx context.Context, sender string) (snap *domain.DriverSnapshot, outcome Outcome) {
	if r.Provider == nil {
		obs.ObserveSnapshot("unavailable")
		return nil, OutcomeUnavailable
	}

	if r.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.FetchTimeout)
		defer cancel()
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("req_id=%s snapshot fetch panicked: %v", obs.RequestID(ctx), rec)
			obs.ObserveSnapshot("error")
			snap, outcome = nil, OutcomeUnavailable
		}
	}()

	snap, err := r.Provider.FetchSnapshot(ctx, sender)
	switch {
	case err == nil && snap.HasLocation():
		obs.ObserveSnapshot("ok")
		return snap, OutcomeOK
	case err == nil:
		obs.ObserveSnapshot("unavailable")
		return snap, OutcomeUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		log.Printf("req_id=%s snapshot fetch timed out after %s", obs.RequestID(ctx), r.FetchTimeout)
		obs.ObserveSnapshot("timeout")
		return nil, OutcomeUnavailable
	case errors.Is(err, ports.ErrSnapshotUnavailable):
		obs.ObserveSnapshot("unavailable")
		return nil, OutcomeUnavailable
	default:
		log.Printf("req_id=%s snapshot fetch failed: %v", obs.RequestID(ctx), err)
		obs.ObserveSnapshot("error")
		return nil, OutcomeUnavailable
	}
}

func (r *Responder) now() time.Time {
	if r.Clock == nil {
		return time.Now()
	}
	return r.Clock()
}
