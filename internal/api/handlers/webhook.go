package handlers

import (
	"context"
	"delivery-tracking-bot/internal/domain"
	"delivery-tracking-bot/internal/platform/obs"
	"delivery-tracking-bot/internal/ports"
	"delivery-tracking-bot/internal/services"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Webhook bodies larger than this are cut off before parsing.
const maxWebhookBody = 64 << 10

// WebhookHandler answers messaging transport webhooks with TwiML replies.
//
// Apart from 405 for non-POST calls, it always answers 200 with a well-formed
// XML message, even when building the reply failed.
type WebhookHandler struct {
	Responder *services.Responder
	// Log is optional; recording failures never affect the reply.
	Log   ports.MessageLog
	Clock func() time.Time

	pending sync.WaitGroup
}

func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeXML(w, r, http.StatusMethodNotAllowed, MethodNotAllowedXML)
		return
	}

	receivedAt := h.now()

	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBody)
	form, err := parseWebhookForm(r)
	if err != nil {
		log.Printf("req_id=%s webhook form parse failed: %v", obs.RequestID(r.Context()), err)
	}

	msg := domain.InboundMessage{
		Text:     form.Get("Body"),
		SenderID: form.Get("From"),
	}

	intent, reply := h.respond(r.Context(), msg)

	log.Printf(
		"req_id=%s webhook message from=%s intent=%s outcome=%s",
		obs.RequestID(r.Context()), msg.Sender(), intent, reply.Outcome,
	)
	obs.ObserveMessage(string(intent), string(reply.Outcome))

	writeTwiML(w, r, http.StatusOK, reply.Text)

	h.recordAsync(r.Context(), ports.MessageLogEntry{
		Sender:     msg.Sender(),
		Body:       msg.Text,
		Intent:     intent,
		Outcome:    string(reply.Outcome),
		ReceivedAt: receivedAt,
	})
}

// respond converts a panic anywhere in reply generation into the generic
// system error reply.
func (h *WebhookHandler) respond(ctx context.Context, msg domain.InboundMessage) (intent domain.Intent, reply services.Reply) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("req_id=%s webhook reply panicked: %v", obs.RequestID(ctx), rec)
			intent = services.Classify(msg.Text)
			reply = services.Reply{Outcome: services.OutcomeFailed, Text: services.SystemErrorText}
		}
	}()

	if h.Responder == nil {
		return domain.IntentMenu, services.Reply{Outcome: services.OutcomeFailed, Text: services.SystemErrorText}
	}

	return h.Responder.Respond(ctx, msg)
}

// parseWebhookForm reads the url-encoded body. Senders that omit the
// Content-Type header still get their body parsed as a form.
func parseWebhookForm(r *http.Request) (url.Values, error) {
	if r.Header.Get("Content-Type") != "" {
		err := r.ParseForm()
		return r.PostForm, err
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return url.Values{}, fmt.Errorf("read webhook body: %w", err)
	}
	form, err := url.ParseQuery(string(raw))
	if err != nil {
		return form, fmt.Errorf("parse webhook body: %w", err)
	}
	return form, nil
}

// recordAsync writes entry in the background so a slow store never holds
// back the reply. Each write is bounded by its own timeout.
func (h *WebhookHandler) recordAsync(ctx context.Context, entry ports.MessageLogEntry) {
	if h.Log == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)
	h.pending.Add(1)
	go func() {
		defer h.pending.Done()

		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		if err := h.Log.Record(ctx, entry); err != nil {
			log.Printf("req_id=%s message log write failed: %v", obs.RequestID(ctx), err)
		}
	}()
}

// Wait blocks until background message log writes have finished.
func (h *WebhookHandler) Wait() {
	h.pending.Wait()
}

func (h *WebhookHandler) now() time.Time {
	if h.Clock == nil {
		return time.Now()
	}
	return h.Clock()
}
