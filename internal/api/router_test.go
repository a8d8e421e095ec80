package api

import (
	"delivery-tracking-bot/internal/adapters/location"
	"delivery-tracking-bot/internal/api/handlers"
	"delivery-tracking-bot/internal/domain"
	"delivery-tracking-bot/internal/services"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func newTestRouter() http.Handler {
	p := location.NewStaticProvider(&domain.DriverSnapshot{
		Location: &domain.Coordinates{Lat: 3.14, Lon: 101.69},
	}, nil)
	wh := &handlers.WebhookHandler{
		Responder: services.NewResponder(p, nil, time.Second),
	}
	return NewRouter("/webhook/whatsapp", wh)
}

func TestRouterWebhookEndToEnd(t *testing.T) {
	router := newTestRouter()

	form := url.Values{"Body": {"hello"}, "From": {"+60123456789"}}
	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "WOSH DELIVERY TRACKING") {
		t.Fatalf("body = %s", rr.Body.String())
	}
	if rr.Header().Get(requestIDHeader) == "" {
		t.Fatal("expected generated request id")
	}
}

func TestRouterWebhookGet(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/webhook/whatsapp", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rr.Code)
	}
	if rr.Body.String() != handlers.MethodNotAllowedXML {
		t.Fatalf("body = %q", rr.Body.String())
	}
	if got := rr.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("request id = %q, want abc-123", got)
	}
}

func TestRouterHealthAndMetrics(t *testing.T) {
	router := newTestRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Fatalf("health: %d %s", rr.Code, rr.Body.String())
	}

	// Drive one message so the counters exist.
	form := url.Values{"Body": {"4"}}
	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(httptest.NewRecorder(), req)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "webhook_messages_total") {
		t.Fatal("metrics missing webhook_messages_total")
	}
}
