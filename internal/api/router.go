package api

import (
	"delivery-tracking-bot/internal/api/handlers"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(webhookPath string, webhook *handlers.WebhookHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc(webhookPath, webhook.Receive)

	return requestIDMiddleware(loggingMiddleware(mux))
}
