// Package http provides http transport for triage
package http

import (
	stdhttp "net/http"

	"triage/internal/modkit/httpkit"
	"triage/internal/services/triage/domain"
	svc "triage/internal/services/triage/service"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.PreprocessInput](r, "/preprocess", h.preprocess)
	httpkit.PostJSON[domain.WebhookInput](r, "/webhook", h.webhook)
	httpkit.Get(r, "/metrics", h.metrics)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /triage/preprocess Triage preprocess
// @Summary Classify a message and build its model payload
// @Tags triage
// @Accept json
// @Produce json
// @Param payload body domain.PreprocessInput true "Preprocess"
// @Success 200 {object} domain.PreprocessOutput "ok"
// @Router /triage/preprocess [post]
func (h *handlers) preprocess(r *stdhttp.Request, in domain.PreprocessInput) (any, error) {
	return h.svc.Preprocess(r.Context(), in)
}

// swagger:route POST /triage/webhook Triage webhook
// @Summary Receive a chat-gateway message and classify it
// @Tags triage
// @Accept json
// @Produce json
// @Param payload body domain.WebhookInput true "Webhook"
// @Success 200 {object} domain.WebhookOutput "ok"
// @Router /triage/webhook [post]
func (h *handlers) webhook(r *stdhttp.Request, in domain.WebhookInput) (any, error) {
	return h.svc.Webhook(r.Context(), in)
}

// swagger:route GET /triage/metrics Triage metrics
// @Summary Cache and latency counters
// @Tags triage
// @Produce json
// @Success 200 {object} domain.MetricsOutput "ok"
// @Router /triage/metrics [get]
func (h *handlers) metrics(r *stdhttp.Request) (any, error) {
	return h.svc.Metrics(r.Context())
}
