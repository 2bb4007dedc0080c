package api

import (
	"io"
	"net/http"
	"time"

	"merchops/internal/application"
	"merchops/internal/domain"
	"merchops/internal/infrastructure/shopify"
	"merchops/internal/ports"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

// dedupTTL covers Shopify's redelivery window for a single delivery id.
const dedupTTL = 10 * time.Minute

// WebhookHandlers receives inbound Shopify pushes. Deliveries are
// signature-verified, deduplicated by delivery id, logged, then
// dispatched.
type WebhookHandlers struct {
	verifier   *shopify.WebhookVerifier
	dispatcher *application.WebhookDispatcher
	events     ports.WebhookEventRepository
	seen       *gocache.Cache
	logger     zerolog.Logger
}

// NewWebhookHandlers creates the webhook receiver
func NewWebhookHandlers(
	verifier *shopify.WebhookVerifier,
	dispatcher *application.WebhookDispatcher,
	events ports.WebhookEventRepository,
	logger zerolog.Logger,
) *WebhookHandlers {
	return &WebhookHandlers{
		verifier:   verifier,
		dispatcher: dispatcher,
		events:     events,
		seen:       gocache.New(dedupTTL, 2*dedupTTL),
		logger:     logger,
	}
}

// Receive handles POST /webhooks/shopify
func (h *WebhookHandlers) Receive(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read webhook payload")
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	defer r.Body.Close()

	if !h.verifier.Verify(payload, r.Header.Get("X-Shopify-Hmac-Sha256")) {
		h.logger.Warn().Msg("Webhook signature verification failed")
		writeError(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	topic := r.Header.Get("X-Shopify-Topic")
	if topic == "" {
		h.logger.Warn().Msg("Missing X-Shopify-Topic header")
		writeError(w, http.StatusBadRequest, "missing X-Shopify-Topic header")
		return
	}

	// Shopify redelivers until acknowledged; a delivery id inside the
	// dedup window is acknowledged without reprocessing.
	deliveryID := r.Header.Get("X-Shopify-Webhook-Id")
	if deliveryID != "" {
		if _, dup := h.seen.Get(deliveryID); dup {
			h.logger.Debug().Str("deliveryId", deliveryID).Msg("Duplicate webhook delivery acknowledged")
			writeJSON(w, http.StatusOK, map[string]string{"received": "true"})
			return
		}
	}

	event := &domain.WebhookEvent{
		Topic:      topic,
		Shop:       r.Header.Get("X-Shopify-Shop-Domain"),
		DeliveryID: deliveryID,
		Payload:    payload,
		Verified:   true,
	}

	if err := h.events.Log(r.Context(), event); err != nil {
		h.logger.Error().Err(err).Msg("Failed to log webhook event")
		// Continue processing even if logging fails
	}

	if err := h.dispatcher.Dispatch(r.Context(), event); err != nil {
		h.logger.Error().Err(err).Str("topic", topic).Msg("Failed to dispatch webhook event")
		// Return 500 to trigger Shopify retry
		writeError(w, http.StatusInternalServerError, "failed to process webhook event")
		return
	}

	// Only acknowledged deliveries count as seen, so a failed dispatch
	// is still retriable.
	if deliveryID != "" {
		h.seen.Set(deliveryID, struct{}{}, gocache.DefaultExpiration)
	}

	writeJSON(w, http.StatusOK, map[string]string{"received": "true"})
}
