package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"merchops/internal/domain"
	"merchops/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

// OrderHandler keeps linked registrations in sync with order-lifecycle
// webhook events.
type OrderHandler struct {
	registrations ports.RegistrationRepository
	logger        zerolog.Logger
}

// NewOrderHandler creates a new order webhook handler
func NewOrderHandler(registrations ports.RegistrationRepository, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		registrations: registrations,
		logger:        logger,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *OrderHandler) CanHandle(topic string) bool {
	switch topic {
	case "orders/create", "orders/updated", "orders/paid", "orders/fulfilled", "orders/cancelled":
		return true
	}
	return false
}

// Handle processes an order webhook event
func (h *OrderHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	var order goshopify.Order
	if err := json.Unmarshal(event.Payload, &order); err != nil {
		return fmt.Errorf("failed to parse order webhook payload: %w", err)
	}

	h.logger.Info().
		Str("topic", event.Topic).
		Str("shop", event.Shop).
		Uint64("orderId", order.Id).
		Str("email", order.Email).
		Msg("Processing order webhook event")

	status, ok := statusForTopic(event.Topic)
	if !ok {
		return nil
	}

	// Registrations only exist for linked orders; an update for an
	// unlinked order matches nothing and that is fine.
	if err := h.registrations.UpdateStatusByOrderID(ctx, order.Id, status); err != nil {
		return fmt.Errorf("failed to update registration for order %d: %w", order.Id, err)
	}

	return nil
}

func statusForTopic(topic string) (domain.RegistrationStatus, bool) {
	switch topic {
	case "orders/paid":
		return domain.RegistrationStatusPaid, true
	case "orders/fulfilled":
		return domain.RegistrationStatusFulfilled, true
	case "orders/cancelled":
		return domain.RegistrationStatusCancelled, true
	}
	return "", false
}
