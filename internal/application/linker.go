package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"merchops/internal/domain"
	"merchops/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

// ErrCampNotFound is returned when the linking target does not exist.
var ErrCampNotFound = errors.New("camp not found")

// OrderLinker links external Shopify orders to camp registrations.
//
// A batch is best-effort: each order is fetched and linked in
// isolation, a failure is recorded in that order's LinkResult and the
// rest of the batch continues. Results keep the input order, so the
// caller can distinguish total, partial and zero success without
// exceptions.
type OrderLinker struct {
	gateway       *GatewayService
	camps         ports.CampRepository
	registrations ports.RegistrationRepository
	concurrency   int64
	logger        zerolog.Logger
}

// NewOrderLinker creates a linker. Concurrency bounds how many orders
// are in flight at once against the upstream API; the default of 1
// keeps the workflow sequential and rate-limit friendly. The
// failure-isolation contract is the same at any bound.
func NewOrderLinker(
	gateway *GatewayService,
	camps ports.CampRepository,
	registrations ports.RegistrationRepository,
	concurrency int64,
	logger zerolog.Logger,
) *OrderLinker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &OrderLinker{
		gateway:       gateway,
		camps:         camps,
		registrations: registrations,
		concurrency:   concurrency,
		logger:        logger,
	}
}

// LinkOrdersToCamp fetches each order and creates a registration for
// it under the camp, returning one LinkResult per input order ID.
func (l *OrderLinker) LinkOrdersToCamp(ctx context.Context, campID string, orderIDs []string) ([]domain.LinkResult, error) {
	camp, err := l.camps.GetByID(ctx, campID)
	if err != nil {
		return nil, fmt.Errorf("failed to load camp: %w", err)
	}
	if camp == nil {
		return nil, ErrCampNotFound
	}

	results := make([]domain.LinkResult, len(orderIDs))
	sem := semaphore.NewWeighted(l.concurrency)
	var wg sync.WaitGroup

	for i, orderID := range orderIDs {
		if err := sem.Acquire(ctx, 1); err != nil {
			results[i] = domain.LinkResult{OrderID: orderID, Success: false, Error: err.Error()}
			continue
		}

		wg.Add(1)
		go func(i int, orderID string) {
			defer wg.Done()
			defer sem.Release(1)
			results[i] = l.linkOne(ctx, camp.ID, orderID)
		}(i, orderID)
	}

	wg.Wait()

	l.logger.Info().
		Str("campId", campID).
		Int("requested", len(orderIDs)).
		Int("linked", countSuccesses(results)).
		Msg("Order linking batch completed")

	return results, nil
}

// linkOne processes a single order. Every failure path returns a
// result instead of an error so it never escapes the batch.
func (l *OrderLinker) linkOne(ctx context.Context, campID string, rawOrderID string) domain.LinkResult {
	orderID, err := strconv.ParseUint(rawOrderID, 10, 64)
	if err != nil {
		return domain.LinkResult{OrderID: rawOrderID, Success: false, Error: fmt.Sprintf("invalid order id: %v", err)}
	}

	order, err := l.gateway.GetOrder(ctx, orderID)
	if err != nil {
		l.logger.Warn().Err(err).Str("orderId", rawOrderID).Msg("Failed to fetch order for linking")
		return domain.LinkResult{OrderID: rawOrderID, Success: false, Error: err.Error()}
	}

	registration := &domain.Registration{
		CampID:       campID,
		OrderID:      orderID,
		OrderName:    order.Name,
		CustomerName: customerName(order),
		Email:        order.Email,
		Items:        registrationItems(order.LineItems),
		Status:       domain.RegistrationStatusPending,
	}

	if err := l.registrations.Create(ctx, registration); err != nil {
		l.logger.Error().Err(err).Str("orderId", rawOrderID).Msg("Failed to create registration")
		return domain.LinkResult{OrderID: rawOrderID, Success: false, Error: err.Error()}
	}

	return domain.LinkResult{
		OrderID:        rawOrderID,
		Success:        true,
		RegistrationID: registration.ID,
		CustomerName:   registration.CustomerName,
		Email:          registration.Email,
	}
}

func customerName(order *goshopify.Order) string {
	if order.Customer != nil {
		name := strings.TrimSpace(order.Customer.FirstName + " " + order.Customer.LastName)
		if name != "" {
			return name
		}
	}
	return order.Email
}

func registrationItems(lineItems []goshopify.LineItem) []domain.RegistrationItem {
	items := make([]domain.RegistrationItem, 0, len(lineItems))
	for _, item := range lineItems {
		items = append(items, domain.RegistrationItem{
			Title:        item.Title,
			VariantTitle: item.VariantTitle,
			SKU:          item.SKU,
			Quantity:     item.Quantity,
		})
	}
	return items
}

func countSuccesses(results []domain.LinkResult) int {
	n := 0
	for _, r := range results {
		if r.Success {
			n++
		}
	}
	return n
}
