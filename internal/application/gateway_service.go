package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"merchops/internal/domain"
	"merchops/internal/infrastructure/shopify"
	"merchops/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

// GatewayService exposes typed reads over the raw Shopify gateway.
// It depends on ports (interfaces) not concrete implementations.
type GatewayService struct {
	gateway ports.ShopifyGateway
	logger  zerolog.Logger
}

// NewGatewayService creates a new gateway application service
func NewGatewayService(gateway ports.ShopifyGateway, logger zerolog.Logger) *GatewayService {
	return &GatewayService{
		gateway: gateway,
		logger:  logger,
	}
}

// ListProducts retrieves all products from the connected store
func (s *GatewayService) ListProducts(ctx context.Context) ([]goshopify.Product, error) {
	raw, err := s.gateway.Request(ctx, http.MethodGet, "products.json", nil, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Products []goshopify.Product `json:"products"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return payload.Products, nil
}

// GetProduct retrieves a single product by ID
func (s *GatewayService) GetProduct(ctx context.Context, productID uint64) (*goshopify.Product, error) {
	raw, err := s.gateway.Request(ctx, http.MethodGet, fmt.Sprintf("products/%d.json", productID), nil, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Product goshopify.Product `json:"product"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}
	return &payload.Product, nil
}

// ListOrders retrieves orders from the connected store. A non-zero
// productID narrows the result to orders containing that product.
// The Admin API cannot filter orders by product server-side, so the
// filter is applied over line items after the fetch.
func (s *GatewayService) ListOrders(ctx context.Context, productID uint64) ([]goshopify.Order, error) {
	raw, err := s.gateway.Request(ctx, http.MethodGet, "orders.json?status=any", nil, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Orders []goshopify.Order `json:"orders"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	if productID == 0 {
		return payload.Orders, nil
	}

	filtered := make([]goshopify.Order, 0, len(payload.Orders))
	for _, order := range payload.Orders {
		for _, item := range order.LineItems {
			if item.ProductId == productID {
				filtered = append(filtered, order)
				break
			}
		}
	}
	return filtered, nil
}

// GetOrder retrieves a single order by ID
func (s *GatewayService) GetOrder(ctx context.Context, orderID uint64) (*goshopify.Order, error) {
	raw, err := s.gateway.Request(ctx, http.MethodGet, fmt.Sprintf("orders/%d.json", orderID), nil, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Order goshopify.Order `json:"order"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode order: %w", err)
	}
	return &payload.Order, nil
}

// ConnectionStatus verifies upstream reachability with the configured
// credentials and returns shop metadata. An upstream rejection is
// reported as a disconnected status, not an error; a configuration
// error still fails the call.
func (s *GatewayService) ConnectionStatus(ctx context.Context) (*domain.ConnectionStatus, error) {
	raw, err := s.gateway.Request(ctx, http.MethodGet, "shop.json", nil, nil)
	if err != nil {
		var upstream *shopify.UpstreamError
		if errors.As(err, &upstream) {
			s.logger.Warn().Err(err).Msg("Shopify connection check failed")
			return &domain.ConnectionStatus{Connected: false, Error: upstream.Message}, nil
		}
		return nil, err
	}

	var payload struct {
		Shop goshopify.Shop `json:"shop"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode shop: %w", err)
	}

	return &domain.ConnectionStatus{
		Connected: true,
		ShopName:  payload.Shop.Name,
		Domain:    payload.Shop.Domain,
		Email:     payload.Shop.Email,
	}, nil
}
