package ports

import (
	"context"
	"encoding/json"

	"merchops/internal/domain"
)

// ShopifyGateway is the raw transport to the Shopify Admin API. Every
// call either returns parsed JSON or a single normalized error
// describing the upstream failure; callers never see transport-level
// errors directly.
//
// GET responses are served cache-then-network; mutating methods always
// bypass the cache. The optional override replaces the process-wide
// credentials for a single call.
type ShopifyGateway interface {
	Request(ctx context.Context, method, endpoint string, body interface{}, override *domain.ShopifyCredentials) (json.RawMessage, error)
}
