package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingCredentials indicates that one or more of the required
// Shopify credential values is absent. It is a configuration error,
// raised before any network call is attempted.
var ErrMissingCredentials = errors.New("shopify credentials incomplete")

// ShopifyCredentials holds the secrets required to call the Shopify
// Admin API. They are read from process configuration once at startup
// and are immutable for the process lifetime.
type ShopifyCredentials struct {
	APIKey    string
	APISecret string
	StoreURL  string
}

// Validate fails closed if any required value is missing, naming the
// absent environment variables. Callers never see partial credential
// objects past this check.
func (c ShopifyCredentials) Validate() error {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, "SHOPIFY_API_KEY")
	}
	if c.APISecret == "" {
		missing = append(missing, "SHOPIFY_API_SECRET")
	}
	if c.StoreURL == "" {
		missing = append(missing, "SHOPIFY_STORE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}
