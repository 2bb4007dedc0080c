package domain

import "encoding/json"

// WebhookEvent represents a verified inbound push from Shopify.
type WebhookEvent struct {
	Topic      string          `json:"topic"`
	Shop       string          `json:"shop"`
	DeliveryID string          `json:"delivery_id"`
	Payload    json.RawMessage `json:"payload"`
	Verified   bool            `json:"verified"`
}

// LinkResult is the per-order outcome of a batch linking request.
// Partial failure is expected and modeled explicitly: a failed order
// carries an error message and never aborts the rest of the batch.
type LinkResult struct {
	OrderID        string `json:"orderId"`
	Success        bool   `json:"success"`
	RegistrationID string `json:"registrationId,omitempty"`
	CustomerName   string `json:"customerName,omitempty"`
	Email          string `json:"email,omitempty"`
	Error          string `json:"error,omitempty"`
}

// ConnectionStatus reports whether the upstream store is reachable
// with the configured credentials.
type ConnectionStatus struct {
	Connected bool   `json:"connected"`
	ShopName  string `json:"shop_name,omitempty"`
	Domain    string `json:"domain,omitempty"`
	Email     string `json:"email,omitempty"`
	Error     string `json:"error,omitempty"`
}
