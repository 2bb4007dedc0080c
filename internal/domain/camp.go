package domain

import "time"

// Camp is an internal event a registration belongs to.
type Camp struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegistrationStatus tracks the lifecycle of a linked registration.
type RegistrationStatus string

const (
	RegistrationStatusPending   RegistrationStatus = "pending"
	RegistrationStatusPaid      RegistrationStatus = "paid"
	RegistrationStatusFulfilled RegistrationStatus = "fulfilled"
	RegistrationStatusCancelled RegistrationStatus = "cancelled"
)

// RegistrationItem is a purchased line item carried onto a registration.
type RegistrationItem struct {
	Title        string `json:"title"`
	VariantTitle string `json:"variant_title,omitempty"`
	SKU          string `json:"sku,omitempty"`
	Quantity     int    `json:"quantity"`
}

// Registration associates an external Shopify order with a camp.
type Registration struct {
	ID           string             `json:"id"`
	CampID       string             `json:"camp_id"`
	OrderID      uint64             `json:"order_id"`
	OrderName    string             `json:"order_name,omitempty"`
	CustomerName string             `json:"customer_name"`
	Email        string             `json:"email"`
	Items        []RegistrationItem `json:"items"`
	Status       RegistrationStatus `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
