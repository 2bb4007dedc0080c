package ports

import (
	"context"

	"merchops/internal/domain"
)

// UserRepository defines the interface for user account persistence.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

// CampRepository defines the interface for camp persistence.
type CampRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Camp, error)
	List(ctx context.Context) ([]*domain.Camp, error)
	Create(ctx context.Context, camp *domain.Camp) error
}

// RegistrationRepository defines the interface for registration persistence.
type RegistrationRepository interface {
	Create(ctx context.Context, registration *domain.Registration) error
	ListByCamp(ctx context.Context, campID string) ([]*domain.Registration, error)
	GetByOrderID(ctx context.Context, orderID uint64) (*domain.Registration, error)
	UpdateStatusByOrderID(ctx context.Context, orderID uint64, status domain.RegistrationStatus) error
}

// WebhookEventRepository defines the interface for the webhook event log.
type WebhookEventRepository interface {
	Log(ctx context.Context, event *domain.WebhookEvent) error
}
