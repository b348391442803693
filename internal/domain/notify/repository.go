package notify

import (
	"context"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/shared"
)

// NotificationRepository defines the interface for notification persistence
type NotificationRepository interface {
	FindByID(ctx context.Context, vendorID, id uuid.UUID) (*Notification, error)
	FindAll(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]Notification, error)
	Count(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (int64, error)
	CountUnread(ctx context.Context, vendorID uuid.UUID) (int64, error)
	Create(ctx context.Context, vendorID uuid.UUID, notification *Notification) error
	Save(ctx context.Context, vendorID uuid.UUID, notification *Notification) error
	Delete(ctx context.Context, vendorID, id uuid.UUID) error
}

// Messenger delivers a message through an external channel (SMS/WhatsApp).
// Delivery is best-effort; the core does not retry.
type Messenger interface {
	Send(ctx context.Context, to, message string) error
}
