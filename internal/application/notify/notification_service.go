// Package notify implements in-app notification use cases
package notify

import (
	"context"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/notify"
	"github.com/niorc/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// NotificationService handles a vendor's in-app notifications and
// optional outbound messages
type NotificationService struct {
	notificationRepo notify.NotificationRepository
	messenger        notify.Messenger
	logger           *zap.Logger
}

// NewNotificationService creates a new NotificationService. messenger may
// be nil when no outbound channel is configured.
func NewNotificationService(notificationRepo notify.NotificationRepository, messenger notify.Messenger, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		messenger:        messenger,
		logger:           logger,
	}
}

// List lists the vendor's notifications
func (s *NotificationService) List(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (shared.Paginated[notify.Notification], error) {
	notifications, err := s.notificationRepo.FindAll(ctx, vendorID, filter)
	if err != nil {
		return shared.Paginated[notify.Notification]{}, err
	}
	total, err := s.notificationRepo.Count(ctx, vendorID, filter)
	if err != nil {
		return shared.Paginated[notify.Notification]{}, err
	}
	return shared.NewPaginated(notifications, total, filter.Page, filter.PageSize), nil
}

// UnreadCount returns how many of the vendor's notifications are unread
func (s *NotificationService) UnreadCount(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, vendorID)
}

// MarkRead flags one notification as seen
func (s *NotificationService) MarkRead(ctx context.Context, vendorID, id uuid.UUID) (*notify.Notification, error) {
	notification, err := s.notificationRepo.FindByID(ctx, vendorID, id)
	if err != nil {
		return nil, err
	}
	if notification.Read {
		return notification, nil
	}
	notification.MarkRead()
	if err := s.notificationRepo.Save(ctx, vendorID, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// Delete removes one of the vendor's notifications
func (s *NotificationService) Delete(ctx context.Context, vendorID, id uuid.UUID) error {
	return s.notificationRepo.Delete(ctx, vendorID, id)
}

// SendMessage delivers a message to a phone number through the configured
// outbound channel
func (s *NotificationService) SendMessage(ctx context.Context, vendorID uuid.UUID, to, message string) error {
	if s.messenger == nil {
		return shared.NewDomainError("MESSAGING_UNAVAILABLE", "Outbound messaging is not configured")
	}
	if err := s.messenger.Send(ctx, to, message); err != nil {
		s.logger.Error("Outbound message delivery failed",
			zap.String("vendor_id", vendorID.String()),
			zap.Error(err))
		return shared.NewDomainError("MESSAGING_FAILED", "Message delivery failed")
	}
	return nil
}
