package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/notify"
	"github.com/niorc/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormNotificationRepository implements NotificationRepository using GORM
type GormNotificationRepository struct {
	scopedRepo[notify.Notification, *notify.Notification]
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{
		scopedRepo: newScopedRepo[notify.Notification](db,
			"created_at",
			[]string{"created_at"},
			[]string{"title"},
		),
	}
}

// FindByID finds a notification by ID within the vendor's scope
func (r *GormNotificationRepository) FindByID(ctx context.Context, vendorID, id uuid.UUID) (*notify.Notification, error) {
	return r.findByID(ctx, vendorID, id)
}

// FindAll lists the vendor's notifications matching the filter
func (r *GormNotificationRepository) FindAll(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]notify.Notification, error) {
	return r.findAll(ctx, vendorID, filter)
}

// Count counts the vendor's notifications matching the filter
func (r *GormNotificationRepository) Count(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.count(ctx, vendorID, filter)
}

// CountUnread counts the vendor's unread notifications
func (r *GormNotificationRepository) CountUnread(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	var count int64
	if err := r.scoped(ctx, vendorID).
		Where("read = ?", false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create stamps the vendor onto the notification and persists it
func (r *GormNotificationRepository) Create(ctx context.Context, vendorID uuid.UUID, notification *notify.Notification) error {
	return r.create(ctx, vendorID, notification)
}

// Save persists changes to an existing notification after verifying scope
func (r *GormNotificationRepository) Save(ctx context.Context, vendorID uuid.UUID, notification *notify.Notification) error {
	return r.save(ctx, vendorID, notification)
}

// Delete removes a notification within the vendor's scope
func (r *GormNotificationRepository) Delete(ctx context.Context, vendorID, id uuid.UUID) error {
	return r.delete(ctx, vendorID, id)
}

var _ notify.NotificationRepository = (*GormNotificationRepository)(nil)
