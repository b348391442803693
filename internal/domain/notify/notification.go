package notify

import (
	"strings"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/shared"
)

// Notification is an in-app message addressed to a vendor
type Notification struct {
	shared.VendorEntity
	Title string `gorm:"type:varchar(200);not null" json:"title"`
	Body  string `gorm:"type:text" json:"body"`
	Read  bool   `gorm:"not null;default:false" json:"read"`
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NewNotification creates a notification for the given vendor
func NewNotification(vendorID uuid.UUID, title, body string) (*Notification, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title cannot be empty")
	}

	return &Notification{
		VendorEntity: shared.NewVendorEntity(vendorID),
		Title:        title,
		Body:         body,
	}, nil
}

// MarkRead flags the notification as seen
func (n *Notification) MarkRead() {
	n.Read = true
	n.Touch()
}
