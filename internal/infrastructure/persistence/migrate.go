package persistence

import (
	"fmt"

	"github.com/niorc/backend/internal/domain/billing"
	"github.com/niorc/backend/internal/domain/catalog"
	"github.com/niorc/backend/internal/domain/crm"
	"github.com/niorc/backend/internal/domain/identity"
	"github.com/niorc/backend/internal/domain/inventory"
	"github.com/niorc/backend/internal/domain/loyalty"
	"github.com/niorc/backend/internal/domain/notify"
	"github.com/niorc/backend/internal/domain/ops"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for all models
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&identity.Profile{},
		&crm.Customer{},
		&catalog.MenuItem{},
		&inventory.Item{},
		&billing.Bill{},
		&loyalty.Reward{},
		&loyalty.PointEntry{},
		&notify.Notification{},
		&ops.Table{},
		&ops.Staff{},
		&ops.Attendance{},
		&ops.Expense{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// OwnedTables lists every table that carries a vendor_id column. The
// vendorscope callbacks guard exactly these; profiles and the
// parent-scoped child tables (loyalty_points, staff_attendance) are
// deliberately absent.
func OwnedTables() []string {
	return []string{
		crm.Customer{}.TableName(),
		catalog.MenuItem{}.TableName(),
		inventory.Item{}.TableName(),
		billing.Bill{}.TableName(),
		loyalty.Reward{}.TableName(),
		notify.Notification{}.TableName(),
		ops.Table{}.TableName(),
		ops.Staff{}.TableName(),
		ops.Expense{}.TableName(),
	}
}
