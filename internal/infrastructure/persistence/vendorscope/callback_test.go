package vendorscope

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unownedModel has no vendor_id column and must never be filtered
type unownedModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"size:100"`
}

func (unownedModel) TableName() string {
	return "unowned_models"
}

func TestVendorCallback_RegisterCallbacks(t *testing.T) {
	db, _, mockDB := setupMockDB(t)
	defer mockDB.Close()

	// Should not panic
	RegisterCallbacks(db, "scoped_models")
}

func TestRemoveCallbacks(t *testing.T) {
	db, _, mockDB := setupMockDB(t)
	defer mockDB.Close()

	RegisterCallbacks(db, "scoped_models")

	// Should not panic when removing callbacks
	RemoveCallbacks(db)
}

func TestVendorCallback_FiltersOwnedTable(t *testing.T) {
	t.Run("injects vendor filter from context", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		RegisterCallbacks(db, "scoped_models")

		vendorID := uuid.New()
		ctx := vendorContext(vendorID.String())

		mock.ExpectQuery(`SELECT \* FROM "scoped_models" WHERE "scoped_models"\."vendor_id" = \$1`).
			WithArgs(vendorID.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "vendor_id", "name"}))

		var results []scopedModel
		err := db.WithContext(ctx).Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("does not duplicate an explicit vendor condition", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		RegisterCallbacks(db, "scoped_models")

		vendorID := uuid.New()
		ctx := vendorContext(vendorID.String())

		mock.ExpectQuery(`SELECT \* FROM "scoped_models" WHERE vendor_id = \$1`).
			WithArgs(vendorID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "vendor_id", "name"}))

		var results []scopedModel
		err := db.WithContext(ctx).Scopes(Scope(vendorID)).Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVendorCallback_SkipsUnownedTable(t *testing.T) {
	t.Run("leaves unregistered tables unfiltered", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		RegisterCallbacks(db, "scoped_models")

		vendorID := uuid.New()
		ctx := vendorContext(vendorID.String())

		mock.ExpectQuery(`SELECT \* FROM "unowned_models"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		var results []unownedModel
		err := db.WithContext(ctx).Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVendorCallback_NoVendorInContext(t *testing.T) {
	t.Run("refuses an owned query without a vendor", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		RegisterCallbacks(db, "scoped_models")

		var results []scopedModel
		err := db.WithContext(context.Background()).Find(&results).Error
		assert.ErrorIs(t, err, ErrVendorIDRequired)

		// The statement must never reach the database
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("allows an explicit vendor condition without context", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		RegisterCallbacks(db, "scoped_models")

		vendorID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "scoped_models" WHERE vendor_id = \$1`).
			WithArgs(vendorID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "vendor_id", "name"}))

		var results []scopedModel
		err := db.WithContext(context.Background()).Scopes(Scope(vendorID)).Find(&results).Error
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVendorCallback_InvalidUUID(t *testing.T) {
	t.Run("errors on malformed vendor in context", func(t *testing.T) {
		db, _, mockDB := setupMockDB(t)
		defer mockDB.Close()

		RegisterCallbacks(db, "scoped_models")

		ctx := vendorContext("not-a-valid-uuid")

		var results []scopedModel
		err := db.WithContext(ctx).Find(&results).Error

		assert.ErrorIs(t, err, ErrInvalidVendorID)
	})
}
