package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/crm"
	"github.com/niorc/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func newMockCustomerRepository(t *testing.T) (*GormCustomerRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormCustomerRepository(gormDB), mock, mockDB
}

func TestGormCustomerRepository_FindByID(t *testing.T) {
	t.Run("scopes lookup to the vendor", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		customerID := uuid.New()
		vendorID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "vendor_id", "name", "phone", "visit_count", "points_balance"}).
			AddRow(customerID, vendorID, "Ravi", "9876543210", 3, 40)

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE vendor_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(vendorID, customerID, 1).
			WillReturnRows(rows)

		customer, err := repo.FindByID(context.Background(), vendorID, customerID)

		require.NoError(t, err)
		require.NotNil(t, customer)
		assert.Equal(t, customerID, customer.ID)
		assert.Equal(t, vendorID, customer.VendorID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("another vendor's customer reads as missing", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		customerID := uuid.New()
		vendorID := uuid.New()

		// the row exists under a different vendor, so the scoped query
		// matches nothing
		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE vendor_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(vendorID, customerID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		customer, err := repo.FindByID(context.Background(), vendorID, customerID)

		assert.Nil(t, customer)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_FindByPhone(t *testing.T) {
	t.Run("finds customer by phone within vendor scope", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		vendorID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "vendor_id", "name", "phone"}).
			AddRow(uuid.New(), vendorID, "Ravi", "9876543210")

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE vendor_id = \$1 AND phone = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(vendorID, "9876543210", 1).
			WillReturnRows(rows)

		customer, err := repo.FindByPhone(context.Background(), vendorID, "9876543210")

		require.NoError(t, err)
		assert.Equal(t, "Ravi", customer.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty phone reads as missing without touching the DB", func(t *testing.T) {
		repo, _, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		_, err := repo.FindByPhone(context.Background(), uuid.New(), "")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormCustomerRepository_FindAll(t *testing.T) {
	t.Run("lists only the vendor's customers", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		vendorID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "vendor_id", "name"}).
			AddRow(uuid.New(), vendorID, "Ravi").
			AddRow(uuid.New(), vendorID, "Meena")

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE vendor_id = \$1 ORDER BY created_at DESC LIMIT .*`).
			WithArgs(vendorID, 20).
			WillReturnRows(rows)

		customers, err := repo.FindAll(context.Background(), vendorID, shared.DefaultFilter())

		require.NoError(t, err)
		assert.Len(t, customers, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ignores order columns outside the whitelist", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		vendorID := uuid.New()
		filter := shared.Filter{Page: 1, PageSize: 10, OrderBy: "phone; DROP TABLE customers", OrderDir: "asc"}

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE vendor_id = \$1 ORDER BY created_at ASC LIMIT .*`).
			WithArgs(vendorID, 10).
			WillReturnRows(sqlmock.NewRows([]string{"id", "vendor_id", "name"}))

		_, err := repo.FindAll(context.Background(), vendorID, filter)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("search matches name, phone and email", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		vendorID := uuid.New()
		filter := shared.DefaultFilter()
		filter.Search = "ravi"

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE vendor_id = \$1 AND \(name ILIKE \$2 OR phone ILIKE \$3 OR email ILIKE \$4\) ORDER BY created_at DESC LIMIT .*`).
			WithArgs(vendorID, "%ravi%", "%ravi%", "%ravi%", 20).
			WillReturnRows(sqlmock.NewRows([]string{"id", "vendor_id", "name"}))

		_, err := repo.FindAll(context.Background(), vendorID, filter)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_Create(t *testing.T) {
	t.Run("stamps the vendor onto the row", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		vendorID := uuid.New()
		customer, err := crm.NewCustomer(uuid.Nil, "Ravi", "9876543210")
		require.NoError(t, err)

		// zero-valued default columns come back via RETURNING
		mock.ExpectQuery(`INSERT INTO "customers"`).
			WillReturnRows(sqlmock.NewRows([]string{"visit_count", "points_balance"}).AddRow(0, 0))

		err = repo.Create(context.Background(), vendorID, customer)

		require.NoError(t, err)
		assert.Equal(t, vendorID, customer.VendorID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("refuses a row already stamped for another vendor", func(t *testing.T) {
		repo, _, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		other := uuid.New()
		customer, err := crm.NewCustomer(other, "Ravi", "9876543210")
		require.NoError(t, err)

		err = repo.Create(context.Background(), uuid.New(), customer)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormCustomerRepository_Save(t *testing.T) {
	t.Run("updates inside the vendor scope", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		vendorID := uuid.New()
		customer, err := crm.NewCustomer(vendorID, "Ravi", "9876543210")
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "customers" SET .* WHERE vendor_id = \$\d+ AND id = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), vendorID, customer)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("vanished row reads as missing", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		vendorID := uuid.New()
		customer, err := crm.NewCustomer(vendorID, "Ravi", "9876543210")
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "customers" SET .* WHERE vendor_id = \$\d+ AND id = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Save(context.Background(), vendorID, customer)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("entity owned by another vendor reads as missing", func(t *testing.T) {
		repo, _, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		customer, err := crm.NewCustomer(uuid.New(), "Ravi", "9876543210")
		require.NoError(t, err)

		err = repo.Save(context.Background(), uuid.New(), customer)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormCustomerRepository_Delete(t *testing.T) {
	t.Run("deletes inside the vendor scope", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		vendorID := uuid.New()
		customerID := uuid.New()

		mock.ExpectExec(`DELETE FROM "customers" WHERE vendor_id = \$1 AND id = \$2`).
			WithArgs(vendorID, customerID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), vendorID, customerID)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("another vendor's row reads as missing", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		vendorID := uuid.New()
		customerID := uuid.New()

		mock.ExpectExec(`DELETE FROM "customers" WHERE vendor_id = \$1 AND id = \$2`).
			WithArgs(vendorID, customerID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), vendorID, customerID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormCustomerRepository_ExistsByPhone(t *testing.T) {
	t.Run("reports existence within vendor scope", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		vendorID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "customers" WHERE vendor_id = \$1 AND phone = \$2`).
			WithArgs(vendorID, "9876543210").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByPhone(context.Background(), vendorID, "9876543210")

		require.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty phone never exists", func(t *testing.T) {
		repo, _, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		exists, err := repo.ExistsByPhone(context.Background(), uuid.New(), "")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
