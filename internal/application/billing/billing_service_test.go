package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/billing"
	"github.com/niorc/backend/internal/domain/catalog"
	"github.com/niorc/backend/internal/domain/crm"
	"github.com/niorc/backend/internal/domain/inventory"
	"github.com/niorc/backend/internal/domain/loyalty"
	"github.com/niorc/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// passthroughTx runs the function without a real transaction
type passthroughTx struct{}

func (passthroughTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockBillRepository is a mock implementation of BillRepository
type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) FindByID(ctx context.Context, vendorID, id uuid.UUID) (*billing.Bill, error) {
	args := m.Called(ctx, vendorID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindAll(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]billing.Bill, error) {
	args := m.Called(ctx, vendorID, filter)
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindBetween(ctx context.Context, vendorID uuid.UUID, from, to time.Time) ([]billing.Bill, error) {
	args := m.Called(ctx, vendorID, from, to)
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepository) Count(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, vendorID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBillRepository) Create(ctx context.Context, vendorID uuid.UUID, bill *billing.Bill) error {
	args := m.Called(ctx, vendorID, bill)
	return args.Error(0)
}

func (m *MockBillRepository) Save(ctx context.Context, vendorID uuid.UUID, bill *billing.Bill) error {
	args := m.Called(ctx, vendorID, bill)
	return args.Error(0)
}

func (m *MockBillRepository) Delete(ctx context.Context, vendorID, id uuid.UUID) error {
	args := m.Called(ctx, vendorID, id)
	return args.Error(0)
}

// MockMenuItemRepository is a mock implementation of MenuItemRepository
type MockMenuItemRepository struct {
	mock.Mock
}

func (m *MockMenuItemRepository) FindByID(ctx context.Context, vendorID, id uuid.UUID) (*catalog.MenuItem, error) {
	args := m.Called(ctx, vendorID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) FindByIDs(ctx context.Context, vendorID uuid.UUID, ids []uuid.UUID) ([]catalog.MenuItem, error) {
	args := m.Called(ctx, vendorID, ids)
	return args.Get(0).([]catalog.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) FindAll(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]catalog.MenuItem, error) {
	args := m.Called(ctx, vendorID, filter)
	return args.Get(0).([]catalog.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) Count(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, vendorID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMenuItemRepository) Create(ctx context.Context, vendorID uuid.UUID, item *catalog.MenuItem) error {
	args := m.Called(ctx, vendorID, item)
	return args.Error(0)
}

func (m *MockMenuItemRepository) Save(ctx context.Context, vendorID uuid.UUID, item *catalog.MenuItem) error {
	args := m.Called(ctx, vendorID, item)
	return args.Error(0)
}

func (m *MockMenuItemRepository) Delete(ctx context.Context, vendorID, id uuid.UUID) error {
	args := m.Called(ctx, vendorID, id)
	return args.Error(0)
}

// MockItemRepository is a mock implementation of inventory.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, vendorID, id uuid.UUID) (*inventory.Item, error) {
	args := m.Called(ctx, vendorID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindByIDForUpdate(ctx context.Context, vendorID, id uuid.UUID) (*inventory.Item, error) {
	args := m.Called(ctx, vendorID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]inventory.Item, error) {
	args := m.Called(ctx, vendorID, filter)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindLowStock(ctx context.Context, vendorID uuid.UUID) ([]inventory.Item, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) Count(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, vendorID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) Create(ctx context.Context, vendorID uuid.UUID, item *inventory.Item) error {
	args := m.Called(ctx, vendorID, item)
	return args.Error(0)
}

func (m *MockItemRepository) Save(ctx context.Context, vendorID uuid.UUID, item *inventory.Item) error {
	args := m.Called(ctx, vendorID, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, vendorID, id uuid.UUID) error {
	args := m.Called(ctx, vendorID, id)
	return args.Error(0)
}

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, vendorID, id uuid.UUID) (*crm.Customer, error) {
	args := m.Called(ctx, vendorID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, vendorID uuid.UUID, phone string) (*crm.Customer, error) {
	args := m.Called(ctx, vendorID, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]crm.Customer, error) {
	args := m.Called(ctx, vendorID, filter)
	return args.Get(0).([]crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, vendorID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) CountCreatedBetween(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, vendorID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByPhone(ctx context.Context, vendorID uuid.UUID, phone string) (bool, error) {
	args := m.Called(ctx, vendorID, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, vendorID uuid.UUID, customer *crm.Customer) error {
	args := m.Called(ctx, vendorID, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Save(ctx context.Context, vendorID uuid.UUID, customer *crm.Customer) error {
	args := m.Called(ctx, vendorID, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, vendorID, id uuid.UUID) error {
	args := m.Called(ctx, vendorID, id)
	return args.Error(0)
}

// MockPointRepository is a mock implementation of PointRepository
type MockPointRepository struct {
	mock.Mock
}

func (m *MockPointRepository) FindByCustomer(ctx context.Context, vendorID, customerID uuid.UUID, filter shared.Filter) ([]loyalty.PointEntry, error) {
	args := m.Called(ctx, vendorID, customerID, filter)
	return args.Get(0).([]loyalty.PointEntry), args.Error(1)
}

func (m *MockPointRepository) Append(ctx context.Context, vendorID uuid.UUID, entry *loyalty.PointEntry) error {
	args := m.Called(ctx, vendorID, entry)
	return args.Error(0)
}

type billingMocks struct {
	bills     *MockBillRepository
	menu      *MockMenuItemRepository
	items     *MockItemRepository
	customers *MockCustomerRepository
	points    *MockPointRepository
}

func newBillingService() (*BillingService, billingMocks) {
	m := billingMocks{
		bills:     new(MockBillRepository),
		menu:      new(MockMenuItemRepository),
		items:     new(MockItemRepository),
		customers: new(MockCustomerRepository),
		points:    new(MockPointRepository),
	}
	svc := NewBillingService(m.bills, m.menu, m.items, m.customers, m.points, nil, passthroughTx{}, zap.NewNop())
	return svc, m
}

func menuItem(t *testing.T, vendorID uuid.UUID, name string, price string) *catalog.MenuItem {
	t.Helper()
	item, err := catalog.NewMenuItem(vendorID, name, "", decimal.RequireFromString(price))
	require.NoError(t, err)
	return item
}

func TestBillingService_Create(t *testing.T) {
	ctx := context.Background()
	vendorID := uuid.New()

	t.Run("computes amounts from stored prices", func(t *testing.T) {
		svc, m := newBillingService()
		tea := menuItem(t, vendorID, "Masala Chai", "15")
		samosa := menuItem(t, vendorID, "Samosa", "20")

		m.menu.On("FindByIDs", ctx, vendorID, mock.Anything).
			Return([]catalog.MenuItem{*tea, *samosa}, nil)
		m.bills.On("Create", ctx, vendorID, mock.Anything).Return(nil)

		bill, err := svc.Create(ctx, vendorID, CreateBillInput{
			Items: []BillLineInput{
				{MenuItemID: tea.ID, Quantity: 4},
				{MenuItemID: samosa.ID, Quantity: 2},
			},
			Discount:     decimal.NewFromInt(10),
			ExtraCharges: decimal.NewFromInt(5),
		})
		require.NoError(t, err)

		// 4*15 + 2*20 = 100; 100 - 10 + 5 = 95
		assert.True(t, bill.TotalAmount.Equal(decimal.NewFromInt(100)))
		assert.True(t, bill.FinalAmount.Equal(decimal.NewFromInt(95)))
		assert.Equal(t, billing.BillStatusUnpaid, bill.Status)
		assert.Equal(t, vendorID, bill.VendorID)
	})

	t.Run("missing menu item fails the bill", func(t *testing.T) {
		svc, m := newBillingService()
		tea := menuItem(t, vendorID, "Masala Chai", "15")

		// Second reference resolves to nothing, as if it belonged to
		// another vendor.
		m.menu.On("FindByIDs", ctx, vendorID, mock.Anything).
			Return([]catalog.MenuItem{*tea}, nil)

		_, err := svc.Create(ctx, vendorID, CreateBillInput{
			Items: []BillLineInput{
				{MenuItemID: tea.ID, Quantity: 1},
				{MenuItemID: uuid.New(), Quantity: 1},
			},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		m.bills.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("decrements linked stock", func(t *testing.T) {
		svc, m := newBillingService()
		stock, err := inventory.NewItem(vendorID, "Tea leaves", "unit", decimal.NewFromInt(10))
		require.NoError(t, err)
		tea := menuItem(t, vendorID, "Masala Chai", "15")
		tea.LinkInventory(stock.ID)

		m.menu.On("FindByIDs", ctx, vendorID, mock.Anything).
			Return([]catalog.MenuItem{*tea}, nil)
		m.items.On("FindByIDForUpdate", ctx, vendorID, stock.ID).Return(stock, nil)
		m.items.On("Save", ctx, vendorID, stock).Return(nil)
		m.bills.On("Create", ctx, vendorID, mock.Anything).Return(nil)

		_, err = svc.Create(ctx, vendorID, CreateBillInput{
			Items: []BillLineInput{{MenuItemID: tea.ID, Quantity: 4}},
		})
		require.NoError(t, err)
		assert.True(t, stock.Stock.Equal(decimal.NewFromInt(6)))
	})

	t.Run("insufficient stock fails before the bill is written", func(t *testing.T) {
		svc, m := newBillingService()
		stock, err := inventory.NewItem(vendorID, "Tea leaves", "unit", decimal.NewFromInt(2))
		require.NoError(t, err)
		tea := menuItem(t, vendorID, "Masala Chai", "15")
		tea.LinkInventory(stock.ID)

		m.menu.On("FindByIDs", ctx, vendorID, mock.Anything).
			Return([]catalog.MenuItem{*tea}, nil)
		m.items.On("FindByIDForUpdate", ctx, vendorID, stock.ID).Return(stock, nil)

		_, err = svc.Create(ctx, vendorID, CreateBillInput{
			Items: []BillLineInput{{MenuItemID: tea.ID, Quantity: 5}},
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		m.bills.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unavailable menu item is rejected", func(t *testing.T) {
		svc, m := newBillingService()
		tea := menuItem(t, vendorID, "Masala Chai", "15")
		off := false
		require.NoError(t, tea.Update(nil, nil, nil, &off))

		m.menu.On("FindByIDs", ctx, vendorID, mock.Anything).
			Return([]catalog.MenuItem{*tea}, nil)

		_, err := svc.Create(ctx, vendorID, CreateBillInput{
			Items: []BillLineInput{{MenuItemID: tea.ID, Quantity: 1}},
		})
		assert.Equal(t, "ITEM_UNAVAILABLE", domainCode(t, err))
	})

	t.Run("records the customer visit", func(t *testing.T) {
		svc, m := newBillingService()
		tea := menuItem(t, vendorID, "Masala Chai", "15")
		customer, err := crm.NewCustomer(vendorID, "Ravi", "9876543210")
		require.NoError(t, err)

		m.menu.On("FindByIDs", ctx, vendorID, mock.Anything).
			Return([]catalog.MenuItem{*tea}, nil)
		m.customers.On("FindByID", ctx, vendorID, customer.ID).Return(customer, nil)
		m.customers.On("Save", ctx, vendorID, customer).Return(nil)
		m.bills.On("Create", ctx, vendorID, mock.Anything).Return(nil)

		bill, err := svc.Create(ctx, vendorID, CreateBillInput{
			Items:      []BillLineInput{{MenuItemID: tea.ID, Quantity: 1}},
			CustomerID: &customer.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, customer.VisitCount)
		require.NotNil(t, bill.CustomerID)
		assert.Equal(t, customer.ID, *bill.CustomerID)
	})
}

func TestBillingService_MarkPaid(t *testing.T) {
	ctx := context.Background()
	vendorID := uuid.New()

	newBill := func(t *testing.T, amount string, customerID *uuid.UUID) *billing.Bill {
		t.Helper()
		bill, err := billing.NewBill(vendorID, []billing.LineItem{
			{ItemID: uuid.New(), Name: "Masala Chai", Quantity: 1, Price: decimal.RequireFromString(amount)},
		}, decimal.Zero, decimal.Zero, "cash")
		require.NoError(t, err)
		if customerID != nil {
			bill.AttachCustomer(*customerID)
		}
		return bill
	}

	t.Run("accrues loyalty points for the attached customer", func(t *testing.T) {
		svc, m := newBillingService()
		customer, err := crm.NewCustomer(vendorID, "Ravi", "9876543210")
		require.NoError(t, err)
		bill := newBill(t, "125", &customer.ID)

		m.bills.On("FindByID", ctx, vendorID, bill.ID).Return(bill, nil)
		m.bills.On("Save", ctx, vendorID, bill).Return(nil)
		m.customers.On("FindByID", ctx, vendorID, customer.ID).Return(customer, nil)
		m.customers.On("Save", ctx, vendorID, customer).Return(nil)
		m.points.On("Append", ctx, vendorID, mock.MatchedBy(func(entry *loyalty.PointEntry) bool {
			return entry.CustomerID == customer.ID && entry.Delta == 12
		})).Return(nil)

		paid, err := svc.MarkPaid(ctx, vendorID, bill.ID)
		require.NoError(t, err)
		assert.Equal(t, billing.BillStatusPaid, paid.Status)
		assert.Equal(t, 12, customer.PointsBalance)
		m.points.AssertExpectations(t)
	})

	t.Run("no accrual without a customer", func(t *testing.T) {
		svc, m := newBillingService()
		bill := newBill(t, "125", nil)

		m.bills.On("FindByID", ctx, vendorID, bill.ID).Return(bill, nil)
		m.bills.On("Save", ctx, vendorID, bill).Return(nil)

		_, err := svc.MarkPaid(ctx, vendorID, bill.ID)
		require.NoError(t, err)
		m.points.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("amount under the accrual unit earns nothing", func(t *testing.T) {
		svc, m := newBillingService()
		customer, err := crm.NewCustomer(vendorID, "Ravi", "9876543210")
		require.NoError(t, err)
		bill := newBill(t, "9", &customer.ID)

		m.bills.On("FindByID", ctx, vendorID, bill.ID).Return(bill, nil)
		m.bills.On("Save", ctx, vendorID, bill).Return(nil)

		_, err = svc.MarkPaid(ctx, vendorID, bill.ID)
		require.NoError(t, err)
		m.points.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already paid is rejected", func(t *testing.T) {
		svc, m := newBillingService()
		bill := newBill(t, "50", nil)
		require.NoError(t, bill.MarkPaid())

		m.bills.On("FindByID", ctx, vendorID, bill.ID).Return(bill, nil)

		_, err := svc.MarkPaid(ctx, vendorID, bill.ID)
		assert.Equal(t, "INVALID_STATE", domainCode(t, err))
		m.bills.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBillingService_Cancel(t *testing.T) {
	ctx := context.Background()
	vendorID := uuid.New()

	t.Run("paid bill cannot be cancelled", func(t *testing.T) {
		svc, m := newBillingService()
		bill, err := billing.NewBill(vendorID, []billing.LineItem{
			{ItemID: uuid.New(), Name: "Masala Chai", Quantity: 1, Price: decimal.NewFromInt(15)},
		}, decimal.Zero, decimal.Zero, "cash")
		require.NoError(t, err)
		require.NoError(t, bill.MarkPaid())

		m.bills.On("FindByID", ctx, vendorID, bill.ID).Return(bill, nil)

		_, err = svc.Cancel(ctx, vendorID, bill.ID)
		assert.Equal(t, "INVALID_STATE", domainCode(t, err))
	})
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	return de.Code
}
