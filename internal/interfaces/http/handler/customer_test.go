package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	crmapp "github.com/niorc/backend/internal/application/crm"
	"github.com/niorc/backend/internal/domain/crm"
	"github.com/niorc/backend/internal/domain/shared"
	"github.com/niorc/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCustomerRepository implements crm.CustomerRepository for testing
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

var _ crm.CustomerRepository = (*MockCustomerRepository)(nil)

// Test helpers

var testVendorID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

func setupCustomerTestRouter() (*gin.Engine, *MockCustomerRepository, *CustomerHandler) {
	gin.SetMode(gin.TestMode)

	mockRepo := new(MockCustomerRepository)
	service := crmapp.NewCustomerService(mockRepo, zap.NewNop())
	h := NewCustomerHandler(service)

	router := gin.New()
	// Stand-in for the authentication middleware
	router.Use(func(c *gin.Context) {
		c.Set(middleware.VendorIDKey, testVendorID.String())
		c.Next()
	})

	api := router.Group("")
	h.RegisterRoutes(api)
	return router, mockRepo, h
}

func createTestCustomer(t *testing.T, vendorID uuid.UUID, name, phone string) *crm.Customer {
	t.Helper()
	customer, err := crm.NewCustomer(vendorID, name, phone)
	require.NoError(t, err)
	customer.ID = uuid.New()
	return customer
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// Tests

func TestCustomerHandler_Create(t *testing.T) {
	t.Run("should create customer successfully", func(t *testing.T) {
		router, mockRepo, _ := setupCustomerTestRouter()

		mockRepo.On("ExistsByPhone", mock.Anything, testVendorID, "9876543210").
			Return(false, nil)
		mockRepo.On("Create", mock.Anything, testVendorID, mock.AnythingOfType("*crm.Customer")).
			Return(nil)

		payload, _ := json.Marshal(CreateCustomerRequest{
			Name:  "Ravi Kumar",
			Phone: "9876543210",
		})
		req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		body := decodeResponse(t, rec)
		assert.Equal(t, true, body["success"])
		mockRepo.AssertExpectations(t)
	})

	t.Run("should reject duplicate phone with 409", func(t *testing.T) {
		router, mockRepo, _ := setupCustomerTestRouter()

		mockRepo.On("ExistsByPhone", mock.Anything, testVendorID, "9876543210").
			Return(true, nil)

		payload, _ := json.Marshal(CreateCustomerRequest{
			Name:  "Ravi Kumar",
			Phone: "9876543210",
		})
		req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "ALREADY_EXISTS")
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should reject missing name with 400", func(t *testing.T) {
		router, _, _ := setupCustomerTestRouter()

		req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader([]byte(`{"phone":"9876543210"}`)))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCustomerHandler_Get(t *testing.T) {
	t.Run("should return customer", func(t *testing.T) {
		router, mockRepo, _ := setupCustomerTestRouter()

		customer := createTestCustomer(t, testVendorID, "Ravi Kumar", "9876543210")
		mockRepo.On("FindByID", mock.Anything, testVendorID, customer.ID).
			Return(customer, nil)

		req := httptest.NewRequest(http.MethodGet, "/customers/"+customer.ID.String(), nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Ravi Kumar")
	})

	t.Run("should return 404 for a customer outside the vendor scope", func(t *testing.T) {
		router, mockRepo, _ := setupCustomerTestRouter()

		id := uuid.New()
		mockRepo.On("FindByID", mock.Anything, testVendorID, id).
			Return(nil, shared.ErrNotFound)

		req := httptest.NewRequest(http.MethodGet, "/customers/"+id.String(), nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "NOT_FOUND")
	})

	t.Run("should return 400 for a malformed ID", func(t *testing.T) {
		router, _, _ := setupCustomerTestRouter()

		req := httptest.NewRequest(http.MethodGet, "/customers/not-a-uuid", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCustomerHandler_List(t *testing.T) {
	router, mockRepo, _ := setupCustomerTestRouter()

	customers := []crm.Customer{
		*createTestCustomer(t, testVendorID, "Ravi Kumar", "9876543210"),
		*createTestCustomer(t, testVendorID, "Meena Iyer", "9123456780"),
	}
	mockRepo.On("FindAll", mock.Anything, testVendorID, mock.AnythingOfType("shared.Filter")).
		Return(customers, nil)
	mockRepo.On("Count", mock.Anything, testVendorID, mock.AnythingOfType("shared.Filter")).
		Return(int64(2), nil)

	req := httptest.NewRequest(http.MethodGet, "/customers?page=1&page_size=10", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	meta, ok := body["meta"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), meta["total"])
}

func TestCustomerHandler_RecordVisit(t *testing.T) {
	router, mockRepo, _ := setupCustomerTestRouter()

	customer := createTestCustomer(t, testVendorID, "Ravi Kumar", "9876543210")
	mockRepo.On("FindByID", mock.Anything, testVendorID, customer.ID).
		Return(customer, nil)
	mockRepo.On("Save", mock.Anything, testVendorID, mock.AnythingOfType("*crm.Customer")).
		Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/customers/"+customer.ID.String()+"/visits", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, customer.VisitCount)
}

func TestCustomerHandler_MissingVendorIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	service := crmapp.NewCustomerService(new(MockCustomerRepository), zap.NewNop())
	h := NewCustomerHandler(service)

	router := gin.New()
	h.RegisterRoutes(router.Group(""))

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
