// Package crm implements customer management use cases
package crm

import (
	"context"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/crm"
	"github.com/niorc/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CreateCustomerInput carries a customer creation request
type CreateCustomerInput struct {
	Name  string
	Phone string
	Email string
	Notes string
}

// UpdateCustomerInput carries a customer patch; nil fields stay unchanged
type UpdateCustomerInput struct {
	Name  *string
	Phone *string
	Email *string
	Notes *string
}

// CustomerService handles customer operations for one vendor at a time
type CustomerService struct {
	customerRepo crm.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo crm.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create creates a customer inside the vendor's scope. The phone number,
// when present, must be unique within that scope only.
func (s *CustomerService) Create(ctx context.Context, vendorID uuid.UUID, input CreateCustomerInput) (*crm.Customer, error) {
	if input.Phone != "" {
		exists, err := s.customerRepo.ExistsByPhone(ctx, vendorID, input.Phone)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A customer with this phone already exists")
		}
	}

	customer, err := crm.NewCustomer(vendorID, input.Name, input.Phone)
	if err != nil {
		return nil, err
	}
	if input.Email != "" || input.Notes != "" {
		if err := customer.Update(nil, nil, &input.Email, &input.Notes); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Create(ctx, vendorID, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Get returns one of the vendor's customers
func (s *CustomerService) Get(ctx context.Context, vendorID, id uuid.UUID) (*crm.Customer, error) {
	return s.customerRepo.FindByID(ctx, vendorID, id)
}

// List lists the vendor's customers
func (s *CustomerService) List(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (shared.Paginated[crm.Customer], error) {
	customers, err := s.customerRepo.FindAll(ctx, vendorID, filter)
	if err != nil {
		return shared.Paginated[crm.Customer]{}, err
	}
	total, err := s.customerRepo.Count(ctx, vendorID, filter)
	if err != nil {
		return shared.Paginated[crm.Customer]{}, err
	}
	return shared.NewPaginated(customers, total, filter.Page, filter.PageSize), nil
}

// Update patches one of the vendor's customers
func (s *CustomerService) Update(ctx context.Context, vendorID, id uuid.UUID, input UpdateCustomerInput) (*crm.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, vendorID, id)
	if err != nil {
		return nil, err
	}

	if input.Phone != nil && *input.Phone != "" && *input.Phone != customer.Phone {
		exists, err := s.customerRepo.ExistsByPhone(ctx, vendorID, *input.Phone)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A customer with this phone already exists")
		}
	}

	if err := customer.Update(input.Name, input.Phone, input.Email, input.Notes); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, vendorID, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete removes one of the vendor's customers
func (s *CustomerService) Delete(ctx context.Context, vendorID, id uuid.UUID) error {
	return s.customerRepo.Delete(ctx, vendorID, id)
}

// RecordVisit bumps the customer's visit counter
func (s *CustomerService) RecordVisit(ctx context.Context, vendorID, id uuid.UUID) (*crm.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, vendorID, id)
	if err != nil {
		return nil, err
	}
	customer.RecordVisit()
	if err := s.customerRepo.Save(ctx, vendorID, customer); err != nil {
		return nil, err
	}
	return customer, nil
}
