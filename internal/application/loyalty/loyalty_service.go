// Package loyalty implements reward and point ledger use cases
package loyalty

import (
	"context"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/crm"
	"github.com/niorc/backend/internal/domain/loyalty"
	"github.com/niorc/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CreateRewardInput carries a reward creation request
type CreateRewardInput struct {
	Name       string
	PointsCost int
}

// UpdateRewardInput patches a reward. Nil fields are left unchanged.
type UpdateRewardInput struct {
	Name       *string
	PointsCost *int
	Active     *bool
}

// LoyaltyService handles rewards and the per-customer point ledger.
// Redemption runs inside one transaction so the balance debit and the
// ledger entry never diverge.
type LoyaltyService struct {
	rewardRepo   loyalty.RewardRepository
	pointRepo    loyalty.PointRepository
	customerRepo crm.CustomerRepository
	tx           shared.Tx
	logger       *zap.Logger
}

// NewLoyaltyService creates a new LoyaltyService
func NewLoyaltyService(rewardRepo loyalty.RewardRepository, pointRepo loyalty.PointRepository, customerRepo crm.CustomerRepository, tx shared.Tx, logger *zap.Logger) *LoyaltyService {
	return &LoyaltyService{
		rewardRepo:   rewardRepo,
		pointRepo:    pointRepo,
		customerRepo: customerRepo,
		tx:           tx,
		logger:       logger,
	}
}

// CreateReward creates a reward inside the vendor's scope
func (s *LoyaltyService) CreateReward(ctx context.Context, vendorID uuid.UUID, input CreateRewardInput) (*loyalty.Reward, error) {
	reward, err := loyalty.NewReward(vendorID, input.Name, input.PointsCost)
	if err != nil {
		return nil, err
	}
	if err := s.rewardRepo.Create(ctx, vendorID, reward); err != nil {
		return nil, err
	}
	return reward, nil
}

// GetReward returns one of the vendor's rewards
func (s *LoyaltyService) GetReward(ctx context.Context, vendorID, id uuid.UUID) (*loyalty.Reward, error) {
	return s.rewardRepo.FindByID(ctx, vendorID, id)
}

// ListRewards lists the vendor's rewards
func (s *LoyaltyService) ListRewards(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (shared.Paginated[loyalty.Reward], error) {
	rewards, err := s.rewardRepo.FindAll(ctx, vendorID, filter)
	if err != nil {
		return shared.Paginated[loyalty.Reward]{}, err
	}
	total, err := s.rewardRepo.Count(ctx, vendorID, filter)
	if err != nil {
		return shared.Paginated[loyalty.Reward]{}, err
	}
	return shared.NewPaginated(rewards, total, filter.Page, filter.PageSize), nil
}

// UpdateReward patches one of the vendor's rewards
func (s *LoyaltyService) UpdateReward(ctx context.Context, vendorID, id uuid.UUID, input UpdateRewardInput) (*loyalty.Reward, error) {
	reward, err := s.rewardRepo.FindByID(ctx, vendorID, id)
	if err != nil {
		return nil, err
	}
	if err := reward.Update(input.Name, input.PointsCost, input.Active); err != nil {
		return nil, err
	}
	if err := s.rewardRepo.Save(ctx, vendorID, reward); err != nil {
		return nil, err
	}
	return reward, nil
}

// DeleteReward removes one of the vendor's rewards
func (s *LoyaltyService) DeleteReward(ctx context.Context, vendorID, id uuid.UUID) error {
	return s.rewardRepo.Delete(ctx, vendorID, id)
}

// Ledger lists a customer's point movements. The customer must belong to
// the vendor; a scope miss looks like an absent customer.
func (s *LoyaltyService) Ledger(ctx context.Context, vendorID, customerID uuid.UUID, filter shared.Filter) ([]loyalty.PointEntry, error) {
	return s.pointRepo.FindByCustomer(ctx, vendorID, customerID, filter)
}

// Redeem exchanges a customer's points for an active reward. The balance
// debit and the ledger entry commit together or not at all.
func (s *LoyaltyService) Redeem(ctx context.Context, vendorID, customerID, rewardID uuid.UUID) (*crm.Customer, error) {
	var redeemed *crm.Customer
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		reward, err := s.rewardRepo.FindByID(ctx, vendorID, rewardID)
		if err != nil {
			return err
		}
		if !reward.Active {
			return shared.NewDomainError("REWARD_INACTIVE", "This reward is no longer active")
		}

		customer, err := s.customerRepo.FindByID(ctx, vendorID, customerID)
		if err != nil {
			return err
		}
		if err := customer.RedeemPoints(reward.PointsCost); err != nil {
			return err
		}
		if err := s.customerRepo.Save(ctx, vendorID, customer); err != nil {
			return err
		}

		entry, err := loyalty.NewPointEntry(customer.ID, -reward.PointsCost, "Redeemed "+reward.Name)
		if err != nil {
			return err
		}
		if err := s.pointRepo.Append(ctx, vendorID, entry); err != nil {
			return err
		}
		redeemed = customer
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reward redeemed",
		zap.String("vendor_id", vendorID.String()),
		zap.String("customer_id", customerID.String()),
		zap.String("reward_id", rewardID.String()))
	return redeemed, nil
}
