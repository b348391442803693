package loyalty

import (
	"strings"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/shared"
)

// Reward is a redeemable loyalty reward offered by a vendor
type Reward struct {
	shared.VendorEntity
	Name       string `gorm:"type:varchar(200);not null" json:"name"`
	PointsCost int    `gorm:"not null" json:"points_cost"`
	Active     bool   `gorm:"not null;default:true" json:"active"`
}

// TableName returns the table name for GORM
func (Reward) TableName() string {
	return "loyalty_rewards"
}

// NewReward creates a new reward owned by the given vendor
func NewReward(vendorID uuid.UUID, name string, pointsCost int) (*Reward, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Reward name cannot be empty")
	}
	if pointsCost <= 0 {
		return nil, shared.NewDomainError("INVALID_POINTS_COST", "Points cost must be positive")
	}

	return &Reward{
		VendorEntity: shared.NewVendorEntity(vendorID),
		Name:         name,
		PointsCost:   pointsCost,
		Active:       true,
	}, nil
}

// Update updates the reward's mutable fields. Nil fields are left unchanged.
func (r *Reward) Update(name *string, pointsCost *int, active *bool) error {
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return shared.NewDomainError("INVALID_NAME", "Reward name cannot be empty")
		}
		r.Name = *name
	}
	if pointsCost != nil {
		if *pointsCost <= 0 {
			return shared.NewDomainError("INVALID_POINTS_COST", "Points cost must be positive")
		}
		r.PointsCost = *pointsCost
	}
	if active != nil {
		r.Active = *active
	}
	r.Touch()
	return nil
}
