package identity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/niorc/backend/internal/domain/shared"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
var phonePattern = regexp.MustCompile(`^[0-9+\-\s]{6,20}$`)

// FlagSet holds per-vendor feature flags as a jsonb column
type FlagSet map[string]bool

// Value implements driver.Valuer
func (f FlagSet) Value() (driver.Value, error) {
	if f == nil {
		return "{}", nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (f *FlagSet) Scan(value any) error {
	if value == nil {
		*f = FlagSet{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for FlagSet")
	}
	return json.Unmarshal(data, f)
}

// Enabled reports whether a flag is on for this set
func (f FlagSet) Enabled(name string) bool {
	return f[name]
}

// Profile represents one vendor's account. It is the tenant root: every
// owned entity in the system references a profile through vendor_id.
// Exactly one profile exists per authenticated subject.
type Profile struct {
	shared.BaseEntity
	AuthSubject  string           `gorm:"type:varchar(200);not null;uniqueIndex" json:"auth_subject"`
	PasswordHash string           `gorm:"type:varchar(200);not null" json:"-"`
	BusinessName string           `gorm:"type:varchar(200);not null" json:"business_name"`
	OwnerName    string           `gorm:"type:varchar(100)" json:"owner_name"`
	Phone        string           `gorm:"type:varchar(20)" json:"phone"`
	Email        string           `gorm:"type:varchar(200)" json:"email"`
	Address      string           `gorm:"type:text" json:"address"`
	Status       OnboardingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	IsAdmin      bool             `gorm:"not null;default:false" json:"is_admin"`
	Flags        FlagSet          `gorm:"type:jsonb" json:"flags"`
}

// TableName returns the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

// NewProfile creates a vendor profile in pending status
func NewProfile(authSubject, passwordHash, businessName string) (*Profile, error) {
	authSubject = strings.TrimSpace(strings.ToLower(authSubject))
	if authSubject == "" {
		return nil, shared.NewDomainError("INVALID_AUTH_SUBJECT", "Auth subject cannot be empty")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	if err := validateBusinessName(businessName); err != nil {
		return nil, err
	}

	return &Profile{
		BaseEntity:   shared.NewBaseEntity(),
		AuthSubject:  authSubject,
		PasswordHash: passwordHash,
		BusinessName: businessName,
		Status:       OnboardingPending,
		Flags:        FlagSet{},
	}, nil
}

// Update updates the profile's mutable business metadata. Nil fields are
// left unchanged.
func (p *Profile) Update(businessName, ownerName, phone, email, address *string) error {
	if businessName != nil {
		if err := validateBusinessName(*businessName); err != nil {
			return err
		}
		p.BusinessName = *businessName
	}
	if ownerName != nil {
		if len(*ownerName) > 100 {
			return shared.NewDomainError("INVALID_OWNER_NAME", "Owner name cannot exceed 100 characters")
		}
		p.OwnerName = *ownerName
	}
	if phone != nil {
		if *phone != "" && !phonePattern.MatchString(*phone) {
			return shared.NewDomainError("INVALID_PHONE", "Phone number format is invalid")
		}
		p.Phone = *phone
	}
	if email != nil {
		if *email != "" && !emailPattern.MatchString(*email) {
			return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
		}
		p.Email = strings.ToLower(*email)
	}
	if address != nil {
		if len(*address) > 500 {
			return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
		}
		p.Address = *address
	}
	p.Touch()
	return nil
}

// SetFlag turns a feature flag on or off
func (p *Profile) SetFlag(name string, enabled bool) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_FLAG", "Flag name cannot be empty")
	}
	if p.Flags == nil {
		p.Flags = FlagSet{}
	}
	p.Flags[name] = enabled
	p.Touch()
	return nil
}

func validateBusinessName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_BUSINESS_NAME", "Business name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_BUSINESS_NAME", "Business name cannot exceed 200 characters")
	}
	return nil
}
