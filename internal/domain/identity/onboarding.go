package identity

import "github.com/niorc/backend/internal/domain/shared"

// OnboardingStatus represents a vendor profile's approval state
type OnboardingStatus string

const (
	OnboardingPending  OnboardingStatus = "pending"
	OnboardingActive   OnboardingStatus = "active"
	OnboardingRejected OnboardingStatus = "rejected"
)

// IsValid reports whether the status is a known onboarding state
func (s OnboardingStatus) IsValid() bool {
	switch s {
	case OnboardingPending, OnboardingActive, OnboardingRejected:
		return true
	}
	return false
}

type transition struct {
	From OnboardingStatus
	To   OnboardingStatus
}

// allowedTransitions is the authoritative transition table. Every
// transition is admin-triggered; a vendor can never move its own status.
// Rejected is terminal from the vendor's perspective but an admin may
// correct it back to pending or straight to active.
var allowedTransitions = map[transition]bool{
	{OnboardingPending, OnboardingActive}:    true,
	{OnboardingPending, OnboardingRejected}:  true,
	{OnboardingRejected, OnboardingPending}:  true,
	{OnboardingRejected, OnboardingActive}:   true,
	{OnboardingActive, OnboardingRejected}:   true,
}

// CanTransitionTo reports whether moving from s to target is allowed
func (s OnboardingStatus) CanTransitionTo(target OnboardingStatus) bool {
	return allowedTransitions[transition{s, target}]
}

// NextStates returns all states reachable from s
func (s OnboardingStatus) NextStates() []OnboardingStatus {
	ordered := []OnboardingStatus{OnboardingPending, OnboardingActive, OnboardingRejected}
	var next []OnboardingStatus
	for _, t := range ordered {
		if allowedTransitions[transition{s, t}] {
			next = append(next, t)
		}
	}
	return next
}

// TransitionTo moves the profile to the target status if the transition
// table allows it
func (p *Profile) TransitionTo(target OnboardingStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown onboarding status: "+string(target))
	}
	if !p.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Onboarding transition from '"+string(p.Status)+"' to '"+string(target)+"' is not allowed")
	}
	p.Status = target
	p.Touch()
	return nil
}

// IsApproved reports whether the vendor may use business-data endpoints
func (p *Profile) IsApproved() bool {
	return p.Status == OnboardingActive
}
