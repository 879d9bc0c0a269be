package kernel

import (
	"fmt"

	"transit/internal/pkg/errs"
)

// ErrActorIsNotConstructed indicates that an Actor was not created through NewActor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("Actor must be created via NewActor")

// Role is the privilege tier of an acting user. Roles are ordered: every
// privilege granted to a lower tier is also granted to the tiers above it.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleOperator is the base tier: registers and confirms shipments,
	// manages open departures. No financial visibility.
	RoleOperator

	// RoleManager can edit confirmed shipments, cancel shipments, and sees
	// monetary fields in summaries and distribution reports.
	RoleManager

	// RoleAdmin holds every privilege, including unconditional departure deletion.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "Unknown",
		RoleOperator: "Operator",
		RoleManager:  "Manager",
		RoleAdmin:    "Admin",
	}
}

// RoleFromString parses a role name as stored in credentials or persistence.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// String returns the human-readable name of the role.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "Unknown"
}

// Validate checks that the role is one of the defined tiers.
func (r Role) Validate() error {
	switch r {
	case RoleOperator, RoleManager, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
}

// Actor identifies the user performing an operation together with their
// privilege tier. All gated operations receive an Actor; the domain decides
// from the role alone, never from ambient state.
type Actor struct {
	id   UUID
	role Role
}

// NewActor creates a validated Actor.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// Validate ensures the actor was created via NewActor.
func (a Actor) Validate() error {
	if err := a.id.Validate(); err != nil {
		return ErrActorIsNotConstructed
	}
	return a.role.Validate()
}

// ID returns the acting user's identifier.
func (a Actor) ID() UUID {
	return a.id
}

// Role returns the acting user's privilege tier.
func (a Actor) Role() Role {
	return a.role
}

// CanViewFinancials reports whether monetary fields (price, declared value,
// monetary totals) may appear in responses produced for this actor.
func (a Actor) CanViewFinancials() bool {
	return a.role >= RoleManager
}

// CanOverrideShipmentLock reports whether the actor may edit a confirmed
// shipment. The bypass is role-gated, not state-gated.
func (a Actor) CanOverrideShipmentLock() bool {
	return a.role >= RoleManager
}

// CanCancelShipments reports whether the actor may cancel shipments.
func (a Actor) CanCancelShipments() bool {
	return a.role >= RoleManager
}

// CanDeleteDeparture reports whether the actor may delete a departure.
// Admins may delete unconditionally; managers only while the departure is
// still open. This is a business policy, not a hard invariant.
func (a Actor) CanDeleteDeparture(departureIsOpen bool) bool {
	if a.role >= RoleAdmin {
		return true
	}
	return a.role >= RoleManager && departureIsOpen
}
