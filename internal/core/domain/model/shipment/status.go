package shipment

import (
	"fmt"
	"strings"

	"transit/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
//
// State transitions:
//
//	Pending ──confirm──> Confirmed ──assign──> Assigned
//	                         ^                    │
//	                         └──────detach────────┘
//
//	any non-cancelled state ──cancel──> Cancelled (terminal)
//
// Status is tracked alongside the independent is_confirmed / is_cancelled
// flags on the shipment; the aggregate keeps them consistent.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending is the initial status of a freshly registered shipment.
	StatusPending

	// StatusConfirmed indicates the shipment's pricing and weight are locked
	// against edits by non-privileged actors.
	StatusConfirmed

	// StatusAssigned indicates the shipment is attached to a departure.
	StatusAssigned

	// StatusCancelled is terminal. Cancelled shipments are excluded from
	// sealing eligibility and from all distribution queries.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		StatusPending:   "Pending",
		StatusConfirmed: "Confirmed",
		StatusAssigned:  "Assigned",
		StatusCancelled: "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:   "Pending",
		StatusConfirmed: "Confirmed",
		StatusAssigned:  "Assigned",
		StatusCancelled: "Cancelled",
	}
}

// StatusFromString parses a status name, case-insensitively.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if strings.EqualFold(s, name) {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Confirm transitions the status to Confirmed.
//
// Valid transitions:
//   - Pending -> Confirmed
//
// Assigned and Cancelled shipments cannot be confirmed through this
// transition; a Confirmed shipment fails with an "already confirmed" state
// error so callers can distinguish the double-confirm case.
func (s Status) Confirm() (Status, error) {
	if s == StatusConfirmed {
		return 0, errs.NewInvalidStateError("shipment", s.String(), "confirm again")
	}
	if s != StatusPending {
		return 0, errs.NewInvalidStateError("shipment", s.String(), "confirm")
	}
	return StatusConfirmed, nil
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Pending -> Assigned
//   - Confirmed -> Assigned
//   - Assigned -> Assigned (re-assignment within the same departure is a no-op)
//
// Cancelled shipments must never become assignable.
func (s Status) Assign() (Status, error) {
	if s == StatusCancelled {
		return 0, errs.NewInvalidStateError("shipment", s.String(), "assign")
	}
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return StatusAssigned, nil
}

// Detach reverts an assigned shipment to Confirmed.
//
// The shipment returns to Confirmed rather than Pending: by the time it was
// attached to a departure it was already committed money-wise.
func (s Status) Detach() (Status, error) {
	if s != StatusAssigned {
		return 0, errs.NewInvalidStateError("shipment", s.String(), "detach")
	}
	return StatusConfirmed, nil
}

// Cancel transitions the status to Cancelled.
//
// Any non-cancelled state may be cancelled. Cancelling an already cancelled
// shipment fails so callers can surface the double-cancel case.
func (s Status) Cancel() (Status, error) {
	if s == StatusCancelled {
		return 0, errs.NewInvalidStateError("shipment", s.String(), "cancel again")
	}
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return StatusCancelled, nil
}
