package departure

import (
	"fmt"
	"strings"

	"transit/internal/pkg/errs"
)

// Status represents the lifecycle state of a departure.
//
// State transitions are strictly forward-only, and Sealed can never be skipped:
//
//	Open ──seal──> Sealed ──close──> Closed
//
// Open departures accept membership and field changes. Sealing allocates the
// general waybill number and locks the members. Closed is absorbing: no
// further content mutation is permitted by any operation.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusOpen is the initial status. Membership and fields are mutable.
	StatusOpen

	// StatusSealed indicates the general waybill number has been allocated
	// and the member shipments are locked.
	StatusSealed

	// StatusClosed is the terminal status. Content is frozen.
	StatusClosed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		StatusOpen:    "Open",
		StatusSealed:  "Sealed",
		StatusClosed:  "Closed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusOpen:   "Open",
		StatusSealed: "Sealed",
		StatusClosed: "Closed",
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

// Seal transitions the status to Sealed.
//
// Valid transitions:
//   - Open -> Sealed
//
// Sealing a Sealed or Closed departure fails and must leave stored state
// unchanged.
func (s Status) Seal() (Status, error) {
	if s != StatusOpen {
		return 0, errs.NewInvalidStateError("departure", s.String(), "seal")
	}
	return StatusSealed, nil
}

// Close transitions the status to Closed.
//
// Valid transitions:
//   - Sealed -> Closed
//
// A departure can never move directly from Open to Closed.
func (s Status) Close() (Status, error) {
	if s != StatusSealed {
		return 0, errs.NewInvalidStateError("departure", s.String(), "close")
	}
	return StatusClosed, nil
}
