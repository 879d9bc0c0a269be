package queries

import (
	"errors"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/guard"
)

var ErrGetDepartureQueryIsNotConstructed = errors.New(
	"GetDepartureQuery must be created via NewGetDepartureQuery constructor",
)

// GetDepartureQuery retrieves one departure with its member manifest.
type GetDepartureQuery struct {
	departureID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDepartureQuery creates a validated departure lookup query.
func NewGetDepartureQuery(departureID kernel.UUID) (GetDepartureQuery, error) {
	if err := departureID.Validate(); err != nil {
		return GetDepartureQuery{}, err
	}

	return GetDepartureQuery{
		departureID: departureID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDepartureQuery) Validate() error {
	return q.guard.Validate(ErrGetDepartureQueryIsNotConstructed)
}

// DepartureID returns the departure to look up.
func (q GetDepartureQuery) DepartureID() kernel.UUID {
	return q.departureID
}

// GetDepartureResponse is the departure summary: the header projection plus
// the full member list, cancelled members included and flagged.
type GetDepartureResponse struct {
	Departure DepartureResponse
	Members   []ShipmentResponse
}
