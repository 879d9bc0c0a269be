package queries

import (
	"errors"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/guard"
)

var ErrGetDepartureDocumentQueryIsNotConstructed = errors.New(
	"GetDepartureDocumentQuery must be created via NewGetDepartureDocumentQuery constructor",
)

// GetDepartureDocumentQuery fetches the general waybill document of a sealed
// or closed departure.
type GetDepartureDocumentQuery struct {
	departureID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDepartureDocumentQuery creates a validated document fetch query.
func NewGetDepartureDocumentQuery(departureID kernel.UUID) (GetDepartureDocumentQuery, error) {
	if err := departureID.Validate(); err != nil {
		return GetDepartureDocumentQuery{}, err
	}

	return GetDepartureDocumentQuery{
		departureID: departureID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDepartureDocumentQuery) Validate() error {
	return q.guard.Validate(ErrGetDepartureDocumentQueryIsNotConstructed)
}

// DepartureID returns the departure whose document is fetched.
func (q GetDepartureDocumentQuery) DepartureID() kernel.UUID {
	return q.departureID
}

// GetDepartureDocumentResponse carries the regenerated document.
type GetDepartureDocumentResponse struct {
	GeneralWaybillNumber string
	Path                 string
	Content              []byte
}
