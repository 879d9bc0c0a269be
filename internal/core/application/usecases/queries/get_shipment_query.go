package queries

import (
	"errors"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/guard"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
)

// GetShipmentQuery retrieves one shipment by its identifier.
type GetShipmentQuery struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShipmentQuery creates a validated shipment lookup query.
func NewGetShipmentQuery(shipmentID kernel.UUID) (GetShipmentQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}

	return GetShipmentQuery{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// ShipmentID returns the shipment to look up.
func (q GetShipmentQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}
