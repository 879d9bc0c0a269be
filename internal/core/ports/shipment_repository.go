package ports

import (
	"context"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	// Surfaces a retryable conflict error on a duplicate waybill number.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetByIDs retrieves the named shipments. Returns an object-not-found
	// error identifying the first missing ID when any is absent, so callers
	// can fail wholesale instead of partially.
	GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*shipment.Shipment, error)

	// GetByDeparture retrieves every shipment attached to the given
	// departure, cancelled members included.
	GetByDeparture(ctx context.Context, departureID kernel.UUID) ([]*shipment.Shipment, error)
}
