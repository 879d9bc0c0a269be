package ports

import (
	"context"

	"transit/internal/core/domain/model/departure"
	"transit/internal/core/domain/model/kernel"
)

// DepartureRepository defines the persistence contract for departure aggregates.
type DepartureRepository interface {
	// Add persists a new departure aggregate to storage.
	Add(ctx context.Context, aggregate *departure.Departure) error

	// Update persists changes to an existing departure aggregate.
	// Surfaces a retryable conflict error on a duplicate general waybill number.
	Update(ctx context.Context, aggregate *departure.Departure) error

	// Get retrieves a departure aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*departure.Departure, error)

	// Delete removes a departure. Privilege and state policy checks are the
	// caller's responsibility.
	Delete(ctx context.Context, id kernel.UUID) error
}
