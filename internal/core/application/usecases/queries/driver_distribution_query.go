package queries

import (
	"errors"
	"time"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/guard"
)

var ErrDriverDistributionQueryIsNotConstructed = errors.New(
	"DriverDistributionQuery must be created via NewDriverDistributionQuery constructor",
)

// DriverDistributionQuery computes driver payouts over a date window of
// closed departures. When driverID is set, only that driver's payout is
// returned.
type DriverDistributionQuery struct {
	from     time.Time
	to       time.Time
	driverID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewDriverDistributionQuery creates a validated driver distribution query.
// The window is inclusive at both ends.
func NewDriverDistributionQuery(from, to time.Time, driverID *kernel.UUID) (DriverDistributionQuery, error) {
	if err := validatePeriod(from, to); err != nil {
		return DriverDistributionQuery{}, err
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return DriverDistributionQuery{}, err
		}
	}

	return DriverDistributionQuery{
		from:     from,
		to:       to,
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q DriverDistributionQuery) Validate() error {
	return q.guard.Validate(ErrDriverDistributionQueryIsNotConstructed)
}
