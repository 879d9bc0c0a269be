package queries

import (
	"context"

	"transit/internal/core/domain/services"

	"gorm.io/gorm"
)

// DriverDistributionQueryHandler computes driver revenue shares from the
// database snapshot.
type DriverDistributionQueryHandler struct {
	db         *gorm.DB
	calculator *services.DistributionCalculator
}

// NewDriverDistributionQueryHandler creates a handler for driver payouts.
func NewDriverDistributionQueryHandler(
	db *gorm.DB,
	calculator *services.DistributionCalculator,
) DriverDistributionQueryHandler {
	return DriverDistributionQueryHandler{db: db, calculator: calculator}
}

// Handle loads the window snapshot and computes the per-driver payouts.
func (h DriverDistributionQueryHandler) Handle(
	ctx context.Context,
	query DriverDistributionQuery,
) ([]services.DriverPayout, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	records, err := loadDistributionRecords(ctx, h.db, query.from, query.to)
	if err != nil {
		return nil, err
	}

	return h.calculator.DriverDistribution(records, query.driverID), nil
}
