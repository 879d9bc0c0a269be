package queries

import (
	"context"

	"transit/internal/core/domain/services"

	"gorm.io/gorm"
)

// RegulatorDistributionQueryHandler computes the regulator cut from the
// database snapshot.
type RegulatorDistributionQueryHandler struct {
	db         *gorm.DB
	calculator *services.DistributionCalculator
}

// NewRegulatorDistributionQueryHandler creates a handler for the regulator report.
func NewRegulatorDistributionQueryHandler(
	db *gorm.DB,
	calculator *services.DistributionCalculator,
) RegulatorDistributionQueryHandler {
	return RegulatorDistributionQueryHandler{db: db, calculator: calculator}
}

// Handle loads the window snapshot and computes the regulator aggregate.
func (h RegulatorDistributionQueryHandler) Handle(
	ctx context.Context,
	query DistributionWindowQuery,
) (services.RegulatorPayout, error) {
	if err := query.Validate(); err != nil {
		return services.RegulatorPayout{}, err
	}

	records, err := loadDistributionRecords(ctx, h.db, query.from, query.to)
	if err != nil {
		return services.RegulatorPayout{}, err
	}

	return h.calculator.RegulatorDistribution(records), nil
}
