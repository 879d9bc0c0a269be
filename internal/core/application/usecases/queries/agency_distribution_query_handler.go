package queries

import (
	"context"

	"transit/internal/core/domain/services"

	"gorm.io/gorm"
)

// AgencyDistributionQueryHandler computes the agency residual from the
// database snapshot.
type AgencyDistributionQueryHandler struct {
	db         *gorm.DB
	calculator *services.DistributionCalculator
}

// NewAgencyDistributionQueryHandler creates a handler for the agency report.
func NewAgencyDistributionQueryHandler(
	db *gorm.DB,
	calculator *services.DistributionCalculator,
) AgencyDistributionQueryHandler {
	return AgencyDistributionQueryHandler{db: db, calculator: calculator}
}

// Handle loads the window snapshot and computes the agency residual.
func (h AgencyDistributionQueryHandler) Handle(
	ctx context.Context,
	query DistributionWindowQuery,
) (services.AgencyPayout, error) {
	if err := query.Validate(); err != nil {
		return services.AgencyPayout{}, err
	}

	records, err := loadDistributionRecords(ctx, h.db, query.from, query.to)
	if err != nil {
		return services.AgencyPayout{}, err
	}

	return h.calculator.AgencyDistribution(records), nil
}
