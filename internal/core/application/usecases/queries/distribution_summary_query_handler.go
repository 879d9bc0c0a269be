package queries

import (
	"context"

	"transit/internal/core/domain/services"

	"gorm.io/gorm"
)

// DistributionSummaryQueryHandler combines the three stakeholder reports over
// one snapshot, so the drilldowns always reconcile with the totals.
type DistributionSummaryQueryHandler struct {
	db         *gorm.DB
	calculator *services.DistributionCalculator
}

// NewDistributionSummaryQueryHandler creates a handler for the combined report.
func NewDistributionSummaryQueryHandler(
	db *gorm.DB,
	calculator *services.DistributionCalculator,
) DistributionSummaryQueryHandler {
	return DistributionSummaryQueryHandler{db: db, calculator: calculator}
}

// Handle loads the window snapshot once and computes all three views.
func (h DistributionSummaryQueryHandler) Handle(
	ctx context.Context,
	query DistributionWindowQuery,
) (services.DistributionSummary, error) {
	if err := query.Validate(); err != nil {
		return services.DistributionSummary{}, err
	}

	records, err := loadDistributionRecords(ctx, h.db, query.from, query.to)
	if err != nil {
		return services.DistributionSummary{}, err
	}

	return h.calculator.Summary(records), nil
}
