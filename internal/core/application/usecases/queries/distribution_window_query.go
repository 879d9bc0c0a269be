package queries

import (
	"errors"
	"time"

	"transit/internal/pkg/guard"
)

var ErrDistributionWindowQueryIsNotConstructed = errors.New(
	"DistributionWindowQuery must be created via NewDistributionWindowQuery constructor",
)

// DistributionWindowQuery is the shared input of the regulator, agency and
// summary reports: a date window over closed departures.
type DistributionWindowQuery struct {
	from time.Time
	to   time.Time

	guard guard.ConstructorGuard
}

// NewDistributionWindowQuery creates a validated window query. The window is
// inclusive at both ends.
func NewDistributionWindowQuery(from, to time.Time) (DistributionWindowQuery, error) {
	if err := validatePeriod(from, to); err != nil {
		return DistributionWindowQuery{}, err
	}

	return DistributionWindowQuery{
		from:  from,
		to:    to,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q DistributionWindowQuery) Validate() error {
	return q.guard.Validate(ErrDistributionWindowQueryIsNotConstructed)
}
