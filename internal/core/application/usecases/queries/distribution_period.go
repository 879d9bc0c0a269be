package queries

import (
	"fmt"
	"time"

	"transit/internal/pkg/errs"
)

// validatePeriod checks a distribution date window: both bounds set and the
// window non-empty. Both bounds are inclusive.
func validatePeriod(from, to time.Time) error {
	if from.IsZero() {
		return errs.NewValueIsRequiredError("from")
	}
	if to.IsZero() {
		return errs.NewValueIsRequiredError("to")
	}
	if !from.Before(to) {
		return errs.NewValueIsInvalidErrorWithCause("period",
			fmt.Errorf("from %s is not before to %s", from.Format(time.RFC3339), to.Format(time.RFC3339)))
	}
	return nil
}
