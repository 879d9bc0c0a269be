package queries

import (
	"errors"
	"fmt"

	"transit/internal/core/domain/model/departure"
	"transit/internal/pkg/errs"
	"transit/internal/pkg/guard"
)

var ErrListDeparturesQueryIsNotConstructed = errors.New(
	"ListDeparturesQuery must be created via NewListDeparturesQuery constructor",
)

// ListDeparturesQuery retrieves a filtered, paginated page of departures.
type ListDeparturesQuery struct {
	status   *departure.Status
	page     int
	pageSize int

	guard guard.ConstructorGuard
}

// NewListDeparturesQuery creates a validated departure list query.
func NewListDeparturesQuery(status *departure.Status, page, pageSize int) (ListDeparturesQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListDeparturesQuery{}, err
		}
	}
	if page < 1 {
		return ListDeparturesQuery{}, errs.NewValueIsInvalidErrorWithCause("page",
			fmt.Errorf("%d is less than 1", page))
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return ListDeparturesQuery{}, errs.NewValueIsOutOfRangeError("pageSize", pageSize, 1, maxPageSize)
	}

	return ListDeparturesQuery{
		status:   status,
		page:     page,
		pageSize: pageSize,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListDeparturesQuery) Validate() error {
	return q.guard.Validate(ErrListDeparturesQueryIsNotConstructed)
}

// ListDeparturesResponse is one page of departures plus the total row count.
type ListDeparturesResponse struct {
	Departures []DepartureResponse
	Total      int64
	Page       int
	PageSize   int
}
