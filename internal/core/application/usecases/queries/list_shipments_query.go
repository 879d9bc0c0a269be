package queries

import (
	"errors"
	"fmt"
	"time"

	"transit/internal/core/domain/model/shipment"
	"transit/internal/pkg/errs"
	"transit/internal/pkg/guard"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var ErrListShipmentsQueryIsNotConstructed = errors.New(
	"ListShipmentsQuery must be created via NewListShipmentsQuery constructor",
)

// ListShipmentsQuery retrieves a filtered, paginated page of the shipment
// ledger. Cancelled shipments are excluded unless explicitly requested.
type ListShipmentsQuery struct {
	status           *shipment.Status
	nature           *shipment.Nature
	search           string
	route            string
	from             *time.Time
	to               *time.Time
	unattachedOnly   bool
	includeCancelled bool
	page             int
	pageSize         int

	guard guard.ConstructorGuard
}

// ListShipmentsFilter carries the optional filters for the shipment list.
type ListShipmentsFilter struct {
	// Status restricts the result to one lifecycle status.
	Status *shipment.Status
	// Nature restricts the result to parcels or mail.
	Nature *shipment.Nature
	// Search matches the waybill number or party names, case-insensitively.
	Search string
	// Route matches the shipment route, case-insensitively.
	Route string
	// From bounds the registration date, inclusive.
	From *time.Time
	// To bounds the registration date, inclusive.
	To *time.Time
	// UnattachedOnly keeps only shipments not assigned to any departure,
	// the candidate pool for assignment.
	UnattachedOnly bool
	// IncludeCancelled adds soft-cancelled shipments to the result.
	IncludeCancelled bool
}

// NewListShipmentsQuery creates a validated list query. Page numbering starts
// at 1; a zero pageSize falls back to the default.
func NewListShipmentsQuery(filter ListShipmentsFilter, page, pageSize int) (ListShipmentsQuery, error) {
	if filter.Status != nil {
		if err := filter.Status.Validate(); err != nil {
			return ListShipmentsQuery{}, err
		}
	}
	if filter.Nature != nil {
		if err := filter.Nature.Validate(); err != nil {
			return ListShipmentsQuery{}, err
		}
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return ListShipmentsQuery{}, errs.NewValueIsInvalidErrorWithCause("period",
			fmt.Errorf("from %s is not before to %s",
				filter.From.Format(time.RFC3339), filter.To.Format(time.RFC3339)))
	}
	if page < 1 {
		return ListShipmentsQuery{}, errs.NewValueIsInvalidErrorWithCause("page",
			fmt.Errorf("%d is less than 1", page))
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return ListShipmentsQuery{}, errs.NewValueIsOutOfRangeError("pageSize", pageSize, 1, maxPageSize)
	}

	return ListShipmentsQuery{
		status:           filter.Status,
		nature:           filter.Nature,
		search:           filter.Search,
		route:            filter.Route,
		from:             filter.From,
		to:               filter.To,
		unattachedOnly:   filter.UnattachedOnly,
		includeCancelled: filter.IncludeCancelled,
		page:             page,
		pageSize:         pageSize,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListShipmentsQueryIsNotConstructed)
}

// ListShipmentsResponse is one page of the ledger plus the total row count
// for pagination.
type ListShipmentsResponse struct {
	Shipments []ShipmentResponse
	Total     int64
	Page      int
	PageSize  int
}
