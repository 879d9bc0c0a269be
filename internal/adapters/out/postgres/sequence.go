package postgres

import (
	"context"
	"fmt"
	"time"

	"transit/internal/core/ports"
	"transit/internal/pkg/errs"

	"gorm.io/gorm"
)

// scopeSource maps a numbering scope to the prefix it issues and the column
// the persisted maximum is derived from.
type scopeSource struct {
	prefix string
	query  string
}

// Each scope re-derives its maximum from the rows that actually carry the
// numbers, so a crash after allocation but before commit leaves at most a
// gap, never a duplicate. Concurrent allocations racing to the same number
// are caught by the unique index on the column.
var scopeSources = map[ports.SequenceScope]scopeSource{
	ports.ShipmentWaybillScope: {
		prefix: "TC",
		query: `
			SELECT COALESCE(MAX(CAST(SPLIT_PART(waybill_number, '-', 3) AS INTEGER)), 0)
			FROM shipments
			WHERE waybill_number LIKE ?
		`,
	},
	ports.GeneralWaybillScope: {
		prefix: "BG",
		query: `
			SELECT COALESCE(MAX(CAST(SPLIT_PART(general_waybill_number, '-', 3) AS INTEGER)), 0)
			FROM departures
			WHERE general_waybill_number LIKE ?
		`,
	},
}

// GormSequenceAllocator issues year-scoped waybill numbers of the form
// <PREFIX>-<YEAR>-<NNNN>. It runs against the unit of work's transaction so
// the issued number and the row carrying it commit atomically.
type GormSequenceAllocator struct {
	db *gorm.DB
}

// NewGormSequenceAllocator creates an allocator bound to the given connection.
func NewGormSequenceAllocator(db *gorm.DB) *GormSequenceAllocator {
	return &GormSequenceAllocator{db: db}
}

// Next returns the next identifier for the scope in the current year. The
// suffix restarts at 1 each calendar year and is zero-padded to four digits,
// growing past four without truncation.
func (a *GormSequenceAllocator) Next(ctx context.Context, scope ports.SequenceScope) (string, error) {
	source, ok := scopeSources[scope]
	if !ok {
		return "", errs.NewValueIsInvalidError("scope")
	}

	year := time.Now().UTC().Year()
	pattern := fmt.Sprintf("%s-%d-%%", source.prefix, year)

	var current int
	if err := a.db.WithContext(ctx).Raw(source.query, pattern).Scan(&current).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%d-%04d", source.prefix, year, current+1), nil
}
