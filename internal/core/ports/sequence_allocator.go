package ports

import "context"

// SequenceScope is an independent numbering space for generated identifiers.
type SequenceScope int

const (
	// ShipmentWaybillScope numbers shipment waybills (prefix TC).
	ShipmentWaybillScope SequenceScope = iota

	// GeneralWaybillScope numbers departure general waybills (prefix BG).
	GeneralWaybillScope
)

// SequenceAllocator issues gap-free, year-scoped, zero-padded identifiers of
// the form <PREFIX>-<YEAR>-<NNNN>, one numbering space per scope per calendar
// year. The next value is re-derived from persisted state on every call, never
// cached: a crash between issuing and persisting may leave a gap, but a call
// never observes or re-issues an already persisted number. Concurrent
// allocations racing to the same number are caught by the unique constraint
// on the target column and surfaced as a retryable conflict.
type SequenceAllocator interface {
	// Next returns the next identifier for the scope in the current year.
	// The numeric suffix is zero-padded to at least four digits and grows
	// past four digits without truncation. A fresh year starts at 1.
	Next(ctx context.Context, scope SequenceScope) (string, error)
}
