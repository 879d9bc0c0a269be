package ports

import (
	"context"

	"transit/internal/core/domain/model/departure"
	"transit/internal/core/domain/model/shipment"
)

// WaybillDocumentGenerator renders the general waybill document for a sealed
// departure and its member shipments.
//
// The document is a derived artifact, not immutable output: every call
// regenerates it from the current snapshot, overwriting any previous file at
// the departure's deterministic path. Only the general waybill number itself
// is immutable. A generation failure during seal aborts the seal; a failure
// during a later re-read surfaces as a fetch error without touching stored
// departure state.
type WaybillDocumentGenerator interface {
	// Generate writes the document and returns its path.
	Generate(ctx context.Context, dep *departure.Departure, members []*shipment.Shipment) (string, error)
}

// WaybillDocumentSweeper prunes document files that no departure references
// anymore, such as leftovers from deleted departures. Documents are derived
// artifacts, so a swept file that turns out to be needed is simply rebuilt on
// the next fetch.
type WaybillDocumentSweeper interface {
	// Sweep removes unreferenced document files and returns how many were
	// deleted. keep holds the paths that must survive.
	Sweep(ctx context.Context, keep map[string]struct{}) (int, error)
}
