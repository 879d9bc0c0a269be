// Package docgen renders general waybill documents for sealed departures.
// Documents are derived artifacts regenerated from the current snapshot on
// every call; only the general waybill number itself is immutable.
package docgen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"transit/internal/core/domain/model/departure"
	"transit/internal/core/domain/model/shipment"
	"transit/internal/pkg/errs"
)

// FileWaybillDocumentGenerator writes plain-text waybill manifests to a
// configured directory. Each departure maps to one deterministic path, so
// regeneration overwrites the previous file in place.
type FileWaybillDocumentGenerator struct {
	dir string
}

// NewFileWaybillDocumentGenerator creates a generator writing into dir.
func NewFileWaybillDocumentGenerator(dir string) (*FileWaybillDocumentGenerator, error) {
	if dir == "" {
		return nil, errs.NewValueIsRequiredError("document directory")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &FileWaybillDocumentGenerator{dir: dir}, nil
}

// Generate writes the manifest for the departure and its member shipments and
// returns the document path. The departure must already carry its general
// waybill number.
func (g *FileWaybillDocumentGenerator) Generate(
	ctx context.Context,
	dep *departure.Departure,
	members []*shipment.Shipment,
) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	number := dep.GeneralWaybillNumber()
	if number == nil {
		return "", errs.NewValueIsRequiredError("general waybill number")
	}

	var b strings.Builder

	fmt.Fprintf(&b, "GENERAL WAYBILL %s\n", *number)
	fmt.Fprintf(&b, "Route: %s\n", dep.Fields().Route)
	if driverID := dep.Fields().DriverID; driverID != nil {
		fmt.Fprintf(&b, "Driver: %s\n", driverID)
	}
	if vehicleID := dep.Fields().VehicleID; vehicleID != nil {
		fmt.Fprintf(&b, "Vehicle: %s\n", vehicleID)
	}
	if sealedAt := dep.SealedAt(); sealedAt != nil {
		fmt.Fprintf(&b, "Sealed: %s\n", sealedAt.Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Fprintf(&b, "Shipments: %d\n\n", len(members))

	for i, member := range members {
		details := member.Details()

		weight := "-"
		if details.Weight != nil {
			weight = details.Weight.String() + " kg"
		}

		price := details.Price.StringFixed(2)
		if details.IsFree {
			price = "free"
		}

		fmt.Fprintf(&b, "%3d. %s  %s -> %s  %s  %s  %s\n",
			i+1,
			member.WaybillNumber(),
			details.Sender.Name,
			details.Receiver.Name,
			details.Route,
			weight,
			price,
		)
	}

	path := g.Path(dep)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", err
	}

	return path, nil
}

// Path returns the deterministic document location for a departure.
func (g *FileWaybillDocumentGenerator) Path(dep *departure.Departure) string {
	return filepath.Join(g.dir, fmt.Sprintf("departure-%s.txt", dep.ID()))
}

// Sweep deletes document files in the directory that are not in keep.
// Only files matching the generator's naming scheme are considered.
func (g *FileWaybillDocumentGenerator) Sweep(ctx context.Context, keep map[string]struct{}) (int, error) {
	entries, err := os.ReadDir(g.dir)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if err = ctx.Err(); err != nil {
			return removed, err
		}
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, "departure-") || !strings.HasSuffix(name, ".txt") {
			continue
		}

		path := filepath.Join(g.dir, name)
		if _, ok := keep[path]; ok {
			continue
		}

		if err = os.Remove(path); err != nil {
			return removed, err
		}
		removed++
	}

	return removed, nil
}
