package queries

import (
	"database/sql"
	"time"

	"transit/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DepartureResponse is the read-side projection of one departure row,
// augmented with member counts and the summed member revenue. Cancelled
// members are excluded from both.
type DepartureResponse struct {
	ID                   kernel.UUID
	GeneralWaybillNumber *string
	Status               int
	Route                string
	VehicleID            *kernel.UUID
	DriverID             *kernel.UUID
	Notes                string
	DocumentPath         string
	CreatedBy            kernel.UUID
	CreatedAt            time.Time
	SealedAt             *time.Time
	ClosedAt             *time.Time
	ShipmentCount        int
	TotalWeight          decimal.Decimal
	TotalPrice           decimal.Decimal
	TotalDeclaredValue   decimal.Decimal
}

// departureColumns is the select list scanDepartureRow expects, in order.
// The member aggregates come from a lateral-free correlated join kept in the
// query text.
const departureColumns = `
	d.id,
	d.general_waybill_number,
	d.status,
	d.route,
	d.vehicle_id,
	d.driver_id,
	d.notes,
	d.document_path,
	d.created_by,
	d.created_at,
	d.sealed_at,
	d.closed_at,
	COALESCE(m.shipment_count, 0),
	COALESCE(m.total_weight, 0),
	COALESCE(m.total_price, 0),
	COALESCE(m.total_declared_value, 0)
`

// departureMemberJoin aggregates non-cancelled member shipments per departure.
const departureMemberJoin = `
	LEFT JOIN (
		SELECT departure_id, COUNT(*) AS shipment_count,
			SUM(weight) AS total_weight, SUM(price) AS total_price,
			SUM(declared_value) AS total_declared_value
		FROM shipments
		WHERE NOT is_cancelled AND departure_id IS NOT NULL
		GROUP BY departure_id
	) m ON m.departure_id = d.id
`

// scanDepartureRow scans one row produced with departureColumns.
func scanDepartureRow(rows *sql.Rows) (DepartureResponse, error) {
	var (
		resp      DepartureResponse
		id        uuid.UUID
		vehicleID *uuid.UUID
		driverID  *uuid.UUID
		createdBy uuid.UUID
	)

	err := rows.Scan(
		&id,
		&resp.GeneralWaybillNumber,
		&resp.Status,
		&resp.Route,
		&vehicleID,
		&driverID,
		&resp.Notes,
		&resp.DocumentPath,
		&createdBy,
		&resp.CreatedAt,
		&resp.SealedAt,
		&resp.ClosedAt,
		&resp.ShipmentCount,
		&resp.TotalWeight,
		&resp.TotalPrice,
		&resp.TotalDeclaredValue,
	)
	if err != nil {
		return DepartureResponse{}, err
	}

	departureID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return DepartureResponse{}, err
	}
	resp.ID = departureID

	creator, err := kernel.UUIDFromBytes(createdBy[:])
	if err != nil {
		return DepartureResponse{}, err
	}
	resp.CreatedBy = creator

	if vehicleID != nil {
		converted, idErr := kernel.UUIDFromBytes((*vehicleID)[:])
		if idErr != nil {
			return DepartureResponse{}, idErr
		}
		resp.VehicleID = &converted
	}

	if driverID != nil {
		converted, idErr := kernel.UUIDFromBytes((*driverID)[:])
		if idErr != nil {
			return DepartureResponse{}, idErr
		}
		resp.DriverID = &converted
	}

	return resp, nil
}
