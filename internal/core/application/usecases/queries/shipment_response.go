// Package queries contains read-side operations in the CQRS architecture.
// Query handlers read the database directly and return response projections,
// bypassing the domain aggregates and the unit of work.
package queries

import (
	"database/sql"
	"time"

	"transit/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentResponse is the read-side projection of one shipment row. Financial
// fields are masked at the transport layer for actors without financial
// visibility; the query layer always returns the full row.
type ShipmentResponse struct {
	ID            kernel.UUID
	WaybillNumber string
	SenderName    string
	SenderPhone   string
	ReceiverName  string
	ReceiverPhone string
	Description   string
	Weight        *decimal.Decimal
	DeclaredValue decimal.Decimal
	Price         decimal.Decimal
	Route         string
	Nature        int
	MailType      int
	IsFree        bool
	Status        int
	IsConfirmed   bool
	IsCancelled   bool
	ConfirmedAt   *time.Time
	CancelledAt   *time.Time
	CancelReason  string
	DepartureID   *kernel.UUID
	CreatedAt     time.Time
}

// shipmentColumns is the select list scanShipmentRow expects, in order.
const shipmentColumns = `
	id,
	waybill_number,
	sender_name,
	sender_phone,
	receiver_name,
	receiver_phone,
	description,
	weight,
	declared_value,
	price,
	route,
	nature,
	mail_type,
	is_free,
	status,
	is_confirmed,
	is_cancelled,
	confirmed_at,
	cancelled_at,
	cancel_reason,
	departure_id,
	created_at
`

// scanShipmentRow scans one row produced with shipmentColumns.
func scanShipmentRow(rows *sql.Rows) (ShipmentResponse, error) {
	var (
		resp        ShipmentResponse
		id          uuid.UUID
		weight      decimal.NullDecimal
		departureID *uuid.UUID
	)

	err := rows.Scan(
		&id,
		&resp.WaybillNumber,
		&resp.SenderName,
		&resp.SenderPhone,
		&resp.ReceiverName,
		&resp.ReceiverPhone,
		&resp.Description,
		&weight,
		&resp.DeclaredValue,
		&resp.Price,
		&resp.Route,
		&resp.Nature,
		&resp.MailType,
		&resp.IsFree,
		&resp.Status,
		&resp.IsConfirmed,
		&resp.IsCancelled,
		&resp.ConfirmedAt,
		&resp.CancelledAt,
		&resp.CancelReason,
		&departureID,
		&resp.CreatedAt,
	)
	if err != nil {
		return ShipmentResponse{}, err
	}

	shipmentID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return ShipmentResponse{}, err
	}
	resp.ID = shipmentID

	if weight.Valid {
		w := weight.Decimal
		resp.Weight = &w
	}

	if departureID != nil {
		depID, idErr := kernel.UUIDFromBytes((*departureID)[:])
		if idErr != nil {
			return ShipmentResponse{}, idErr
		}
		resp.DepartureID = &depID
	}

	return resp, nil
}
