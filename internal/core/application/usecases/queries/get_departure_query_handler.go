package queries

import (
	"context"

	"transit/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDepartureQueryHandler retrieves departure summaries from the database.
type GetDepartureQueryHandler struct {
	db *gorm.DB
}

// NewGetDepartureQueryHandler creates a handler for departure lookups.
func NewGetDepartureQueryHandler(db *gorm.DB) GetDepartureQueryHandler {
	return GetDepartureQueryHandler{db: db}
}

// Handle executes the lookup. Members are ordered by waybill number.
func (h GetDepartureQueryHandler) Handle(
	ctx context.Context,
	query GetDepartureQuery,
) (GetDepartureResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDepartureResponse{}, err
	}

	headerRows, err := h.db.WithContext(ctx).Raw(
		"SELECT "+departureColumns+" FROM departures d "+departureMemberJoin+" WHERE d.id = ?",
		query.DepartureID().Bytes(),
	).Rows()
	if err != nil {
		return GetDepartureResponse{}, err
	}
	defer headerRows.Close()

	if !headerRows.Next() {
		if err = headerRows.Err(); err != nil {
			return GetDepartureResponse{}, err
		}
		return GetDepartureResponse{}, errs.NewObjectNotFoundError("departure", query.DepartureID().String())
	}

	header, err := scanDepartureRow(headerRows)
	if err != nil {
		return GetDepartureResponse{}, err
	}

	memberRows, err := h.db.WithContext(ctx).Raw(
		"SELECT "+shipmentColumns+" FROM shipments WHERE departure_id = ? ORDER BY waybill_number",
		query.DepartureID().Bytes(),
	).Rows()
	if err != nil {
		return GetDepartureResponse{}, err
	}
	defer memberRows.Close()

	members := make([]ShipmentResponse, 0, header.ShipmentCount)
	for memberRows.Next() {
		member, scanErr := scanShipmentRow(memberRows)
		if scanErr != nil {
			return GetDepartureResponse{}, scanErr
		}
		members = append(members, member)
	}

	if err = memberRows.Err(); err != nil {
		return GetDepartureResponse{}, err
	}

	return GetDepartureResponse{
		Departure: header,
		Members:   members,
	}, nil
}
