package queries

import (
	"context"

	"transit/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetShipmentQueryHandler retrieves single shipments from the database.
type GetShipmentQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentQueryHandler creates a handler for shipment lookups.
func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

// Handle executes the lookup.
func (h GetShipmentQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentQuery,
) (ShipmentResponse, error) {
	if err := query.Validate(); err != nil {
		return ShipmentResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(
		"SELECT "+shipmentColumns+" FROM shipments WHERE id = ?",
		query.ShipmentID().Bytes(),
	).Rows()
	if err != nil {
		return ShipmentResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return ShipmentResponse{}, err
		}
		return ShipmentResponse{}, errs.NewObjectNotFoundError("shipment", query.ShipmentID().String())
	}

	return scanShipmentRow(rows)
}
