package queries

import (
	"context"
	"time"

	"transit/internal/core/domain/model/departure"
	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/shipment"
	"transit/internal/core/domain/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// loadDistributionRecords builds the revenue snapshot every distribution
// report computes over: non-cancelled shipments of closed departures whose
// seal date falls in the window, inclusive at both ends. Cancelled members
// are excluded here once so the calculator never sees them.
func loadDistributionRecords(
	ctx context.Context,
	db *gorm.DB,
	from, to time.Time,
) ([]services.ShipmentRecord, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.waybill_number,
			s.weight,
			s.price,
			s.nature,
			s.mail_type,
			d.id,
			d.driver_id,
			d.sealed_at
		FROM shipments s
		JOIN departures d ON d.id = s.departure_id
		WHERE d.status = ?
		  AND d.sealed_at >= ?
		  AND d.sealed_at <= ?
		  AND NOT s.is_cancelled
		ORDER BY s.waybill_number
	`, int(departure.StatusClosed), from, to).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]services.ShipmentRecord, 0)

	for rows.Next() {
		var (
			shipmentID  uuid.UUID
			departureID uuid.UUID
			driverID    *uuid.UUID
			weight      decimal.NullDecimal
			rec         services.ShipmentRecord
			nature      int
			mailType    int
		)

		err = rows.Scan(
			&shipmentID,
			&rec.WaybillNumber,
			&weight,
			&rec.Price,
			&nature,
			&mailType,
			&departureID,
			&driverID,
			&rec.SealedAt,
		)
		if err != nil {
			return nil, err
		}

		sID, idErr := kernel.UUIDFromBytes(shipmentID[:])
		if idErr != nil {
			return nil, idErr
		}
		rec.ShipmentID = sID

		dID, idErr := kernel.UUIDFromBytes(departureID[:])
		if idErr != nil {
			return nil, idErr
		}
		rec.DepartureID = dID

		if driverID != nil {
			converted, idErr := kernel.UUIDFromBytes((*driverID)[:])
			if idErr != nil {
				return nil, idErr
			}
			rec.DriverID = &converted
		}

		if weight.Valid {
			rec.Weight = weight.Decimal
		}

		rec.Nature = shipment.Nature(nature)
		rec.MailType = shipment.MailType(mailType)

		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
