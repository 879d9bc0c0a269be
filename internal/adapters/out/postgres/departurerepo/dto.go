// Package departurerepo provides data transfer objects and mapping functions
// for departure persistence. It implements the repository pattern for the
// departure aggregate, handling the conversion between domain entities and
// database representations.
package departurerepo

import (
	"time"

	"transit/internal/core/domain/model/departure"
	"transit/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DepartureDTO represents the database structure for persisting departure
// aggregates. The general waybill number is nullable until sealing and
// carries a unique constraint once issued.
type DepartureDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	GeneralWaybillNumber *string   `gorm:"uniqueIndex"`
	Status               int       `gorm:"index"`
	Route                string
	VehicleID            *uuid.UUID `gorm:"type:uuid"`
	DriverID             *uuid.UUID `gorm:"type:uuid;index"`
	Notes                string
	DocumentPath         string
	CreatedBy            uuid.UUID `gorm:"type:uuid"`
	CreatedAt            time.Time
	SealedAt             *time.Time `gorm:"index"`
	SealedBy             *uuid.UUID `gorm:"type:uuid"`
	ClosedAt             *time.Time
	ClosedBy             *uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for departure entities.
func (DepartureDTO) TableName() string {
	return "departures"
}

// fromDomain converts a departure domain aggregate to its database representation.
func fromDomain(aggregate *departure.Departure) DepartureDTO {
	fields := aggregate.Fields()

	return DepartureDTO{
		ID:                   aggregate.ID().Bytes(),
		GeneralWaybillNumber: aggregate.GeneralWaybillNumber(),
		Status:               int(aggregate.Status()),
		Route:                fields.Route,
		VehicleID:            uuidPtr(fields.VehicleID),
		DriverID:             uuidPtr(fields.DriverID),
		Notes:                fields.Notes,
		DocumentPath:         aggregate.DocumentPath(),
		CreatedBy:            aggregate.CreatedBy().Bytes(),
		CreatedAt:            aggregate.CreatedAt(),
		SealedAt:             aggregate.SealedAt(),
		SealedBy:             uuidPtr(aggregate.SealedBy()),
		ClosedAt:             aggregate.ClosedAt(),
		ClosedBy:             uuidPtr(aggregate.ClosedBy()),
	}
}

// toDomain converts a database DTO to a departure domain aggregate using
// RestoreDeparture.
func toDomain(dto DepartureDTO) (*departure.Departure, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	vehicleID, err := kernelPtr(dto.VehicleID)
	if err != nil {
		return nil, err
	}

	driverID, err := kernelPtr(dto.DriverID)
	if err != nil {
		return nil, err
	}

	sealedBy, err := kernelPtr(dto.SealedBy)
	if err != nil {
		return nil, err
	}

	closedBy, err := kernelPtr(dto.ClosedBy)
	if err != nil {
		return nil, err
	}

	fields := departure.Fields{
		Route:     dto.Route,
		VehicleID: vehicleID,
		DriverID:  driverID,
		Notes:     dto.Notes,
	}

	return departure.RestoreDeparture(
		id,
		dto.GeneralWaybillNumber,
		departure.Status(dto.Status),
		fields,
		dto.DocumentPath,
		createdBy,
		dto.CreatedAt,
		dto.SealedAt,
		sealedBy,
		dto.ClosedAt,
		closedBy,
	)
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}

	converted, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}

	return &converted, nil
}
