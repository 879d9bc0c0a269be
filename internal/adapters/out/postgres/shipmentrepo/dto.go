// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. It implements the repository pattern for the
// shipment aggregate, handling the conversion between domain entities and
// database representations.
package shipmentrepo

import (
	"time"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. The waybill number carries a unique constraint: concurrent
// registrations racing to the same number fail on insert and surface as a
// retryable conflict.
type ShipmentDTO struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	WaybillNumber string           `gorm:"uniqueIndex"`
	SenderName    string           `gorm:"column:sender_name"`
	SenderPhone   string           `gorm:"column:sender_phone"`
	ReceiverName  string           `gorm:"column:receiver_name"`
	ReceiverPhone string           `gorm:"column:receiver_phone"`
	Description   string
	Weight        *decimal.Decimal `gorm:"type:decimal(18,3)"`
	DeclaredValue decimal.Decimal  `gorm:"type:decimal(18,2)"`
	Price         decimal.Decimal  `gorm:"type:decimal(18,2)"`
	Route         string
	Nature        int `gorm:"index"`
	MailType      int
	IsFree        bool
	Status        int `gorm:"index"`
	IsConfirmed   bool
	IsCancelled   bool
	ConfirmedAt   *time.Time
	ConfirmedBy   *uuid.UUID `gorm:"type:uuid"`
	CancelledAt   *time.Time
	CancelledBy   *uuid.UUID `gorm:"type:uuid"`
	CancelReason  string
	DepartureID   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt     time.Time
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// fromDomain converts a shipment domain aggregate to its database representation.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	details := aggregate.Details()

	return ShipmentDTO{
		ID:            aggregate.ID().Bytes(),
		WaybillNumber: aggregate.WaybillNumber(),
		SenderName:    details.Sender.Name,
		SenderPhone:   details.Sender.Phone,
		ReceiverName:  details.Receiver.Name,
		ReceiverPhone: details.Receiver.Phone,
		Description:   details.Description,
		Weight:        details.Weight,
		DeclaredValue: details.DeclaredValue,
		Price:         details.Price,
		Route:         details.Route,
		Nature:        int(details.Nature),
		MailType:      int(details.MailType),
		IsFree:        details.IsFree,
		Status:        int(aggregate.Status()),
		IsConfirmed:   aggregate.IsConfirmed(),
		IsCancelled:   aggregate.IsCancelled(),
		ConfirmedAt:   aggregate.ConfirmedAt(),
		ConfirmedBy:   uuidPtr(aggregate.ConfirmedBy()),
		CancelledAt:   aggregate.CancelledAt(),
		CancelledBy:   uuidPtr(aggregate.CancelledBy()),
		CancelReason:  aggregate.CancelReason(),
		DepartureID:   uuidPtr(aggregate.Departure()),
		CreatedAt:     aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a shipment domain aggregate using
// RestoreShipment, preserving the full lifecycle state.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	confirmedBy, err := kernelPtr(dto.ConfirmedBy)
	if err != nil {
		return nil, err
	}

	cancelledBy, err := kernelPtr(dto.CancelledBy)
	if err != nil {
		return nil, err
	}

	departureID, err := kernelPtr(dto.DepartureID)
	if err != nil {
		return nil, err
	}

	details := shipment.Details{
		Sender:        shipment.Party{Name: dto.SenderName, Phone: dto.SenderPhone},
		Receiver:      shipment.Party{Name: dto.ReceiverName, Phone: dto.ReceiverPhone},
		Description:   dto.Description,
		Weight:        dto.Weight,
		DeclaredValue: dto.DeclaredValue,
		Price:         dto.Price,
		Route:         dto.Route,
		Nature:        shipment.Nature(dto.Nature),
		MailType:      shipment.MailType(dto.MailType),
		IsFree:        dto.IsFree,
	}

	return shipment.RestoreShipment(
		id,
		dto.WaybillNumber,
		details,
		shipment.Status(dto.Status),
		dto.IsConfirmed,
		dto.IsCancelled,
		dto.ConfirmedAt,
		confirmedBy,
		dto.CancelledAt,
		cancelledBy,
		dto.CancelReason,
		departureID,
		dto.CreatedAt,
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
