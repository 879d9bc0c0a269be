package commands

import (
	"context"
	"time"

	"transit/internal/core/domain/model/shipment"
	"transit/internal/core/ports"
)

// CreateShipmentCommandHandler registers new shipments. Allocates the waybill
// number and inserts the shipment within a single transaction; a duplicate
// number raced in by a concurrent writer surfaces as a retryable conflict.
type CreateShipmentCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateShipmentCommandHandler creates a handler for shipment registration.
func NewCreateShipmentCommandHandler(uowFactory UoWFactory) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{uowFactory: uowFactory}
}

// Handle processes the registration command and returns the created shipment.
func (h CreateShipmentCommandHandler) Handle(
	ctx context.Context,
	command CreateShipmentCommand,
) (*shipment.Shipment, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	number, err := uow.SequenceAllocator().Next(ctx, ports.ShipmentWaybillScope)
	if err != nil {
		return nil, err
	}

	newShipment, err := shipment.NewShipment(command.ShipmentID(), number, command.Details(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = uow.ShipmentRepository().Add(ctx, newShipment); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newShipment, nil
}
