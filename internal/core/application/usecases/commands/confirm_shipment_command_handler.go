package commands

import (
	"context"
	"time"

	"transit/internal/core/domain/model/shipment"
)

// ConfirmShipmentCommandHandler confirms pending shipments.
// Confirming an already confirmed shipment fails with an invalid-state error.
type ConfirmShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewConfirmShipmentCommandHandler creates a handler for shipment confirmation.
func NewConfirmShipmentCommandHandler(uowFactory ShipmentUoWFactory) ConfirmShipmentCommandHandler {
	return ConfirmShipmentCommandHandler{uowFactory: uowFactory}
}

// Handle processes the confirmation command and returns the updated shipment.
func (h ConfirmShipmentCommandHandler) Handle(
	ctx context.Context,
	command ConfirmShipmentCommand,
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

	repo := uow.ShipmentRepository()

	aggregate, err := repo.Get(ctx, command.ShipmentID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Confirm(command.Actor().ID(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
