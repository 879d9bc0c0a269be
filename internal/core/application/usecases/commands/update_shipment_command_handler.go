package commands

import (
	"context"

	"transit/internal/core/domain/model/shipment"
)

// UpdateShipmentCommandHandler applies privileged-aware shipment updates.
type UpdateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewUpdateShipmentCommandHandler creates a handler for shipment updates.
func NewUpdateShipmentCommandHandler(uowFactory ShipmentUoWFactory) UpdateShipmentCommandHandler {
	return UpdateShipmentCommandHandler{uowFactory: uowFactory}
}

// Handle processes the update command and returns the updated shipment.
// The confirmed-shipment lock is enforced by the aggregate: the bypass is
// role-gated, not state-gated.
func (h UpdateShipmentCommandHandler) Handle(
	ctx context.Context,
	command UpdateShipmentCommand,
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

	if err = aggregate.Update(command.Details(), command.Actor()); err != nil {
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
