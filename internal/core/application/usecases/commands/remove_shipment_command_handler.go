package commands

import (
	"context"

	"transit/internal/core/domain/model/shipment"
	"transit/internal/pkg/errs"
)

// RemoveShipmentCommandHandler detaches a shipment from an open departure,
// reverting it to the unattached confirmed pool.
type RemoveShipmentCommandHandler struct {
	uowFactory UoWFactory
}

// NewRemoveShipmentCommandHandler creates a handler for shipment removal.
func NewRemoveShipmentCommandHandler(uowFactory UoWFactory) RemoveShipmentCommandHandler {
	return RemoveShipmentCommandHandler{uowFactory: uowFactory}
}

// Handle processes the removal command and returns the detached shipment.
func (h RemoveShipmentCommandHandler) Handle(
	ctx context.Context,
	command RemoveShipmentCommand,
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

	target, err := uow.DepartureRepository().Get(ctx, command.DepartureID())
	if err != nil {
		return nil, err
	}

	if err = target.EnsureOpen("remove shipment"); err != nil {
		return nil, err
	}

	shipmentRepo := uow.ShipmentRepository()

	aggregate, err := shipmentRepo.Get(ctx, command.ShipmentID())
	if err != nil {
		return nil, err
	}

	if owner := aggregate.Departure(); owner == nil || !owner.IsEqual(target.ID()) {
		return nil, errs.NewInvalidStateError(
			"shipment", aggregate.Status().String(), "remove from a departure it is not part of")
	}

	if err = aggregate.Detach(); err != nil {
		return nil, err
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
