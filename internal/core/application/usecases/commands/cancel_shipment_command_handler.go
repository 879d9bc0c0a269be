package commands

import (
	"context"
	"time"

	"transit/internal/core/domain/model/shipment"
	"transit/internal/pkg/errs"
)

// CancelShipmentCommandHandler soft-cancels shipments. Cancellation is a
// manager privilege and works regardless of the owning departure's phase;
// the shipment keeps its departure linkage for audit.
type CancelShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewCancelShipmentCommandHandler creates a handler for shipment cancellation.
func NewCancelShipmentCommandHandler(uowFactory ShipmentUoWFactory) CancelShipmentCommandHandler {
	return CancelShipmentCommandHandler{uowFactory: uowFactory}
}

// Handle processes the cancellation command and returns the cancelled shipment.
func (h CancelShipmentCommandHandler) Handle(
	ctx context.Context,
	command CancelShipmentCommand,
) (*shipment.Shipment, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	if !command.Actor().CanCancelShipments() {
		return nil, errs.NewForbiddenError("cancel shipments", command.Actor().Role().String())
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

	if err = aggregate.Cancel(command.Reason(), command.Actor().ID(), time.Now().UTC()); err != nil {
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
