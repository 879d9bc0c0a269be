package commands

import (
	"context"

	"transit/internal/core/domain/model/shipment"
)

// AssignShipmentsCommandHandler attaches shipments to an open departure.
// Every requested shipment must exist and be attachable; a single failure
// rolls back the whole batch.
type AssignShipmentsCommandHandler struct {
	uowFactory UoWFactory
}

// NewAssignShipmentsCommandHandler creates a handler for batch assignment.
func NewAssignShipmentsCommandHandler(uowFactory UoWFactory) AssignShipmentsCommandHandler {
	return AssignShipmentsCommandHandler{uowFactory: uowFactory}
}

// Handle processes the assignment command and returns the attached shipments.
func (h AssignShipmentsCommandHandler) Handle(
	ctx context.Context,
	command AssignShipmentsCommand,
) ([]*shipment.Shipment, error) {
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

	if err = target.EnsureOpen("assign shipments"); err != nil {
		return nil, err
	}

	shipmentRepo := uow.ShipmentRepository()

	aggregates, err := shipmentRepo.GetByIDs(ctx, command.ShipmentIDs())
	if err != nil {
		return nil, err
	}

	for _, aggregate := range aggregates {
		if err = aggregate.AssignTo(target.ID()); err != nil {
			return nil, err
		}

		if err = shipmentRepo.Update(ctx, aggregate); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregates, nil
}
