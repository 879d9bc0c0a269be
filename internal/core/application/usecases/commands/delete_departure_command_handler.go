package commands

import (
	"context"

	"transit/internal/pkg/errs"
)

// DeleteDepartureCommandHandler removes departures. Managers may delete only
// open departures; administrators may delete any. Member shipments are
// detached back to the unattached pool, never deleted with the batch.
type DeleteDepartureCommandHandler struct {
	uowFactory UoWFactory
}

// NewDeleteDepartureCommandHandler creates a handler for departure deletion.
func NewDeleteDepartureCommandHandler(uowFactory UoWFactory) DeleteDepartureCommandHandler {
	return DeleteDepartureCommandHandler{uowFactory: uowFactory}
}

// Handle processes the delete command.
func (h DeleteDepartureCommandHandler) Handle(ctx context.Context, command DeleteDepartureCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	departureRepo := uow.DepartureRepository()

	target, err := departureRepo.Get(ctx, command.DepartureID())
	if err != nil {
		return err
	}

	if !command.Actor().CanDeleteDeparture(target.IsOpen()) {
		return errs.NewForbiddenError("delete a non-open departure", command.Actor().Role().String())
	}

	shipmentRepo := uow.ShipmentRepository()

	members, err := shipmentRepo.GetByDeparture(ctx, target.ID())
	if err != nil {
		return err
	}

	for _, member := range members {
		member.Unlink()

		if err = shipmentRepo.Update(ctx, member); err != nil {
			return err
		}
	}

	if err = departureRepo.Delete(ctx, target.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
