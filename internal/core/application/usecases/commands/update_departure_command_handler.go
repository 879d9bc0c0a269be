package commands

import (
	"context"

	"transit/internal/core/domain/model/departure"
)

// UpdateDepartureCommandHandler edits departure header fields while the
// batch is still open.
type UpdateDepartureCommandHandler struct {
	uowFactory DepartureUoWFactory
}

// NewUpdateDepartureCommandHandler creates a handler for departure updates.
func NewUpdateDepartureCommandHandler(uowFactory DepartureUoWFactory) UpdateDepartureCommandHandler {
	return UpdateDepartureCommandHandler{uowFactory: uowFactory}
}

// Handle processes the update command and returns the updated departure.
func (h UpdateDepartureCommandHandler) Handle(
	ctx context.Context,
	command UpdateDepartureCommand,
) (*departure.Departure, error) {
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

	repo := uow.DepartureRepository()

	aggregate, err := repo.Get(ctx, command.DepartureID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Update(command.Fields()); err != nil {
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
