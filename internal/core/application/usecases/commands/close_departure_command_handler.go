package commands

import (
	"context"
	"time"

	"transit/internal/core/domain/model/departure"
)

// CloseDepartureCommandHandler finalizes sealed departures. Closing admits
// the departure's sealed revenue into the distribution reports.
type CloseDepartureCommandHandler struct {
	uowFactory DepartureUoWFactory
}

// NewCloseDepartureCommandHandler creates a handler for departure closing.
func NewCloseDepartureCommandHandler(uowFactory DepartureUoWFactory) CloseDepartureCommandHandler {
	return CloseDepartureCommandHandler{uowFactory: uowFactory}
}

// Handle processes the close command and returns the closed departure.
func (h CloseDepartureCommandHandler) Handle(
	ctx context.Context,
	command CloseDepartureCommand,
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

	if err = aggregate.Close(command.Actor().ID(), time.Now().UTC()); err != nil {
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
