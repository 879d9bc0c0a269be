package commands

import (
	"context"
	"time"

	"transit/internal/core/domain/model/departure"
)

// CreateDepartureCommandHandler opens new departure batches. New departures
// carry no general waybill number until sealing.
type CreateDepartureCommandHandler struct {
	uowFactory DepartureUoWFactory
}

// NewCreateDepartureCommandHandler creates a handler for departure creation.
func NewCreateDepartureCommandHandler(uowFactory DepartureUoWFactory) CreateDepartureCommandHandler {
	return CreateDepartureCommandHandler{uowFactory: uowFactory}
}

// Handle processes the creation command and returns the new departure.
func (h CreateDepartureCommandHandler) Handle(
	ctx context.Context,
	command CreateDepartureCommand,
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

	newDeparture, err := departure.NewDeparture(
		command.DepartureID(),
		command.Fields(),
		command.Actor().ID(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.DepartureRepository().Add(ctx, newDeparture); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newDeparture, nil
}
