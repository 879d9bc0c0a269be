package commands

import (
	"errors"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/guard"
)

var ErrDeleteDepartureCommandIsNotConstructed = errors.New(
	"DeleteDepartureCommand must be created via NewDeleteDepartureCommand constructor",
)

// DeleteDepartureCommand represents a request to delete a departure outright.
type DeleteDepartureCommand struct { //nolint:recvcheck //using for validation
	departureID kernel.UUID
	actor       kernel.Actor

	guard guard.ConstructorGuard
}

// NewDeleteDepartureCommand creates a validated delete command.
func NewDeleteDepartureCommand(departureID kernel.UUID, actor kernel.Actor) (DeleteDepartureCommand, error) {
	cmd := DeleteDepartureCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDepartureID(departureID),
		cmd.setActor(actor),
	); err != nil {
		return DeleteDepartureCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteDepartureCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDepartureCommandIsNotConstructed)
}

// DepartureID returns the departure to delete.
func (c DeleteDepartureCommand) DepartureID() kernel.UUID {
	return c.departureID
}

// Actor returns the acting user.
func (c DeleteDepartureCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *DeleteDepartureCommand) setDepartureID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.departureID = id
	return nil
}

func (c *DeleteDepartureCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
