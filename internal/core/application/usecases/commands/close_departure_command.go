package commands

import (
	"errors"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/guard"
)

var ErrCloseDepartureCommandIsNotConstructed = errors.New(
	"CloseDepartureCommand must be created via NewCloseDepartureCommand constructor",
)

// CloseDepartureCommand represents a request to close a sealed departure,
// making it eligible for revenue distribution.
type CloseDepartureCommand struct { //nolint:recvcheck //using for validation
	departureID kernel.UUID
	actor       kernel.Actor

	guard guard.ConstructorGuard
}

// NewCloseDepartureCommand creates a validated close command.
func NewCloseDepartureCommand(departureID kernel.UUID, actor kernel.Actor) (CloseDepartureCommand, error) {
	cmd := CloseDepartureCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDepartureID(departureID),
		cmd.setActor(actor),
	); err != nil {
		return CloseDepartureCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CloseDepartureCommand) Validate() error {
	return c.guard.Validate(ErrCloseDepartureCommandIsNotConstructed)
}

// DepartureID returns the departure to close.
func (c CloseDepartureCommand) DepartureID() kernel.UUID {
	return c.departureID
}

// Actor returns the acting user.
func (c CloseDepartureCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *CloseDepartureCommand) setDepartureID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.departureID = id
	return nil
}

func (c *CloseDepartureCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
