package commands

import (
	"errors"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/guard"
)

var ErrSealDepartureCommandIsNotConstructed = errors.New(
	"SealDepartureCommand must be created via NewSealDepartureCommand constructor",
)

// SealDepartureCommand represents a request to seal an open departure,
// freezing its membership and issuing its general waybill number.
type SealDepartureCommand struct { //nolint:recvcheck //using for validation
	departureID kernel.UUID
	actor       kernel.Actor

	guard guard.ConstructorGuard
}

// NewSealDepartureCommand creates a validated seal command.
func NewSealDepartureCommand(departureID kernel.UUID, actor kernel.Actor) (SealDepartureCommand, error) {
	cmd := SealDepartureCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDepartureID(departureID),
		cmd.setActor(actor),
	); err != nil {
		return SealDepartureCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SealDepartureCommand) Validate() error {
	return c.guard.Validate(ErrSealDepartureCommandIsNotConstructed)
}

// DepartureID returns the departure to seal.
func (c SealDepartureCommand) DepartureID() kernel.UUID {
	return c.departureID
}

// Actor returns the acting user.
func (c SealDepartureCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *SealDepartureCommand) setDepartureID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.departureID = id
	return nil
}

func (c *SealDepartureCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
