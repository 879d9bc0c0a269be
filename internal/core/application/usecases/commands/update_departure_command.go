package commands

import (
	"errors"

	"transit/internal/core/domain/model/departure"
	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/guard"
)

var ErrUpdateDepartureCommandIsNotConstructed = errors.New(
	"UpdateDepartureCommand must be created via NewUpdateDepartureCommand constructor",
)

// UpdateDepartureCommand represents a request to edit an open departure's
// header fields.
type UpdateDepartureCommand struct { //nolint:recvcheck //using for validation
	departureID kernel.UUID
	fields      departure.Fields
	actor       kernel.Actor

	guard guard.ConstructorGuard
}

// NewUpdateDepartureCommand creates a validated departure update command.
func NewUpdateDepartureCommand(
	departureID kernel.UUID,
	fields departure.Fields,
	actor kernel.Actor,
) (UpdateDepartureCommand, error) {
	cmd := UpdateDepartureCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDepartureID(departureID),
		cmd.setFields(fields),
		cmd.setActor(actor),
	); err != nil {
		return UpdateDepartureCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDepartureCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDepartureCommandIsNotConstructed)
}

// DepartureID returns the departure to update.
func (c UpdateDepartureCommand) DepartureID() kernel.UUID {
	return c.departureID
}

// Fields returns the replacement header fields.
func (c UpdateDepartureCommand) Fields() departure.Fields {
	return c.fields
}

// Actor returns the acting user.
func (c UpdateDepartureCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *UpdateDepartureCommand) setDepartureID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.departureID = id
	return nil
}

func (c *UpdateDepartureCommand) setFields(fields departure.Fields) error {
	if err := fields.Validate(); err != nil {
		return err
	}
	c.fields = fields
	return nil
}

func (c *UpdateDepartureCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
