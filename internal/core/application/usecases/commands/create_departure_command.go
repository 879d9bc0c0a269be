package commands

import (
	"errors"

	"transit/internal/core/domain/model/departure"
	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/guard"
)

var ErrCreateDepartureCommandIsNotConstructed = errors.New(
	"CreateDepartureCommand must be created via NewCreateDepartureCommand constructor",
)

// CreateDepartureCommand represents a request to open a new departure batch.
type CreateDepartureCommand struct { //nolint:recvcheck //using for validation
	departureID kernel.UUID
	fields      departure.Fields
	actor       kernel.Actor

	guard guard.ConstructorGuard
}

// NewCreateDepartureCommand creates a validated departure creation command.
func NewCreateDepartureCommand(
	departureID kernel.UUID,
	fields departure.Fields,
	actor kernel.Actor,
) (CreateDepartureCommand, error) {
	cmd := CreateDepartureCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDepartureID(departureID),
		cmd.setFields(fields),
		cmd.setActor(actor),
	); err != nil {
		return CreateDepartureCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDepartureCommand) Validate() error {
	return c.guard.Validate(ErrCreateDepartureCommandIsNotConstructed)
}

// DepartureID returns the identifier for the new departure.
func (c CreateDepartureCommand) DepartureID() kernel.UUID {
	return c.departureID
}

// Fields returns the departure header fields.
func (c CreateDepartureCommand) Fields() departure.Fields {
	return c.fields
}

// Actor returns the acting user.
func (c CreateDepartureCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *CreateDepartureCommand) setDepartureID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.departureID = id
	return nil
}

func (c *CreateDepartureCommand) setFields(fields departure.Fields) error {
	if err := fields.Validate(); err != nil {
		return err
	}
	c.fields = fields
	return nil
}

func (c *CreateDepartureCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
