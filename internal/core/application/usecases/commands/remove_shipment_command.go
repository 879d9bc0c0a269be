package commands

import (
	"errors"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/guard"
)

var ErrRemoveShipmentCommandIsNotConstructed = errors.New(
	"RemoveShipmentCommand must be created via NewRemoveShipmentCommand constructor",
)

// RemoveShipmentCommand represents a request to detach a shipment from an
// open departure.
type RemoveShipmentCommand struct { //nolint:recvcheck //using for validation
	departureID kernel.UUID
	shipmentID  kernel.UUID
	actor       kernel.Actor

	guard guard.ConstructorGuard
}

// NewRemoveShipmentCommand creates a validated removal command.
func NewRemoveShipmentCommand(
	departureID kernel.UUID,
	shipmentID kernel.UUID,
	actor kernel.Actor,
) (RemoveShipmentCommand, error) {
	cmd := RemoveShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDepartureID(departureID),
		cmd.setShipmentID(shipmentID),
		cmd.setActor(actor),
	); err != nil {
		return RemoveShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveShipmentCommand) Validate() error {
	return c.guard.Validate(ErrRemoveShipmentCommandIsNotConstructed)
}

// DepartureID returns the departure to detach from.
func (c RemoveShipmentCommand) DepartureID() kernel.UUID {
	return c.departureID
}

// ShipmentID returns the shipment to detach.
func (c RemoveShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Actor returns the acting user.
func (c RemoveShipmentCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *RemoveShipmentCommand) setDepartureID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.departureID = id
	return nil
}

func (c *RemoveShipmentCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shipmentID = id
	return nil
}

func (c *RemoveShipmentCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
