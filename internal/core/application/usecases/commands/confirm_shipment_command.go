package commands

import (
	"errors"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/guard"
)

var ErrConfirmShipmentCommandIsNotConstructed = errors.New(
	"ConfirmShipmentCommand must be created via NewConfirmShipmentCommand constructor",
)

// ConfirmShipmentCommand represents a request to confirm a pending shipment,
// locking its pricing and weight.
type ConfirmShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

// NewConfirmShipmentCommand creates a validated confirmation command.
func NewConfirmShipmentCommand(shipmentID kernel.UUID, actor kernel.Actor) (ConfirmShipmentCommand, error) {
	cmd := ConfirmShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setActor(actor),
	); err != nil {
		return ConfirmShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmShipmentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmShipmentCommandIsNotConstructed)
}

// ShipmentID returns the shipment to confirm.
func (c ConfirmShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Actor returns the acting user.
func (c ConfirmShipmentCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *ConfirmShipmentCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shipmentID = id
	return nil
}

func (c *ConfirmShipmentCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
