package commands

import (
	"errors"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/shipment"
	"transit/internal/pkg/guard"
)

var ErrUpdateShipmentCommandIsNotConstructed = errors.New(
	"UpdateShipmentCommand must be created via NewUpdateShipmentCommand constructor",
)

// UpdateShipmentCommand represents a request to replace a shipment's
// descriptive attributes. Confirmed shipments resist the update unless the
// actor carries the elevated-edit privilege.
type UpdateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	details    shipment.Details
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

// NewUpdateShipmentCommand creates a validated update command.
func NewUpdateShipmentCommand(
	shipmentID kernel.UUID,
	details shipment.Details,
	actor kernel.Actor,
) (UpdateShipmentCommand, error) {
	cmd := UpdateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setDetails(details),
		cmd.setActor(actor),
	); err != nil {
		return UpdateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the shipment to update.
func (c UpdateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Details returns the replacement attributes.
func (c UpdateShipmentCommand) Details() shipment.Details {
	return c.details
}

// Actor returns the acting user.
func (c UpdateShipmentCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *UpdateShipmentCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shipmentID = id
	return nil
}

func (c *UpdateShipmentCommand) setDetails(details shipment.Details) error {
	if err := details.Validate(); err != nil {
		return err
	}
	c.details = details
	return nil
}

func (c *UpdateShipmentCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
