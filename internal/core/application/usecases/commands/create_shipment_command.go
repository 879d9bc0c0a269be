package commands

import (
	"errors"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/shipment"
	"transit/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand represents a request to register a new shipment.
// The waybill number is not part of the command: it is allocated inside the
// handler's transaction so the derived number and the inserted row commit
// together.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	details    shipment.Details
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a validated registration command.
func NewCreateShipmentCommand(
	shipmentID kernel.UUID,
	details shipment.Details,
	actor kernel.Actor,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setDetails(details),
		cmd.setActor(actor),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier for the new shipment.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Details returns the descriptive attributes of the new shipment.
func (c CreateShipmentCommand) Details() shipment.Details {
	return c.details
}

// Actor returns the acting user.
func (c CreateShipmentCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *CreateShipmentCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shipmentID = id
	return nil
}

func (c *CreateShipmentCommand) setDetails(details shipment.Details) error {
	if err := details.Validate(); err != nil {
		return err
	}
	c.details = details
	return nil
}

func (c *CreateShipmentCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
