package commands

import (
	"errors"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/errs"
	"transit/internal/pkg/guard"
)

var ErrAssignShipmentsCommandIsNotConstructed = errors.New(
	"AssignShipmentsCommand must be created via NewAssignShipmentsCommand constructor",
)

// AssignShipmentsCommand represents a request to attach a batch of shipments
// to an open departure. The batch succeeds or fails wholesale.
type AssignShipmentsCommand struct { //nolint:recvcheck //using for validation
	departureID kernel.UUID
	shipmentIDs []kernel.UUID
	actor       kernel.Actor

	guard guard.ConstructorGuard
}

// NewAssignShipmentsCommand creates a validated assignment command.
func NewAssignShipmentsCommand(
	departureID kernel.UUID,
	shipmentIDs []kernel.UUID,
	actor kernel.Actor,
) (AssignShipmentsCommand, error) {
	cmd := AssignShipmentsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDepartureID(departureID),
		cmd.setShipmentIDs(shipmentIDs),
		cmd.setActor(actor),
	); err != nil {
		return AssignShipmentsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignShipmentsCommand) Validate() error {
	return c.guard.Validate(ErrAssignShipmentsCommandIsNotConstructed)
}

// DepartureID returns the target departure.
func (c AssignShipmentsCommand) DepartureID() kernel.UUID {
	return c.departureID
}

// ShipmentIDs returns the shipments to attach.
func (c AssignShipmentsCommand) ShipmentIDs() []kernel.UUID {
	return c.shipmentIDs
}

// Actor returns the acting user.
func (c AssignShipmentsCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *AssignShipmentsCommand) setDepartureID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.departureID = id
	return nil
}

func (c *AssignShipmentsCommand) setShipmentIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("shipmentIDs")
	}

	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.shipmentIDs = ids
	return nil
}

func (c *AssignShipmentsCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
