package commands

import (
	"errors"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/errs"
	"transit/internal/pkg/guard"
)

var ErrCancelShipmentCommandIsNotConstructed = errors.New(
	"CancelShipmentCommand must be created via NewCancelShipmentCommand constructor",
)

// CancelShipmentCommand represents a request to soft-cancel a shipment.
// The cancelled row stays on record with its waybill number; the number is
// never reissued.
type CancelShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	reason     string
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

// NewCancelShipmentCommand creates a validated cancellation command.
func NewCancelShipmentCommand(
	shipmentID kernel.UUID,
	reason string,
	actor kernel.Actor,
) (CancelShipmentCommand, error) {
	cmd := CancelShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setReason(reason),
		cmd.setActor(actor),
	); err != nil {
		return CancelShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCancelShipmentCommandIsNotConstructed)
}

// ShipmentID returns the shipment to cancel.
func (c CancelShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Reason returns the mandatory cancellation reason.
func (c CancelShipmentCommand) Reason() string {
	return c.reason
}

// Actor returns the acting user.
func (c CancelShipmentCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *CancelShipmentCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shipmentID = id
	return nil
}

func (c *CancelShipmentCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	c.reason = reason
	return nil
}

func (c *CancelShipmentCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
