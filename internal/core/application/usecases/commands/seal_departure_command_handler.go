package commands

import (
	"context"
	"time"

	"transit/internal/core/domain/model/departure"
	"transit/internal/core/ports"
	"transit/internal/pkg/errs"
)

// SealDepartureCommandHandler freezes a departure's membership. Number
// allocation, member pricing locks, document generation and the status
// transition happen in one transaction: any failure leaves the departure
// open with nothing allocated. A departure carrying a cancelled member
// cannot be sealed at all.
type SealDepartureCommandHandler struct {
	uowFactory UoWFactory
	generator  ports.WaybillDocumentGenerator
}

// NewSealDepartureCommandHandler creates a handler for departure sealing.
func NewSealDepartureCommandHandler(
	uowFactory UoWFactory,
	generator ports.WaybillDocumentGenerator,
) SealDepartureCommandHandler {
	return SealDepartureCommandHandler{uowFactory: uowFactory, generator: generator}
}

// Handle processes the seal command and returns the sealed departure.
func (h SealDepartureCommandHandler) Handle(
	ctx context.Context,
	command SealDepartureCommand,
) (*departure.Departure, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	departureRepo := uow.DepartureRepository()

	target, err := departureRepo.Get(ctx, command.DepartureID())
	if err != nil {
		return nil, err
	}

	if err = target.EnsureOpen("seal"); err != nil {
		return nil, err
	}

	shipmentRepo := uow.ShipmentRepository()

	members, err := shipmentRepo.GetByDeparture(ctx, target.ID())
	if err != nil {
		return nil, err
	}

	if len(members) == 0 {
		return nil, errs.NewInvalidStateError("departure", target.Status().String(), "seal without members")
	}

	for _, member := range members {
		if member.IsCancelled() {
			return nil, errs.NewInvalidStateError(
				"shipment", member.Status().String(), "seal with cancelled member")
		}
	}

	now := time.Now().UTC()

	for _, member := range members {
		if err = member.LockPricing(command.Actor().ID(), now); err != nil {
			return nil, err
		}

		if err = shipmentRepo.Update(ctx, member); err != nil {
			return nil, err
		}
	}

	number, err := uow.SequenceAllocator().Next(ctx, ports.GeneralWaybillScope)
	if err != nil {
		return nil, err
	}

	if err = target.Seal(number, command.Actor().ID(), now); err != nil {
		return nil, err
	}

	path, err := h.generator.Generate(ctx, target, members)
	if err != nil {
		return nil, err
	}

	if err = target.AttachDocument(path); err != nil {
		return nil, err
	}

	if err = departureRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return target, nil
}
