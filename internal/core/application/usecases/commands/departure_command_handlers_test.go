package commands_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"transit/internal/core/application/usecases/commands"
	"transit/internal/core/domain/model/departure"
	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/shipment"
	"transit/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDepartureCommandHandler(t *testing.T) {
	t.Run("creates an open departure", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		handler := commands.NewCreateDepartureCommandHandler(fakeDepartureUoWFactory{uow})
		actor := testActor(t, kernel.RoleOperator)

		departureID := kernel.NewUUID()
		cmd, err := commands.NewCreateDepartureCommand(departureID, departure.Fields{Route: "Chisinau - Cahul"}, actor)
		require.NoError(t, err)

		created, err := handler.Handle(context.Background(), cmd)

		require.NoError(t, err)
		assert.True(t, created.ID().IsEqual(departureID))
		assert.Equal(t, departure.StatusOpen, created.Status())
		assert.True(t, created.CreatedBy().IsEqual(actor.ID()))
		assert.True(t, uow.committed)
	})

	t.Run("requires a route at command construction", func(t *testing.T) {
		_, err := commands.NewCreateDepartureCommand(kernel.NewUUID(), departure.Fields{}, testActor(t, kernel.RoleOperator))
		require.Error(t, err)
	})
}

func TestAssignShipmentsCommandHandler(t *testing.T) {
	t.Run("assigns a batch to an open departure", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedDeparture(t, uow)
		first := storedShipment(t, uow, "TC-2026-0001")
		second := storedShipment(t, uow, "TC-2026-0002")
		handler := commands.NewAssignShipmentsCommandHandler(fakeUoWFactory{uow})

		cmd, err := commands.NewAssignShipmentsCommand(target.ID(),
			[]kernel.UUID{first.ID(), second.ID()}, testActor(t, kernel.RoleOperator))
		require.NoError(t, err)

		assigned, err := handler.Handle(context.Background(), cmd)

		require.NoError(t, err)
		require.Len(t, assigned, 2)
		for _, member := range assigned {
			assert.Equal(t, shipment.StatusAssigned, member.Status())
			require.NotNil(t, member.Departure())
			assert.True(t, member.Departure().IsEqual(target.ID()))
		}
		assert.True(t, uow.committed)
	})

	t.Run("fails wholesale when any shipment is missing", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedDeparture(t, uow)
		first := storedShipment(t, uow, "TC-2026-0001")
		handler := commands.NewAssignShipmentsCommandHandler(fakeUoWFactory{uow})

		cmd, err := commands.NewAssignShipmentsCommand(target.ID(),
			[]kernel.UUID{first.ID(), kernel.NewUUID()}, testActor(t, kernel.RoleOperator))
		require.NoError(t, err)

		_, err = handler.Handle(context.Background(), cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.False(t, uow.committed)
	})

	t.Run("rejects a sealed departure", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedDeparture(t, uow)
		require.NoError(t, target.Seal("BG-2026-0001", kernel.NewUUID(), time.Now().UTC()))
		member := storedShipment(t, uow, "TC-2026-0001")
		handler := commands.NewAssignShipmentsCommandHandler(fakeUoWFactory{uow})

		cmd, err := commands.NewAssignShipmentsCommand(target.ID(),
			[]kernel.UUID{member.ID()}, testActor(t, kernel.RoleOperator))
		require.NoError(t, err)

		_, err = handler.Handle(context.Background(), cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Nil(t, member.Departure())
	})

	t.Run("rejects a cancelled shipment", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedDeparture(t, uow)
		member := storedShipment(t, uow, "TC-2026-0001")
		require.NoError(t, member.Cancel("reason", kernel.NewUUID(), time.Now().UTC()))
		handler := commands.NewAssignShipmentsCommandHandler(fakeUoWFactory{uow})

		cmd, err := commands.NewAssignShipmentsCommand(target.ID(),
			[]kernel.UUID{member.ID()}, testActor(t, kernel.RoleOperator))
		require.NoError(t, err)

		_, err = handler.Handle(context.Background(), cmd)

		require.Error(t, err)
		assert.False(t, uow.committed)
	})

	t.Run("requires at least one shipment", func(t *testing.T) {
		_, err := commands.NewAssignShipmentsCommand(kernel.NewUUID(), nil, testActor(t, kernel.RoleOperator))
		require.Error(t, err)
	})
}

func TestRemoveShipmentCommandHandler(t *testing.T) {
	t.Run("detaches a member from an open departure", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedDeparture(t, uow)
		member := storedShipment(t, uow, "TC-2026-0001")
		require.NoError(t, member.AssignTo(target.ID()))
		handler := commands.NewRemoveShipmentCommandHandler(fakeUoWFactory{uow})

		cmd, err := commands.NewRemoveShipmentCommand(target.ID(), member.ID(), testActor(t, kernel.RoleOperator))
		require.NoError(t, err)

		removed, err := handler.Handle(context.Background(), cmd)

		require.NoError(t, err)
		assert.Equal(t, shipment.StatusConfirmed, removed.Status())
		assert.Nil(t, removed.Departure())
		assert.True(t, uow.committed)
	})

	t.Run("rejects a shipment attached elsewhere", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedDeparture(t, uow)
		other := storedDeparture(t, uow)
		member := storedShipment(t, uow, "TC-2026-0001")
		require.NoError(t, member.AssignTo(other.ID()))
		handler := commands.NewRemoveShipmentCommandHandler(fakeUoWFactory{uow})

		cmd, err := commands.NewRemoveShipmentCommand(target.ID(), member.ID(), testActor(t, kernel.RoleOperator))
		require.NoError(t, err)

		_, err = handler.Handle(context.Background(), cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("rejects a sealed departure", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedDeparture(t, uow)
		member := storedShipment(t, uow, "TC-2026-0001")
		require.NoError(t, member.AssignTo(target.ID()))
		require.NoError(t, target.Seal("BG-2026-0001", kernel.NewUUID(), time.Now().UTC()))
		handler := commands.NewRemoveShipmentCommandHandler(fakeUoWFactory{uow})

		cmd, err := commands.NewRemoveShipmentCommand(target.ID(), member.ID(), testActor(t, kernel.RoleOperator))
		require.NoError(t, err)

		_, err = handler.Handle(context.Background(), cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestSealDepartureCommandHandler(t *testing.T) {
	seal := func(t *testing.T, uow *fakeUnitOfWork, generator *fakeGenerator, target *departure.Departure) (*departure.Departure, error) {
		t.Helper()

		handler := commands.NewSealDepartureCommandHandler(fakeUoWFactory{uow}, generator)
		cmd, err := commands.NewSealDepartureCommand(target.ID(), testActor(t, kernel.RoleManager))
		require.NoError(t, err)
		return handler.Handle(context.Background(), cmd)
	}

	t.Run("seals, locks pricing, and attaches the document", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedDeparture(t, uow)
		member := storedShipment(t, uow, "TC-2026-0001")
		require.NoError(t, member.AssignTo(target.ID()))
		generator := &fakeGenerator{}

		sealed, err := seal(t, uow, generator, target)

		require.NoError(t, err)
		assert.Equal(t, departure.StatusSealed, sealed.Status())
		require.NotNil(t, sealed.GeneralWaybillNumber())
		assert.Equal(t, fmt.Sprintf("BG-%d-0001", time.Now().UTC().Year()), *sealed.GeneralWaybillNumber())
		assert.NotEmpty(t, sealed.DocumentPath())
		assert.True(t, member.IsConfirmed(), "member pricing must be locked")
		assert.Equal(t, 1, generator.calls)
		assert.True(t, uow.committed)
	})

	t.Run("refuses to seal an empty departure", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedDeparture(t, uow)
		generator := &fakeGenerator{}

		_, err := seal(t, uow, generator, target)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, departure.StatusOpen, target.Status())
		assert.Zero(t, generator.calls)
		assert.False(t, uow.committed)
	})

	t.Run("a cancelled member blocks the seal", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedDeparture(t, uow)
		active := storedShipment(t, uow, "TC-2026-0001")
		require.NoError(t, active.AssignTo(target.ID()))
		cancelled := storedShipment(t, uow, "TC-2026-0002")
		require.NoError(t, cancelled.AssignTo(target.ID()))
		require.NoError(t, cancelled.Cancel("reason", kernel.NewUUID(), time.Now().UTC()))
		generator := &fakeGenerator{}

		_, err := seal(t, uow, generator, target)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, departure.StatusOpen, target.Status())
		assert.Nil(t, target.GeneralWaybillNumber())
		assert.False(t, active.IsConfirmed(), "no pricing lock when the seal is refused")
		assert.Zero(t, generator.calls)
		assert.False(t, uow.committed)
	})

	t.Run("an all-cancelled membership blocks the seal", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedDeparture(t, uow)
		member := storedShipment(t, uow, "TC-2026-0001")
		require.NoError(t, member.AssignTo(target.ID()))
		require.NoError(t, member.Cancel("reason", kernel.NewUUID(), time.Now().UTC()))

		_, err := seal(t, uow, &fakeGenerator{}, target)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("generation failure aborts the seal", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedDeparture(t, uow)
		member := storedShipment(t, uow, "TC-2026-0001")
		require.NoError(t, member.AssignTo(target.ID()))
		generator := &fakeGenerator{err: errors.New("disk full")}

		_, err := seal(t, uow, generator, target)

		require.Error(t, err)
		assert.False(t, uow.committed)
		assert.True(t, uow.rolledBack)
		assert.Empty(t, target.DocumentPath())
	})

	t.Run("member without weight blocks the seal", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedDeparture(t, uow)

		details := testDetails()
		details.Weight = nil
		weightless, err := shipment.NewShipment(kernel.NewUUID(), "TC-2026-0003", details, time.Now().UTC())
		require.NoError(t, err)
		require.NoError(t, weightless.AssignTo(target.ID()))
		uow.shipments[weightless.ID()] = weightless

		_, err = seal(t, uow, &fakeGenerator{}, target)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.False(t, uow.committed)
	})
}

func TestCloseDepartureCommandHandler(t *testing.T) {
	t.Run("closes a sealed departure", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedDeparture(t, uow)
		require.NoError(t, target.Seal("BG-2026-0001", kernel.NewUUID(), time.Now().UTC()))
		handler := commands.NewCloseDepartureCommandHandler(fakeDepartureUoWFactory{uow})
		actor := testActor(t, kernel.RoleManager)

		cmd, err := commands.NewCloseDepartureCommand(target.ID(), actor)
		require.NoError(t, err)

		closed, err := handler.Handle(context.Background(), cmd)

		require.NoError(t, err)
		assert.Equal(t, departure.StatusClosed, closed.Status())
		require.NotNil(t, closed.ClosedBy())
		assert.True(t, closed.ClosedBy().IsEqual(actor.ID()))
		assert.True(t, uow.committed)
	})

	t.Run("never closes an open departure directly", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedDeparture(t, uow)
		handler := commands.NewCloseDepartureCommandHandler(fakeDepartureUoWFactory{uow})

		cmd, err := commands.NewCloseDepartureCommand(target.ID(), testActor(t, kernel.RoleManager))
		require.NoError(t, err)

		_, err = handler.Handle(context.Background(), cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestDeleteDepartureCommandHandler(t *testing.T) {
	t.Run("manager deletes an open departure and unlinks members", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedDeparture(t, uow)
		member := storedShipment(t, uow, "TC-2026-0001")
		require.NoError(t, member.AssignTo(target.ID()))
		cancelled := storedShipment(t, uow, "TC-2026-0002")
		require.NoError(t, cancelled.AssignTo(target.ID()))
		require.NoError(t, cancelled.Cancel("reason", kernel.NewUUID(), time.Now().UTC()))
		handler := commands.NewDeleteDepartureCommandHandler(fakeUoWFactory{uow})

		cmd, err := commands.NewDeleteDepartureCommand(target.ID(), testActor(t, kernel.RoleManager))
		require.NoError(t, err)

		err = handler.Handle(context.Background(), cmd)

		require.NoError(t, err)
		assert.NotContains(t, uow.departures, target.ID())
		assert.Equal(t, shipment.StatusConfirmed, member.Status())
		assert.Nil(t, member.Departure())
		assert.Equal(t, shipment.StatusCancelled, cancelled.Status(), "cancelled members keep their status")
		assert.Nil(t, cancelled.Departure())
		assert.True(t, uow.committed)
	})

	t.Run("manager cannot delete a sealed departure", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedDeparture(t, uow)
		require.NoError(t, target.Seal("BG-2026-0001", kernel.NewUUID(), time.Now().UTC()))
		handler := commands.NewDeleteDepartureCommandHandler(fakeUoWFactory{uow})

		cmd, err := commands.NewDeleteDepartureCommand(target.ID(), testActor(t, kernel.RoleManager))
		require.NoError(t, err)

		err = handler.Handle(context.Background(), cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrForbidden)
		assert.Contains(t, uow.departures, target.ID())
	})

	t.Run("admin deletes a sealed departure", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedDeparture(t, uow)
		require.NoError(t, target.Seal("BG-2026-0001", kernel.NewUUID(), time.Now().UTC()))
		handler := commands.NewDeleteDepartureCommandHandler(fakeUoWFactory{uow})

		cmd, err := commands.NewDeleteDepartureCommand(target.ID(), testActor(t, kernel.RoleAdmin))
		require.NoError(t, err)

		err = handler.Handle(context.Background(), cmd)

		require.NoError(t, err)
		assert.NotContains(t, uow.departures, target.ID())
	})
}
