package commands_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"transit/internal/core/application/usecases/commands"
	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/shipment"
	"transit/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateShipmentCommandHandler(t *testing.T) {
	t.Run("allocates a waybill number and persists", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		handler := commands.NewCreateShipmentCommandHandler(fakeUoWFactory{uow})

		shipmentID := kernel.NewUUID()
		cmd, err := commands.NewCreateShipmentCommand(shipmentID, testDetails(), testActor(t, kernel.RoleOperator))
		require.NoError(t, err)

		created, err := handler.Handle(context.Background(), cmd)

		require.NoError(t, err)
		assert.True(t, created.ID().IsEqual(shipmentID))
		assert.Equal(t, fmt.Sprintf("TC-%d-0001", time.Now().UTC().Year()), created.WaybillNumber())
		assert.Equal(t, shipment.StatusPending, created.Status())
		assert.True(t, uow.committed)
		assert.False(t, uow.rolledBack)
		assert.Contains(t, uow.shipments, shipmentID)
	})

	t.Run("rolls back when allocation fails", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		uow.allocatorErr = errors.New("allocator down")
		handler := commands.NewCreateShipmentCommandHandler(fakeUoWFactory{uow})

		cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), testDetails(), testActor(t, kernel.RoleOperator))
		require.NoError(t, err)

		_, err = handler.Handle(context.Background(), cmd)

		require.Error(t, err)
		assert.False(t, uow.committed)
		assert.True(t, uow.rolledBack)
		assert.Empty(t, uow.shipments)
	})

	t.Run("rejects an unconstructed command", func(t *testing.T) {
		handler := commands.NewCreateShipmentCommandHandler(fakeUoWFactory{newFakeUnitOfWork()})

		_, err := handler.Handle(context.Background(), commands.CreateShipmentCommand{})

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrCreateShipmentCommandIsNotConstructed)
	})
}

func TestConfirmShipmentCommandHandler(t *testing.T) {
	t.Run("confirms and stamps the actor", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedShipment(t, uow, "TC-2026-0001")
		handler := commands.NewConfirmShipmentCommandHandler(fakeShipmentUoWFactory{uow})
		actor := testActor(t, kernel.RoleOperator)

		cmd, err := commands.NewConfirmShipmentCommand(target.ID(), actor)
		require.NoError(t, err)

		confirmed, err := handler.Handle(context.Background(), cmd)

		require.NoError(t, err)
		assert.Equal(t, shipment.StatusConfirmed, confirmed.Status())
		require.NotNil(t, confirmed.ConfirmedBy())
		assert.True(t, confirmed.ConfirmedBy().IsEqual(actor.ID()))
		assert.True(t, uow.committed)
	})

	t.Run("fails for a missing shipment", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		handler := commands.NewConfirmShipmentCommandHandler(fakeShipmentUoWFactory{uow})

		cmd, err := commands.NewConfirmShipmentCommand(kernel.NewUUID(), testActor(t, kernel.RoleOperator))
		require.NoError(t, err)

		_, err = handler.Handle(context.Background(), cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.False(t, uow.committed)
	})
}

func TestUpdateShipmentCommandHandler(t *testing.T) {
	t.Run("operator updates a pending shipment", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedShipment(t, uow, "TC-2026-0001")
		handler := commands.NewUpdateShipmentCommandHandler(fakeShipmentUoWFactory{uow})

		details := testDetails()
		details.Description = "clothes"
		cmd, err := commands.NewUpdateShipmentCommand(target.ID(), details, testActor(t, kernel.RoleOperator))
		require.NoError(t, err)

		updated, err := handler.Handle(context.Background(), cmd)

		require.NoError(t, err)
		assert.Equal(t, "clothes", updated.Details().Description)
		assert.True(t, uow.committed)
	})

	t.Run("operator cannot touch a confirmed shipment", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedShipment(t, uow, "TC-2026-0001")
		require.NoError(t, target.Confirm(kernel.NewUUID(), time.Now().UTC()))
		handler := commands.NewUpdateShipmentCommandHandler(fakeShipmentUoWFactory{uow})

		cmd, err := commands.NewUpdateShipmentCommand(target.ID(), testDetails(), testActor(t, kernel.RoleOperator))
		require.NoError(t, err)

		_, err = handler.Handle(context.Background(), cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.False(t, uow.committed)
	})

	t.Run("manager edits a confirmed shipment", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedShipment(t, uow, "TC-2026-0001")
		require.NoError(t, target.Confirm(kernel.NewUUID(), time.Now().UTC()))
		handler := commands.NewUpdateShipmentCommandHandler(fakeShipmentUoWFactory{uow})

		cmd, err := commands.NewUpdateShipmentCommand(target.ID(), testDetails(), testActor(t, kernel.RoleManager))
		require.NoError(t, err)

		_, err = handler.Handle(context.Background(), cmd)

		require.NoError(t, err)
		assert.True(t, uow.committed)
	})
}

func TestCancelShipmentCommandHandler(t *testing.T) {
	t.Run("manager cancels with a reason", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedShipment(t, uow, "TC-2026-0001")
		handler := commands.NewCancelShipmentCommandHandler(fakeShipmentUoWFactory{uow})

		cmd, err := commands.NewCancelShipmentCommand(target.ID(), "sender request", testActor(t, kernel.RoleManager))
		require.NoError(t, err)

		cancelled, err := handler.Handle(context.Background(), cmd)

		require.NoError(t, err)
		assert.True(t, cancelled.IsCancelled())
		assert.Equal(t, "sender request", cancelled.CancelReason())
		assert.True(t, uow.committed)
	})

	t.Run("operator is forbidden", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedShipment(t, uow, "TC-2026-0001")
		handler := commands.NewCancelShipmentCommandHandler(fakeShipmentUoWFactory{uow})

		cmd, err := commands.NewCancelShipmentCommand(target.ID(), "sender request", testActor(t, kernel.RoleOperator))
		require.NoError(t, err)

		_, err = handler.Handle(context.Background(), cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrForbidden)
		assert.False(t, uow.committed)
		assert.False(t, target.IsCancelled())
	})

	t.Run("reason is required at command construction", func(t *testing.T) {
		target := kernel.NewUUID()

		_, err := commands.NewCancelShipmentCommand(target, "", testActor(t, kernel.RoleManager))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("manager cancels an assigned shipment regardless of departure state", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		target := storedShipment(t, uow, "TC-2026-0001")
		owner := storedDeparture(t, uow)
		require.NoError(t, target.AssignTo(owner.ID()))
		require.NoError(t, owner.Seal("BG-2026-0001", kernel.NewUUID(), time.Now().UTC()))
		handler := commands.NewCancelShipmentCommandHandler(fakeShipmentUoWFactory{uow})

		cmd, err := commands.NewCancelShipmentCommand(target.ID(), "damaged", testActor(t, kernel.RoleManager))
		require.NoError(t, err)

		cancelled, err := handler.Handle(context.Background(), cmd)

		require.NoError(t, err)
		assert.True(t, cancelled.IsCancelled())
		require.NotNil(t, cancelled.Departure(), "membership is kept as an audit trail")
	})
}
