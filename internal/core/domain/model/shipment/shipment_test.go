package shipment_test

import (
	"testing"
	"time"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/shipment"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() shipment.Details {
	weight := decimal.NewFromFloat(3.2)
	return shipment.Details{
		Sender:        shipment.Party{Name: "Ion Popescu", Phone: "+37360111222"},
		Receiver:      shipment.Party{Name: "Maria Rusu", Phone: "+37360333444"},
		Description:   "books",
		Weight:        &weight,
		DeclaredValue: decimal.NewFromInt(250),
		Price:         decimal.NewFromInt(120),
		Route:         "Chisinau - Balti",
		Nature:        shipment.NatureParcel,
		MailType:      shipment.MailTypeNone,
	}
}

func newTestShipment(t *testing.T) *shipment.Shipment {
	t.Helper()

	s, err := shipment.NewShipment(kernel.NewUUID(), "TC-2026-0001", validDetails(), time.Now().UTC())
	require.NoError(t, err)
	return s
}

func newActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()

	actor, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return actor
}

func TestNewShipment(t *testing.T) {
	t.Run("should create pending unconfirmed shipment", func(t *testing.T) {
		id := kernel.NewUUID()
		createdAt := time.Now().UTC()

		s, err := shipment.NewShipment(id, "TC-2026-0042", validDetails(), createdAt)

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.True(t, s.ID().IsEqual(id))
		assert.Equal(t, "TC-2026-0042", s.WaybillNumber())
		assert.Equal(t, shipment.StatusPending, s.Status())
		assert.False(t, s.IsConfirmed())
		assert.False(t, s.IsCancelled())
		assert.Nil(t, s.Departure())
		assert.Equal(t, createdAt, s.CreatedAt())
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		s, err := shipment.NewShipment(invalidID, "TC-2026-0001", validDetails(), time.Now().UTC())

		require.Error(t, err)
		assert.Nil(t, s)
	})

	t.Run("should fail with malformed waybill number", func(t *testing.T) {
		for _, number := range []string{"", "TC-2026", "tc-2026-0001", "TC-26-0001", "TC-2026-1"} {
			s, err := shipment.NewShipment(kernel.NewUUID(), number, validDetails(), time.Now().UTC())

			require.Error(t, err, "number %q should be rejected", number)
			assert.Nil(t, s)
		}
	})

	t.Run("should accept suffixes longer than four digits", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.NewUUID(), "TC-2026-10001", validDetails(), time.Now().UTC())

		require.NoError(t, err)
		assert.Equal(t, "TC-2026-10001", s.WaybillNumber())
	})

	t.Run("should fail with unnamed parties", func(t *testing.T) {
		details := validDetails()
		details.Sender.Name = ""

		_, err := shipment.NewShipment(kernel.NewUUID(), "TC-2026-0001", details, time.Now().UTC())
		require.Error(t, err)
	})

	t.Run("should fail with negative price", func(t *testing.T) {
		details := validDetails()
		details.Price = decimal.NewFromInt(-1)

		_, err := shipment.NewShipment(kernel.NewUUID(), "TC-2026-0001", details, time.Now().UTC())
		require.Error(t, err)
	})

	t.Run("should fail when mail carries no mail type", func(t *testing.T) {
		details := validDetails()
		details.Nature = shipment.NatureMail
		details.MailType = shipment.MailTypeNone

		_, err := shipment.NewShipment(kernel.NewUUID(), "TC-2026-0001", details, time.Now().UTC())
		require.Error(t, err)
	})

	t.Run("should fail when parcel carries a mail type", func(t *testing.T) {
		details := validDetails()
		details.MailType = shipment.MailTypeExpress

		_, err := shipment.NewShipment(kernel.NewUUID(), "TC-2026-0001", details, time.Now().UTC())
		require.Error(t, err)
	})

	t.Run("should allow registration without weight", func(t *testing.T) {
		details := validDetails()
		details.Weight = nil

		s, err := shipment.NewShipment(kernel.NewUUID(), "TC-2026-0001", details, time.Now().UTC())

		require.NoError(t, err)
		assert.Nil(t, s.Details().Weight)
	})
}

func TestShipment_Confirm(t *testing.T) {
	t.Run("should confirm and stamp actor and time", func(t *testing.T) {
		s := newTestShipment(t)
		by := kernel.NewUUID()
		at := time.Now().UTC()

		err := s.Confirm(by, at)

		require.NoError(t, err)
		assert.Equal(t, shipment.StatusConfirmed, s.Status())
		assert.True(t, s.IsConfirmed())
		require.NotNil(t, s.ConfirmedBy())
		assert.True(t, s.ConfirmedBy().IsEqual(by))
		require.NotNil(t, s.ConfirmedAt())
		assert.Equal(t, at, *s.ConfirmedAt())
	})

	t.Run("should fail on second confirmation", func(t *testing.T) {
		s := newTestShipment(t)
		require.NoError(t, s.Confirm(kernel.NewUUID(), time.Now().UTC()))

		err := s.Confirm(kernel.NewUUID(), time.Now().UTC())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "confirm again")
	})

	t.Run("should require a weight", func(t *testing.T) {
		details := validDetails()
		details.Weight = nil
		s, err := shipment.NewShipment(kernel.NewUUID(), "TC-2026-0001", details, time.Now().UTC())
		require.NoError(t, err)

		err = s.Confirm(kernel.NewUUID(), time.Now().UTC())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "weight")
	})
}

func TestShipment_Update(t *testing.T) {
	t.Run("operator can update a pending shipment", func(t *testing.T) {
		s := newTestShipment(t)
		details := validDetails()
		details.Description = "clothes"

		err := s.Update(details, newActor(t, kernel.RoleOperator))

		require.NoError(t, err)
		assert.Equal(t, "clothes", s.Details().Description)
	})

	t.Run("operator cannot update a confirmed shipment", func(t *testing.T) {
		s := newTestShipment(t)
		require.NoError(t, s.Confirm(kernel.NewUUID(), time.Now().UTC()))

		err := s.Update(validDetails(), newActor(t, kernel.RoleOperator))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "elevated privilege")
	})

	t.Run("manager can update a confirmed shipment", func(t *testing.T) {
		s := newTestShipment(t)
		require.NoError(t, s.Confirm(kernel.NewUUID(), time.Now().UTC()))
		details := validDetails()
		details.Price = decimal.NewFromInt(99)

		err := s.Update(details, newActor(t, kernel.RoleManager))

		require.NoError(t, err)
		assert.True(t, s.Details().Price.Equal(decimal.NewFromInt(99)))
	})

	t.Run("nobody can update a cancelled shipment", func(t *testing.T) {
		s := newTestShipment(t)
		require.NoError(t, s.Cancel("sender request", kernel.NewUUID(), time.Now().UTC()))

		err := s.Update(validDetails(), newActor(t, kernel.RoleAdmin))
		require.Error(t, err)
	})
}

func TestShipment_Cancel(t *testing.T) {
	t.Run("should cancel and record the reason", func(t *testing.T) {
		s := newTestShipment(t)
		by := kernel.NewUUID()
		at := time.Now().UTC()

		err := s.Cancel("damaged in sorting", by, at)

		require.NoError(t, err)
		assert.Equal(t, shipment.StatusCancelled, s.Status())
		assert.True(t, s.IsCancelled())
		assert.Equal(t, "damaged in sorting", s.CancelReason())
		require.NotNil(t, s.CancelledBy())
		assert.True(t, s.CancelledBy().IsEqual(by))
	})

	t.Run("should require a reason", func(t *testing.T) {
		s := newTestShipment(t)

		err := s.Cancel("", kernel.NewUUID(), time.Now().UTC())
		require.Error(t, err)
	})

	t.Run("should fail on double cancel", func(t *testing.T) {
		s := newTestShipment(t)
		require.NoError(t, s.Cancel("first", kernel.NewUUID(), time.Now().UTC()))

		err := s.Cancel("second", kernel.NewUUID(), time.Now().UTC())
		require.Error(t, err)
	})

	t.Run("cancelling an assigned shipment keeps the departure reference", func(t *testing.T) {
		s := newTestShipment(t)
		departureID := kernel.NewUUID()
		require.NoError(t, s.AssignTo(departureID))

		err := s.Cancel("receiver refused", kernel.NewUUID(), time.Now().UTC())

		require.NoError(t, err)
		require.NotNil(t, s.Departure())
		assert.True(t, s.Departure().IsEqual(departureID))
	})
}

func TestShipment_AssignTo(t *testing.T) {
	t.Run("should attach and move to Assigned", func(t *testing.T) {
		s := newTestShipment(t)
		departureID := kernel.NewUUID()

		err := s.AssignTo(departureID)

		require.NoError(t, err)
		assert.Equal(t, shipment.StatusAssigned, s.Status())
		require.NotNil(t, s.Departure())
		assert.True(t, s.Departure().IsEqual(departureID))
	})

	t.Run("re-assigning to the same departure is idempotent", func(t *testing.T) {
		s := newTestShipment(t)
		departureID := kernel.NewUUID()
		require.NoError(t, s.AssignTo(departureID))

		err := s.AssignTo(departureID)
		require.NoError(t, err)
	})

	t.Run("should reject assignment to a second departure", func(t *testing.T) {
		s := newTestShipment(t)
		require.NoError(t, s.AssignTo(kernel.NewUUID()))

		err := s.AssignTo(kernel.NewUUID())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "another departure")
	})

	t.Run("should reject a cancelled shipment", func(t *testing.T) {
		s := newTestShipment(t)
		require.NoError(t, s.Cancel("reason", kernel.NewUUID(), time.Now().UTC()))

		err := s.AssignTo(kernel.NewUUID())
		require.Error(t, err)
	})
}

func TestShipment_Detach(t *testing.T) {
	t.Run("should detach and revert to Confirmed", func(t *testing.T) {
		s := newTestShipment(t)
		require.NoError(t, s.AssignTo(kernel.NewUUID()))

		err := s.Detach()

		require.NoError(t, err)
		assert.Equal(t, shipment.StatusConfirmed, s.Status())
		assert.Nil(t, s.Departure())
	})

	t.Run("should fail when unattached", func(t *testing.T) {
		s := newTestShipment(t)

		err := s.Detach()
		require.Error(t, err)
	})
}

func TestShipment_Unlink(t *testing.T) {
	t.Run("assigned member reverts to Confirmed", func(t *testing.T) {
		s := newTestShipment(t)
		require.NoError(t, s.AssignTo(kernel.NewUUID()))

		s.Unlink()

		assert.Equal(t, shipment.StatusConfirmed, s.Status())
		assert.Nil(t, s.Departure())
	})

	t.Run("cancelled member keeps cancelled status", func(t *testing.T) {
		s := newTestShipment(t)
		require.NoError(t, s.AssignTo(kernel.NewUUID()))
		require.NoError(t, s.Cancel("reason", kernel.NewUUID(), time.Now().UTC()))

		s.Unlink()

		assert.Equal(t, shipment.StatusCancelled, s.Status())
		assert.Nil(t, s.Departure())
	})

	t.Run("unattached shipment is a no-op", func(t *testing.T) {
		s := newTestShipment(t)

		s.Unlink()

		assert.Equal(t, shipment.StatusPending, s.Status())
	})
}

func TestShipment_LockPricing(t *testing.T) {
	t.Run("should force-confirm an assigned member", func(t *testing.T) {
		s := newTestShipment(t)
		require.NoError(t, s.AssignTo(kernel.NewUUID()))
		by := kernel.NewUUID()

		err := s.LockPricing(by, time.Now().UTC())

		require.NoError(t, err)
		assert.True(t, s.IsConfirmed())
		assert.Equal(t, shipment.StatusAssigned, s.Status())
		require.NotNil(t, s.ConfirmedBy())
		assert.True(t, s.ConfirmedBy().IsEqual(by))
	})

	t.Run("already confirmed member is untouched", func(t *testing.T) {
		s := newTestShipment(t)
		originalBy := kernel.NewUUID()
		require.NoError(t, s.Confirm(originalBy, time.Now().UTC()))

		err := s.LockPricing(kernel.NewUUID(), time.Now().UTC())

		require.NoError(t, err)
		assert.True(t, s.ConfirmedBy().IsEqual(originalBy))
	})

	t.Run("should require a weight", func(t *testing.T) {
		details := validDetails()
		details.Weight = nil
		s, err := shipment.NewShipment(kernel.NewUUID(), "TC-2026-0001", details, time.Now().UTC())
		require.NoError(t, err)

		err = s.LockPricing(kernel.NewUUID(), time.Now().UTC())
		require.Error(t, err)
	})

	t.Run("should reject a cancelled member", func(t *testing.T) {
		s := newTestShipment(t)
		require.NoError(t, s.Cancel("reason", kernel.NewUUID(), time.Now().UTC()))

		err := s.LockPricing(kernel.NewUUID(), time.Now().UTC())
		require.Error(t, err)
	})
}

func TestRestoreShipment(t *testing.T) {
	t.Run("should restore a cancelled assigned shipment", func(t *testing.T) {
		id := kernel.NewUUID()
		departureID := kernel.NewUUID()
		cancelledBy := kernel.NewUUID()
		cancelledAt := time.Now().UTC()
		createdAt := cancelledAt.Add(-time.Hour)

		s, err := shipment.RestoreShipment(
			id, "TC-2026-0007", validDetails(),
			shipment.StatusCancelled,
			false, true,
			nil, nil,
			&cancelledAt, &cancelledBy, "damaged",
			&departureID, createdAt,
		)

		require.NoError(t, err)
		assert.Equal(t, shipment.StatusCancelled, s.Status())
		assert.True(t, s.IsCancelled())
		assert.Equal(t, "damaged", s.CancelReason())
		require.NotNil(t, s.Departure())
		assert.True(t, s.Departure().IsEqual(departureID))
	})
}
