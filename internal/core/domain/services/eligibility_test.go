package services_test

import (
	"testing"

	"transit/internal/core/domain/model/shipment"
	"transit/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsDriverEligible(t *testing.T) {
	testCases := []struct {
		name     string
		nature   shipment.Nature
		weight   string
		expected bool
	}{
		{"light parcel", shipment.NatureParcel, "2.5", true},
		{"parcel exactly at 40kg qualifies", shipment.NatureParcel, "40.00", true},
		{"parcel just over 40kg does not", shipment.NatureParcel, "40.01", false},
		{"heavy parcel", shipment.NatureParcel, "55", false},
		{"mail never qualifies", shipment.NatureMail, "0.05", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			weight := decimal.RequireFromString(tc.weight)
			assert.Equal(t, tc.expected, services.IsDriverEligible(tc.nature, weight))
		})
	}
}

func TestIsRegulatorEligible(t *testing.T) {
	testCases := []struct {
		name     string
		nature   shipment.Nature
		mailType shipment.MailType
		weight   string
		expected bool
	}{
		{"light parcel", shipment.NatureParcel, shipment.MailTypeNone, "10", true},
		{"parcel exactly at 50kg qualifies", shipment.NatureParcel, shipment.MailTypeNone, "50.00", true},
		{"parcel just over 50kg does not", shipment.NatureParcel, shipment.MailTypeNone, "50.01", false},
		{"standard mail at 0.10kg qualifies", shipment.NatureMail, shipment.MailTypeStandard, "0.10", true},
		{"standard mail at 0.11kg does not", shipment.NatureMail, shipment.MailTypeStandard, "0.11", false},
		{"express mail at 0.10kg does not qualify under either rule", shipment.NatureMail, shipment.MailTypeExpress, "0.10", false},
		{"express mail at 0.11kg qualifies", shipment.NatureMail, shipment.MailTypeExpress, "0.11", true},
		{"express mail exactly at 2kg qualifies", shipment.NatureMail, shipment.MailTypeExpress, "2.00", true},
		{"express mail just over 2kg does not", shipment.NatureMail, shipment.MailTypeExpress, "2.01", false},
		{"mail without a mail type never qualifies", shipment.NatureMail, shipment.MailTypeNone, "0.05", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			weight := decimal.RequireFromString(tc.weight)
			assert.Equal(t, tc.expected, services.IsRegulatorEligible(tc.nature, tc.mailType, weight))
		})
	}
}

func TestShares(t *testing.T) {
	t.Run("driver share is sixty percent", func(t *testing.T) {
		share := services.DriverShare(decimal.NewFromInt(100))
		assert.True(t, share.Equal(decimal.NewFromInt(60)), "got %s", share)
	})

	t.Run("regulator cut is five percent", func(t *testing.T) {
		cut := services.RegulatorCut(decimal.NewFromInt(100))
		assert.True(t, cut.Equal(decimal.NewFromInt(5)), "got %s", cut)
	})

	t.Run("shares stay exact on fractional prices", func(t *testing.T) {
		share := services.DriverShare(decimal.RequireFromString("33.33"))
		assert.True(t, share.Equal(decimal.RequireFromString("19.998")), "got %s", share)
	})
}
