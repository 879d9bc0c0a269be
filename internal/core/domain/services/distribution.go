package services

import (
	"sort"
	"time"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/shipment"

	"github.com/shopspring/decimal"
)

// ShipmentRecord is a read-only snapshot of one shipment belonging to a closed
// departure sealed within the requested date window. Records are produced by
// the distribution queries, which already exclude cancelled and unattached
// shipments; this service computes over the snapshot without touching storage.
type ShipmentRecord struct {
	ShipmentID    kernel.UUID
	WaybillNumber string
	Weight        decimal.Decimal
	Price         decimal.Decimal
	Nature        shipment.Nature
	MailType      shipment.MailType
	DepartureID   kernel.UUID
	DriverID      *kernel.UUID
	SealedAt      time.Time
}

// DriverShipmentShare is one shipment's contribution to a driver payout.
type DriverShipmentShare struct {
	ShipmentID    kernel.UUID
	WaybillNumber string
	Weight        decimal.Decimal
	Price         decimal.Decimal
	Share         decimal.Decimal
	DepartureID   kernel.UUID
	SealedAt      time.Time
}

// DriverPayout aggregates one driver's eligible shipments.
type DriverPayout struct {
	DriverID      kernel.UUID
	ShipmentCount int
	TotalAmount   decimal.Decimal
	Shipments     []DriverShipmentShare
}

// RegulatorShipment is one shipment's appearance in the regulator breakdown.
type RegulatorShipment struct {
	ShipmentID    kernel.UUID
	WaybillNumber string
	Weight        decimal.Decimal
	Price         decimal.Decimal
	Nature        shipment.Nature
	MailType      shipment.MailType
	DepartureID   kernel.UUID
	SealedAt      time.Time
}

// RegulatorPayout is the single regulator aggregate over the date window.
type RegulatorPayout struct {
	ShipmentCount int
	TotalPrice    decimal.Decimal
	Amount        decimal.Decimal
	Shipments     []RegulatorShipment
}

// AgencyPayout is the agency residual: total revenue of every in-scope
// shipment minus the driver and regulator payouts. A shipment ineligible for
// both still counts toward total revenue.
type AgencyPayout struct {
	TotalRevenue   decimal.Decimal
	DriverTotal    decimal.Decimal
	RegulatorTotal decimal.Decimal
	Amount         decimal.Decimal
}

// DistributionSummary combines the three views plus overall totals.
type DistributionSummary struct {
	ShipmentCount  int
	TotalRevenue   decimal.Decimal
	DriverTotal    decimal.Decimal
	RegulatorTotal decimal.Decimal
	AgencyAmount   decimal.Decimal
	Drivers        []DriverPayout
	Regulator      RegulatorPayout
}

// DistributionCalculator computes the three stakeholder payouts over a
// snapshot of shipment records. All four entry points share the same two
// eligibility predicates; the summary composes the other three computations
// instead of re-deriving their filters.
type DistributionCalculator struct{}

// NewDistributionCalculator creates a distribution calculator.
func NewDistributionCalculator() *DistributionCalculator {
	return &DistributionCalculator{}
}

// DriverDistribution groups driver-eligible shipments by the departure's
// driver and sums the per-shipment shares. Shipments belonging to departures
// without a driver are skipped. When driverID is non-nil only that driver's
// payout is returned. Groups are ordered by driver ID for stable output.
func (c *DistributionCalculator) DriverDistribution(records []ShipmentRecord, driverID *kernel.UUID) []DriverPayout {
	grouped := make(map[kernel.UUID]*DriverPayout)

	for _, rec := range records {
		if rec.DriverID == nil {
			continue
		}
		if driverID != nil && !rec.DriverID.IsEqual(*driverID) {
			continue
		}
		if !IsDriverEligible(rec.Nature, rec.Weight) {
			continue
		}

		payout, ok := grouped[*rec.DriverID]
		if !ok {
			payout = &DriverPayout{DriverID: *rec.DriverID, TotalAmount: decimal.Zero}
			grouped[*rec.DriverID] = payout
		}

		share := DriverShare(rec.Price)
		payout.Shipments = append(payout.Shipments, DriverShipmentShare{
			ShipmentID:    rec.ShipmentID,
			WaybillNumber: rec.WaybillNumber,
			Weight:        rec.Weight,
			Price:         rec.Price,
			Share:         share,
			DepartureID:   rec.DepartureID,
			SealedAt:      rec.SealedAt,
		})
		payout.ShipmentCount++
		payout.TotalAmount = payout.TotalAmount.Add(share)
	}

	payouts := make([]DriverPayout, 0, len(grouped))
	for _, payout := range grouped {
		payouts = append(payouts, *payout)
	}
	sort.Slice(payouts, func(i, j int) bool {
		return payouts[i].DriverID.String() < payouts[j].DriverID.String()
	})
	return payouts
}

// RegulatorDistribution computes the single regulator aggregate: five percent
// of the summed price of every regulator-eligible shipment in the snapshot.
func (c *DistributionCalculator) RegulatorDistribution(records []ShipmentRecord) RegulatorPayout {
	payout := RegulatorPayout{
		TotalPrice: decimal.Zero,
		Amount:     decimal.Zero,
	}

	for _, rec := range records {
		if !IsRegulatorEligible(rec.Nature, rec.MailType, rec.Weight) {
			continue
		}

		payout.Shipments = append(payout.Shipments, RegulatorShipment{
			ShipmentID:    rec.ShipmentID,
			WaybillNumber: rec.WaybillNumber,
			Weight:        rec.Weight,
			Price:         rec.Price,
			Nature:        rec.Nature,
			MailType:      rec.MailType,
			DepartureID:   rec.DepartureID,
			SealedAt:      rec.SealedAt,
		})
		payout.ShipmentCount++
		payout.TotalPrice = payout.TotalPrice.Add(rec.Price)
	}

	payout.Amount = RegulatorCut(payout.TotalPrice)
	return payout
}

// AgencyDistribution computes the agency residual over the snapshot: the
// revenue of all records minus the driver and regulator payouts computed over
// the same records.
func (c *DistributionCalculator) AgencyDistribution(records []ShipmentRecord) AgencyPayout {
	totalRevenue := decimal.Zero
	for _, rec := range records {
		totalRevenue = totalRevenue.Add(rec.Price)
	}

	driverTotal := decimal.Zero
	for _, payout := range c.DriverDistribution(records, nil) {
		driverTotal = driverTotal.Add(payout.TotalAmount)
	}

	regulatorTotal := c.RegulatorDistribution(records).Amount

	return AgencyPayout{
		TotalRevenue:   totalRevenue,
		DriverTotal:    driverTotal,
		RegulatorTotal: regulatorTotal,
		Amount:         totalRevenue.Sub(driverTotal).Sub(regulatorTotal),
	}
}

// Summary composes the three views from single calls over one snapshot.
func (c *DistributionCalculator) Summary(records []ShipmentRecord) DistributionSummary {
	drivers := c.DriverDistribution(records, nil)
	regulator := c.RegulatorDistribution(records)

	driverTotal := decimal.Zero
	for _, payout := range drivers {
		driverTotal = driverTotal.Add(payout.TotalAmount)
	}

	totalRevenue := decimal.Zero
	for _, rec := range records {
		totalRevenue = totalRevenue.Add(rec.Price)
	}

	return DistributionSummary{
		ShipmentCount:  len(records),
		TotalRevenue:   totalRevenue,
		DriverTotal:    driverTotal,
		RegulatorTotal: regulator.Amount,
		AgencyAmount:   totalRevenue.Sub(driverTotal).Sub(regulator.Amount),
		Drivers:        drivers,
		Regulator:      regulator,
	}
}
