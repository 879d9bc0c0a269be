package services

import (
	"transit/internal/core/domain/model/shipment"

	"github.com/shopspring/decimal"
)

// Weight bounds of the eligibility predicates, in kilograms. Comparisons are
// exact decimal comparisons: 40.00 qualifies where 40.01 does not, so binary
// floats would misclassify the boundaries.
var (
	driverParcelWeightMax    = decimal.NewFromInt(40)
	regulatorParcelWeightMax = decimal.NewFromInt(50)
	mailStandardWeightMax    = decimal.RequireFromString("0.1")
	mailExpressWeightMin     = decimal.RequireFromString("0.1")
	mailExpressWeightMax     = decimal.NewFromInt(2)
)

// Payout rates applied over eligible shipment prices.
var (
	// driverShareRate is the driver's cut of each driver-eligible shipment.
	driverShareRate = decimal.RequireFromString("0.60")
	// regulatorRate is the regulator's cut of the eligible price sum.
	regulatorRate = decimal.RequireFromString("0.05")
)

// IsDriverEligible reports whether a shipment counts toward its departure
// driver's payout: parcels up to and including 40 kg.
func IsDriverEligible(nature shipment.Nature, weight decimal.Decimal) bool {
	return nature == shipment.NatureParcel && weight.LessThanOrEqual(driverParcelWeightMax)
}

// IsRegulatorEligible reports whether a shipment counts toward the regulator
// payout:
//   - parcels up to and including 50 kg, or
//   - standard mail up to and including 0.1 kg, or
//   - express mail above 0.1 kg up to and including 2 kg.
//
// The express lower bound is exclusive: a 0.1 kg express item qualifies under
// neither mail rule.
func IsRegulatorEligible(nature shipment.Nature, mailType shipment.MailType, weight decimal.Decimal) bool {
	switch nature {
	case shipment.NatureParcel:
		return weight.LessThanOrEqual(regulatorParcelWeightMax)
	case shipment.NatureMail:
		switch mailType {
		case shipment.MailTypeStandard:
			return weight.LessThanOrEqual(mailStandardWeightMax)
		case shipment.MailTypeExpress:
			return weight.GreaterThan(mailExpressWeightMin) && weight.LessThanOrEqual(mailExpressWeightMax)
		default:
			return false
		}
	default:
		return false
	}
}

// DriverShare computes the driver's cut of a single shipment price.
func DriverShare(price decimal.Decimal) decimal.Decimal {
	return price.Mul(driverShareRate)
}

// RegulatorCut computes the regulator's cut of an eligible price sum.
func RegulatorCut(total decimal.Decimal) decimal.Decimal {
	return total.Mul(regulatorRate)
}
