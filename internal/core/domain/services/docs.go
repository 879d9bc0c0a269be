// Package services provides domain services that implement business logic
// spanning multiple aggregates in the transit back office.
//
// The package includes:
//   - Eligibility predicates deciding which shipments count toward the driver
//     and regulator payouts, shared by every distribution entry point
//   - DistributionCalculator: pure computation of the driver, regulator and
//     agency revenue splits over a snapshot of closed-departure shipments
//
// All computations use exact decimal arithmetic; none of them touch storage.
package services
