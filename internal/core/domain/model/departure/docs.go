// Package departure contains the Departure aggregate and its Status value
// object.
//
// A departure groups shipments onto a vehicle. It starts Open, is sealed
// (allocating the general waybill number, locking member pricing, and
// generating the waybill document in one atomic effect sequence), and is
// finally closed. Transitions are strictly forward-only; Closed departures
// are frozen and become the input of the revenue-distribution computations.
package departure
