// Package shipment contains the Shipment aggregate and its supporting value
// objects (Status, Nature, MailType, Details).
//
// A shipment is registered Pending with an allocated waybill number, confirmed
// (which locks pricing and weight against non-privileged edits), optionally
// attached to a departure, and possibly cancelled. The aggregate keeps the
// status enum and the independently tracked is_confirmed / is_cancelled flags
// consistent, and enforces that cancelled shipments never become assignable.
package shipment
