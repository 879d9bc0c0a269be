package shipment

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// waybillNumberPattern matches the immutable waybill identifier format
// <PREFIX>-<YEAR>-<NNNN>, where the numeric suffix is at least four digits.
var waybillNumberPattern = regexp.MustCompile(`^[A-Z]+-\d{4}-\d{4,}$`)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
	// created through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")
)

// Party identifies one side of a shipment (sender or receiver).
type Party struct {
	Name  string
	Phone string
}

// Details carries the mutable descriptive attributes of a shipment. It is the
// payload of both registration and (privileged) updates.
type Details struct {
	Sender        Party
	Receiver      Party
	Description   string
	Weight        *decimal.Decimal // nullable until confirmation
	DeclaredValue decimal.Decimal
	Price         decimal.Decimal
	Route         string
	Nature        Nature
	MailType      MailType
	IsFree        bool
}

// Validate checks the details against the registration rules: named parties,
// a valid nature/mail-type pairing, non-negative money, and positive weight
// when a weight is present.
func (d Details) Validate() error {
	var err error
	if d.Sender.Name == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("sender name"))
	}
	if d.Receiver.Name == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("receiver name"))
	}
	if d.Route == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("route"))
	}
	if natureErr := d.Nature.Validate(); natureErr != nil {
		err = errors.Join(err, natureErr)
	} else if typeErr := d.MailType.ValidateFor(d.Nature); typeErr != nil {
		err = errors.Join(err, typeErr)
	}
	if d.Weight != nil && !d.Weight.IsPositive() {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%s is not greater than 0", d.Weight)))
	}
	if d.Price.IsNegative() {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%s is negative", d.Price)))
	}
	if d.DeclaredValue.IsNegative() {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("declared value",
			fmt.Errorf("%s is negative", d.DeclaredValue)))
	}
	return err
}

// Shipment is the aggregate root for a registered parcel or mail item.
//
// Invariants:
//   - The waybill number is unique and immutable once assigned.
//   - status, isConfirmed and isCancelled stay mutually consistent.
//   - A shipment attached to a departure is never Cancelled at attach time;
//     cancellation after attachment deliberately does not detach (the audit
//     trail of membership is preserved), and consumers filter cancellations.
//   - A confirmed shipment resists mutation except by privileged actors.
type Shipment struct {
	id            kernel.UUID
	waybillNumber string
	details       Details

	status      Status
	isConfirmed bool
	isCancelled bool

	confirmedAt *time.Time
	confirmedBy *kernel.UUID

	cancelledAt  *time.Time
	cancelledBy  *kernel.UUID
	cancelReason string

	departureID *kernel.UUID

	createdAt time.Time

	isConstructed bool
}

// NewShipment registers a new shipment with an allocated waybill number.
// The shipment starts Pending and unconfirmed.
func NewShipment(id kernel.UUID, waybillNumber string, details Details, createdAt time.Time) (*Shipment, error) {
	s := &Shipment{
		status:        StatusPending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setWaybillNumber(waybillNumber),
		s.setDetails(details),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment reconstructs a shipment aggregate from persistent storage,
// preserving its full lifecycle state.
func RestoreShipment(
	id kernel.UUID,
	waybillNumber string,
	details Details,
	status Status,
	isConfirmed bool,
	isCancelled bool,
	confirmedAt *time.Time,
	confirmedBy *kernel.UUID,
	cancelledAt *time.Time,
	cancelledBy *kernel.UUID,
	cancelReason string,
	departureID *kernel.UUID,
	createdAt time.Time,
) (*Shipment, error) {
	s := &Shipment{
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setWaybillNumber(waybillNumber),
		s.setDetails(details),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if status == StatusCancelled != isCancelled {
		return nil, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("status %s is inconsistent with is_cancelled=%t", status, isCancelled))
	}

	s.status = status
	s.isConfirmed = isConfirmed
	s.isCancelled = isCancelled
	s.confirmedAt = confirmedAt
	s.confirmedBy = confirmedBy
	s.cancelledAt = cancelledAt
	s.cancelledBy = cancelledBy
	s.cancelReason = cancelReason
	s.departureID = departureID
	s.createdAt = createdAt

	return s, nil
}

// Validate ensures the Shipment instance was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// IsEqual compares two shipments by their unique identifiers.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// WaybillNumber returns the immutable waybill identifier.
func (s *Shipment) WaybillNumber() string {
	return s.waybillNumber
}

// Details returns the descriptive attributes of the shipment.
func (s *Shipment) Details() Details {
	return s.details
}

// Status returns the current lifecycle status.
func (s *Shipment) Status() Status {
	return s.status
}

// IsConfirmed reports whether pricing and weight are locked.
func (s *Shipment) IsConfirmed() bool {
	return s.isConfirmed
}

// IsCancelled reports whether the shipment is cancelled.
func (s *Shipment) IsCancelled() bool {
	return s.isCancelled
}

// ConfirmedAt returns when the shipment was confirmed, or nil.
func (s *Shipment) ConfirmedAt() *time.Time {
	return s.confirmedAt
}

// ConfirmedBy returns who confirmed the shipment, or nil.
func (s *Shipment) ConfirmedBy() *kernel.UUID {
	return s.confirmedBy
}

// CancelledAt returns when the shipment was cancelled, or nil.
func (s *Shipment) CancelledAt() *time.Time {
	return s.cancelledAt
}

// CancelledBy returns who cancelled the shipment, or nil.
func (s *Shipment) CancelledBy() *kernel.UUID {
	return s.cancelledBy
}

// CancelReason returns the recorded cancellation reason.
func (s *Shipment) CancelReason() string {
	return s.cancelReason
}

// Departure returns the owning departure's ID, or nil when unattached.
func (s *Shipment) Departure() *kernel.UUID {
	return s.departureID
}

// CreatedAt returns when the shipment was registered.
func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

// Confirm locks the shipment's pricing and weight and stamps the confirmation.
// Fails with an "already confirmed" state error on a second confirmation.
// A confirmed shipment must carry a weight.
func (s *Shipment) Confirm(by kernel.UUID, at time.Time) error {
	if s.isConfirmed {
		return errs.NewInvalidStateError("shipment", s.status.String(), "confirm again")
	}

	newStatus, err := s.status.Confirm()
	if err != nil {
		return err
	}
	if s.details.Weight == nil {
		return errs.NewValueIsRequiredError("weight")
	}

	s.status = newStatus
	s.markConfirmed(by, at)
	return nil
}

// Update replaces the shipment's descriptive attributes. A confirmed shipment
// may only be updated by an actor with the elevated-edit privilege; the bypass
// is role-gated, not state-gated. Cancelled shipments are never editable.
func (s *Shipment) Update(details Details, actor kernel.Actor) error {
	if s.isCancelled {
		return errs.NewInvalidStateError("shipment", s.status.String(), "update")
	}
	if s.isConfirmed && !actor.CanOverrideShipmentLock() {
		return errs.NewInvalidStateError("shipment", "confirmed", "update without elevated privilege")
	}
	return s.setDetails(details)
}

// Cancel marks the shipment cancelled and stamps the actor, time, and reason.
// Cancellation does not detach the shipment from its departure; membership is
// kept as an audit trail and every downstream consumer filters cancellations.
func (s *Shipment) Cancel(reason string, by kernel.UUID, at time.Time) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("cancel reason")
	}

	newStatus, err := s.status.Cancel()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.isCancelled = true
	s.cancelledAt = &at
	s.cancelledBy = &by
	s.cancelReason = reason
	return nil
}

// AssignTo attaches the shipment to the given departure and moves it to
// Assigned. Assigning a shipment already attached to the same departure is
// idempotent. A shipment attached to a different departure, or a cancelled
// shipment, cannot be assigned.
func (s *Shipment) AssignTo(departureID kernel.UUID) error {
	if err := departureID.Validate(); err != nil {
		return err
	}

	if s.departureID != nil {
		if s.departureID.IsEqual(departureID) {
			return nil
		}
		return errs.NewInvalidStateError("shipment", "assigned to another departure", "assign")
	}

	newStatus, err := s.status.Assign()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.departureID = &departureID
	return nil
}

// Detach removes the shipment from its departure and reverts its status to
// Confirmed.
func (s *Shipment) Detach() error {
	if s.departureID == nil {
		return errs.NewInvalidStateError("shipment", "unattached", "detach")
	}

	newStatus, err := s.status.Detach()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.departureID = nil
	return nil
}

// Unlink drops the departure reference without a status transition. Used when
// the owning departure itself is deleted: cancelled members keep their
// cancelled status, assigned members revert to Confirmed.
func (s *Shipment) Unlink() {
	if s.departureID == nil {
		return
	}

	s.departureID = nil
	if s.status == StatusAssigned {
		s.status = StatusConfirmed
	}
}

// LockPricing force-confirms the shipment as part of sealing its departure.
// Already confirmed members are left untouched. Unlike Confirm this does not
// require Pending status: assigned members are locked in place.
func (s *Shipment) LockPricing(by kernel.UUID, at time.Time) error {
	if s.isCancelled {
		return errs.NewInvalidStateError("shipment", s.status.String(), "lock pricing")
	}
	if s.isConfirmed {
		return nil
	}
	if s.details.Weight == nil {
		return errs.NewValueIsRequiredError("weight")
	}

	if s.status == StatusPending {
		s.status = StatusConfirmed
	}
	s.markConfirmed(by, at)
	return nil
}

func (s *Shipment) markConfirmed(by kernel.UUID, at time.Time) {
	s.isConfirmed = true
	s.confirmedAt = &at
	s.confirmedBy = &by
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setWaybillNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("waybill number")
	}
	if !waybillNumberPattern.MatchString(number) {
		return errs.NewValueIsInvalidErrorWithCause("waybill number",
			fmt.Errorf("%q does not match <PREFIX>-<YEAR>-<NNNN>", number))
	}
	s.waybillNumber = number
	return nil
}

func (s *Shipment) setDetails(details Details) error {
	if err := details.Validate(); err != nil {
		return err
	}
	s.details = details
	return nil
}
