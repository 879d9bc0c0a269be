package departure

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/errs"
)

// generalWaybillNumberPattern matches the general waybill identifier format
// BG-<YEAR>-<NNNN>, where the numeric suffix is at least four digits.
var generalWaybillNumberPattern = regexp.MustCompile(`^BG-\d{4}-\d{4,}$`)

var (
	// ErrDepartureIsNotConstructed is returned when a Departure instance was
	// not created through NewDeparture or RestoreDeparture.
	ErrDepartureIsNotConstructed = errors.New("Departure must be created via NewDeparture constructor")
)

// Fields carries the mutable attributes of a departure while it is Open.
type Fields struct {
	Route     string
	VehicleID *kernel.UUID
	DriverID  *kernel.UUID
	Notes     string
}

// Validate checks the mutable fields: the route is required, vehicle and
// driver references must be valid when present.
func (f Fields) Validate() error {
	var err error
	if f.Route == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("route"))
	}
	if f.VehicleID != nil {
		if idErr := f.VehicleID.Validate(); idErr != nil {
			err = errors.Join(err, idErr)
		}
	}
	if f.DriverID != nil {
		if idErr := f.DriverID.Validate(); idErr != nil {
			err = errors.Join(err, idErr)
		}
	}
	return err
}

// Departure is the aggregate root for a vehicle departure: a sealed-then-closed
// grouping of shipments with a generated general waybill document.
//
// Invariants:
//   - status only moves Open -> Sealed -> Closed, never backward, never
//     skipping Sealed.
//   - The general waybill number is nil until sealing and immutable afterwards.
//   - sealed_at/by and closed_at/by are stamped exactly once, on the matching
//     transition.
//   - Membership (held on the shipment side) is mutable only while Open.
type Departure struct {
	id                   kernel.UUID
	generalWaybillNumber *string
	status               Status
	fields               Fields
	documentPath         string

	createdBy kernel.UUID
	createdAt time.Time
	sealedAt  *time.Time
	sealedBy  *kernel.UUID
	closedAt  *time.Time
	closedBy  *kernel.UUID

	isConstructed bool
}

// NewDeparture creates a new Open departure.
func NewDeparture(id kernel.UUID, fields Fields, createdBy kernel.UUID, createdAt time.Time) (*Departure, error) {
	d := &Departure{
		status:        StatusOpen,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setFields(fields),
		d.setCreatedBy(createdBy),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDeparture reconstructs a departure aggregate from persistent storage.
func RestoreDeparture(
	id kernel.UUID,
	generalWaybillNumber *string,
	status Status,
	fields Fields,
	documentPath string,
	createdBy kernel.UUID,
	createdAt time.Time,
	sealedAt *time.Time,
	sealedBy *kernel.UUID,
	closedAt *time.Time,
	closedBy *kernel.UUID,
) (*Departure, error) {
	d := &Departure{
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setFields(fields),
		d.setCreatedBy(createdBy),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if status != StatusOpen && generalWaybillNumber == nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("general waybill number",
			fmt.Errorf("a %s departure must carry its allocated number", status))
	}
	if generalWaybillNumber != nil && !generalWaybillNumberPattern.MatchString(*generalWaybillNumber) {
		return nil, errs.NewValueIsInvalidErrorWithCause("general waybill number",
			fmt.Errorf("%q does not match BG-<YEAR>-<NNNN>", *generalWaybillNumber))
	}

	d.generalWaybillNumber = generalWaybillNumber
	d.status = status
	d.documentPath = documentPath
	d.createdAt = createdAt
	d.sealedAt = sealedAt
	d.sealedBy = sealedBy
	d.closedAt = closedAt
	d.closedBy = closedBy

	return d, nil
}

// Validate ensures the Departure instance was properly constructed.
func (d *Departure) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDepartureIsNotConstructed
	}
	return nil
}

// IsEqual compares two departures by their unique identifiers.
func (d *Departure) IsEqual(other *Departure) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the departure's unique identifier.
func (d *Departure) ID() kernel.UUID {
	return d.id
}

// GeneralWaybillNumber returns the allocated number, or nil before sealing.
func (d *Departure) GeneralWaybillNumber() *string {
	return d.generalWaybillNumber
}

// Status returns the current lifecycle status.
func (d *Departure) Status() Status {
	return d.status
}

// Fields returns the departure's mutable attributes.
func (d *Departure) Fields() Fields {
	return d.fields
}

// DocumentPath returns the path of the generated waybill document, empty
// before sealing.
func (d *Departure) DocumentPath() string {
	return d.documentPath
}

// CreatedBy returns who created the departure.
func (d *Departure) CreatedBy() kernel.UUID {
	return d.createdBy
}

// CreatedAt returns when the departure was created.
func (d *Departure) CreatedAt() time.Time {
	return d.createdAt
}

// SealedAt returns when the departure was sealed, or nil.
func (d *Departure) SealedAt() *time.Time {
	return d.sealedAt
}

// SealedBy returns who sealed the departure, or nil.
func (d *Departure) SealedBy() *kernel.UUID {
	return d.sealedBy
}

// ClosedAt returns when the departure was closed, or nil.
func (d *Departure) ClosedAt() *time.Time {
	return d.closedAt
}

// ClosedBy returns who closed the departure, or nil.
func (d *Departure) ClosedBy() *kernel.UUID {
	return d.closedBy
}

// IsOpen reports whether membership and fields are still mutable.
func (d *Departure) IsOpen() bool {
	return d.status == StatusOpen
}

// EnsureOpen returns an invalid-state error naming the attempted operation
// unless the departure is Open. Used as the guard for assignment, removal,
// and field updates.
func (d *Departure) EnsureOpen(operation string) error {
	if d.status != StatusOpen {
		return errs.NewInvalidStateError("departure", d.status.String(), operation)
	}
	return nil
}

// Update patches the departure's mutable fields. Allowed only while Open.
func (d *Departure) Update(fields Fields) error {
	if err := d.EnsureOpen("update"); err != nil {
		return err
	}
	return d.setFields(fields)
}

// Seal transitions the departure to Sealed, storing the allocated general
// waybill number and stamping the actor and time. The caller is responsible
// for the membership guards (at least one member, none cancelled), for
// attaching the generated document, and for running the whole effect sequence
// in one transaction.
func (d *Departure) Seal(number string, by kernel.UUID, at time.Time) error {
	newStatus, err := d.status.Seal()
	if err != nil {
		return err
	}
	if !generalWaybillNumberPattern.MatchString(number) {
		return errs.NewValueIsInvalidErrorWithCause("general waybill number",
			fmt.Errorf("%q does not match BG-<YEAR>-<NNNN>", number))
	}
	if err = by.Validate(); err != nil {
		return err
	}

	d.status = newStatus
	d.generalWaybillNumber = &number
	d.sealedAt = &at
	d.sealedBy = &by
	return nil
}

// AttachDocument records the path of the generated general waybill document.
// Documents exist only for sealed and closed departures; the path may be
// replaced when the document is regenerated.
func (d *Departure) AttachDocument(path string) error {
	if d.status == StatusOpen {
		return errs.NewInvalidStateError("departure", d.status.String(), "attach a document")
	}
	if path == "" {
		return errs.NewValueIsRequiredError("document path")
	}

	d.documentPath = path
	return nil
}

// Close transitions the departure to Closed and stamps the actor and time.
// No content change is permitted afterwards.
func (d *Departure) Close(by kernel.UUID, at time.Time) error {
	newStatus, err := d.status.Close()
	if err != nil {
		return err
	}
	if err = by.Validate(); err != nil {
		return err
	}

	d.status = newStatus
	d.closedAt = &at
	d.closedBy = &by
	return nil
}

func (d *Departure) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Departure) setFields(fields Fields) error {
	if err := fields.Validate(); err != nil {
		return err
	}
	d.fields = fields
	return nil
}

func (d *Departure) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return err
	}
	d.createdBy = createdBy
	return nil
}
