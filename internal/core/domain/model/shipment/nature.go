package shipment

import (
	"fmt"
	"strings"

	"transit/internal/pkg/errs"
)

// Nature classifies what a shipment physically is. The nature drives the
// revenue-distribution eligibility rules.
type Nature int

const (
	// NatureUnknown represents an invalid or undefined nature.
	NatureUnknown Nature = iota

	// NatureParcel is a parcel shipment.
	NatureParcel

	// NatureMail is a mail shipment. Mail additionally carries a MailType.
	NatureMail
)

func getNatureStrings() map[Nature]string {
	return map[Nature]string{
		NatureUnknown: "Unknown",
		NatureParcel:  "Parcel",
		NatureMail:    "Mail",
	}
}

// NatureFromString parses a nature name, case-insensitively.
func NatureFromString(s string) (Nature, error) {
	for nature, name := range getNatureStrings() {
		if nature != NatureUnknown && strings.EqualFold(s, name) {
			return nature, nil
		}
	}
	return NatureUnknown, errs.NewValueIsInvalidErrorWithCause("nature",
		fmt.Errorf("%q is not a valid nature", s))
}

// Validate checks if the Nature value is one of the defined kinds.
func (n Nature) Validate() error {
	switch n {
	case NatureParcel, NatureMail:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("nature", fmt.Errorf("%d is not a valid nature", n))
	}
}

// String returns the human-readable name of the nature.
func (n Nature) String() string {
	if s, ok := getNatureStrings()[n]; ok {
		return s
	}
	return "Unknown"
}

// MailType is the service class of a mail shipment. It is meaningful only for
// NatureMail; parcels carry MailTypeNone.
type MailType int

const (
	// MailTypeNone is the mail type of every non-mail shipment.
	MailTypeNone MailType = iota

	// MailTypeStandard is regular mail service.
	MailTypeStandard

	// MailTypeExpress is expedited mail service.
	MailTypeExpress
)

func getMailTypeStrings() map[MailType]string {
	return map[MailType]string{
		MailTypeNone:     "None",
		MailTypeStandard: "Standard",
		MailTypeExpress:  "Express",
	}
}

// MailTypeFromString parses a mail type name, case-insensitively.
func MailTypeFromString(s string) (MailType, error) {
	for mailType, name := range getMailTypeStrings() {
		if strings.EqualFold(s, name) {
			return mailType, nil
		}
	}
	return MailTypeNone, errs.NewValueIsInvalidErrorWithCause("mail type",
		fmt.Errorf("%q is not a valid mail type", s))
}

// String returns the human-readable name of the mail type.
func (t MailType) String() string {
	if s, ok := getMailTypeStrings()[t]; ok {
		return s
	}
	return "None"
}

// ValidateFor checks the mail type against the shipment's nature: mail
// shipments require Standard or Express, anything else requires None.
func (t MailType) ValidateFor(nature Nature) error {
	if nature == NatureMail {
		if t != MailTypeStandard && t != MailTypeExpress {
			return errs.NewValueIsInvalidErrorWithCause("mail type",
				fmt.Errorf("%d is not a valid mail type for mail shipments", t))
		}
		return nil
	}
	if t != MailTypeNone {
		return errs.NewValueIsInvalidErrorWithCause("mail type",
			fmt.Errorf("mail type %s is only meaningful for mail shipments", t))
	}
	return nil
}
