package booking

import (
	"fmt"
	"strings"

	"bitbucket.org/crgw/rental-hub/internal/rules"
)

type PaymentMethod string

const (
	PaymentMobile       PaymentMethod = "mobile"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

type MobileOperator string

const (
	OperatorOrange MobileOperator = "orange"
	OperatorMTN    MobileOperator = "mtn"
)

const DefaultCity = "Douala"

// Request is what the booking form submits. The client never supplies the
// price, it is always recomputed from the catalog rate. Field presence and
// format are checked by the binding tags, Validate covers the rules that
// span fields.
type Request struct {
	VehicleID      int            `json:"vehicleId" binding:"required,min=1"`
	FirstName      string         `json:"firstName" binding:"required,notblank"`
	LastName       string         `json:"lastName" binding:"required,notblank"`
	Email          string         `json:"email" binding:"required,email"`
	Phone          string         `json:"phone" binding:"required,notblank"`
	PickupQuarter  string         `json:"pickupQuarter"`
	PickupCity     string         `json:"pickupCity"`
	DropoffCity    string         `json:"dropoffCity"`
	Destination    string         `json:"destination,omitempty"`
	PickupDate     rules.Date     `json:"pickupDate"`
	DropoffDate    rules.Date     `json:"dropoffDate"`
	PaymentMethod  PaymentMethod  `json:"paymentMethod" binding:"required,oneof=mobile bank_transfer"`
	MobileOperator MobileOperator `json:"mobileOperator,omitempty" binding:"omitempty,oneof=orange mtn"`
	TermsAccepted  bool           `json:"termsAccepted"`
}

func (r *Request) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.PickupQuarter = strings.TrimSpace(r.PickupQuarter)
	r.Destination = strings.TrimSpace(r.Destination)

	if strings.TrimSpace(r.PickupCity) == "" {
		r.PickupCity = DefaultCity
	}
	if strings.TrimSpace(r.DropoffCity) == "" {
		r.DropoffCity = DefaultCity
	}
}

func (r Request) Validate() error {
	if r.PickupDate.IsZero() || r.DropoffDate.IsZero() {
		return fmt.Errorf("%w: pickupDate and dropoffDate are required", rules.ErrInvalidInput)
	}
	if r.DropoffDate.Before(r.PickupDate) {
		return fmt.Errorf("%w: %s to %s", rules.ErrInvalidDateRange, r.PickupDate, r.DropoffDate)
	}

	if !r.TermsAccepted {
		return fmt.Errorf("%w: terms must be accepted", rules.ErrInvalidInput)
	}

	switch r.PaymentMethod {
	case PaymentBankTransfer:
	case PaymentMobile:
		if r.MobileOperator != OperatorOrange && r.MobileOperator != OperatorMTN {
			return fmt.Errorf("%w: mobile payment requires an operator", rules.ErrInvalidInput)
		}
	case "":
		return fmt.Errorf("%w: payment method must be selected", rules.ErrInvalidInput)
	default:
		return fmt.Errorf("%w: unknown payment method %q", rules.ErrInvalidInput, r.PaymentMethod)
	}

	return nil
}

// PaymentMethodCode is the value the booking service stores.
func (r Request) PaymentMethodCode() string {
	if r.PaymentMethod == PaymentMobile {
		return "mobile_" + string(r.MobileOperator)
	}
	return string(PaymentBankTransfer)
}

func (r Request) PaymentDetails() string {
	switch {
	case r.PaymentMethod == PaymentMobile && r.MobileOperator == OperatorOrange:
		return "Mobile Money (Orange Money)"
	case r.PaymentMethod == PaymentMobile:
		return "Mobile Money (MTN Mobile Money)"
	default:
		return "Bank transfer"
	}
}

func (r Request) DateRange() rules.DateRange {
	return rules.DateRange{Pickup: r.PickupDate, Dropoff: r.DropoffDate}
}
