package domain

import (
	"fmt"

	"ecommerce-connect/pkg/apperror"
)

// Invoice carries the purchase the message refers to.
// The order id comes from Transaction.OrderID.
type Invoice struct {
	Date        string
	TotalAmount string
	Currency    string
	Description Text
}

// Card holds raw card data. CVNum and TAVV are emitted only when present.
type Card struct {
	Number   string
	ExpYear  string
	ExpMonth string
	CVNum    Text
	TAVV     Text // token authentication verification value (Apple/Google Pay)
}

// IsZero reports whether no card field is populated.
func (c Card) IsZero() bool {
	return c.Number == "" && c.ExpYear == "" && c.ExpMonth == "" && !c.CVNum.IsSet() && !c.TAVV.IsSet()
}

// PARes is the 3-D Secure authentication result.
type PARes struct {
	Status        string
	CAVV          string
	ECI           string
	CavvAlgorithm string
}

// Transaction is a fully populated request for one gateway message.
// It is built once by the caller and not mutated afterwards. Which fields
// are read depends on Kind.
type Transaction struct {
	Kind       Kind
	MerchantID string
	TerminalID string
	OrderID    string

	Invoice Invoice
	Card    Card
	PARes   PARes

	// UpcToken replaces raw card data in MPI enrolment.
	UpcToken       Text
	DeviceCategory Text // defaults to "0"

	ApprovalCode Text
	Rrn          Text
	// Amount is the refund amount or the post-authorization amount.
	Amount Text

	WalletID Text
	CallID   Text // VISA Checkout call id

	// Settlement refund extras.
	ECI              Text
	PosConditionCode Text
	Ref3             Text
}

// DefaultDeviceCategory is sent when no device category is given.
const DefaultDeviceCategory = "0"

// Validate checks the structural presence rules shared by every kind and
// the instrument exclusivity rules of the kinds that have them.
func (t Transaction) Validate() error {
	if _, err := ParseKind(string(t.Kind)); err != nil {
		return apperror.Validation(err.Error())
	}
	for _, f := range []struct{ name, value string }{
		{"merchant id", t.MerchantID},
		{"terminal id", t.TerminalID},
		{"order id", t.OrderID},
	} {
		if f.value == "" {
			return apperror.Validation(fmt.Sprintf("%s is required", f.name))
		}
	}

	switch t.Kind {
	case KindMPIEnrol:
		if t.UpcToken.IsSet() && !t.Card.IsZero() {
			return apperror.Validation("card data and upc token are mutually exclusive")
		}
		if !t.UpcToken.IsSet() && t.Card.Number == "" {
			return apperror.Validation("card number or upc token is required")
		}
	case KindVisaCheckoutAuthorization:
		if !t.Card.IsZero() {
			return apperror.Validation("card data and wallet call id are mutually exclusive")
		}
	}
	return nil
}
