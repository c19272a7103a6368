package domain

import "time"

// PurchaseTimeLayout renders purchase times as DDMMYYYYhhmmss.
const PurchaseTimeLayout = "02012006150405"

// FormVersion is the legacy payment form protocol version.
const FormVersion = 1

// PaymentForm is the legacy delimited-string signed object.
// Signature is empty until the form is signed and is never part of the
// signed data; carrying it to the gateway is the caller's job.
type PaymentForm struct {
	Version        int
	MerchantID     string
	TerminalID     string
	TotalAmount    string
	Currency       string
	Locale         string
	PurchaseTime   string
	OrderID        string
	Signature      string
	PurchaseDesc   string
	AltTotalAmount Text
	AltCurrency    Text
	SD             Text
	Delay          Text
	Ref3           Text
}

// FormFields are the caller-supplied values of a PaymentForm.
type FormFields struct {
	MerchantID     string
	TerminalID     string
	TotalAmount    string
	Currency       string
	Locale         string
	OrderID        string
	PurchaseDesc   string
	AltTotalAmount Text
	AltCurrency    Text
	SD             Text
	Delay          Text
	Ref3           Text
}

// NewPaymentForm builds a form and stamps its purchase time from clock.
// The purchase time is fixed here, not at signing time.
func NewPaymentForm(clock func() time.Time, f FormFields) PaymentForm {
	return PaymentForm{
		Version:        FormVersion,
		MerchantID:     f.MerchantID,
		TerminalID:     f.TerminalID,
		TotalAmount:    f.TotalAmount,
		Currency:       f.Currency,
		Locale:         f.Locale,
		PurchaseTime:   clock().Format(PurchaseTimeLayout),
		OrderID:        f.OrderID,
		PurchaseDesc:   f.PurchaseDesc,
		AltTotalAmount: f.AltTotalAmount,
		AltCurrency:    f.AltCurrency,
		SD:             f.SD,
		Delay:          f.Delay,
		Ref3:           f.Ref3,
	}
}
