package service

import (
	"strings"

	"ecommerce-connect/internal/core/domain"
	"ecommerce-connect/pkg/apperror"
)

// BuildCanonicalString constructs the legacy signed data of form.
// Format: MID;TID;PURCHASETIME;ORDERID[,DELAY];CUR[,ALTCUR];AMT[,ALTAMT];SD;[REF3;]
// Exactly one of AltCurrency and AltTotalAmount being set is an error.
func BuildCanonicalString(form domain.PaymentForm) (string, error) {
	var b strings.Builder

	segment(&b, form.MerchantID)
	segment(&b, form.TerminalID)
	segment(&b, form.PurchaseTime)

	if delay, ok := form.Delay.Get(); ok {
		segment(&b, form.OrderID, delay)
	} else {
		segment(&b, form.OrderID)
	}

	altCurrency, hasCurrency := form.AltCurrency.Get()
	altAmount, hasAmount := form.AltTotalAmount.Get()
	switch {
	case hasCurrency && hasAmount:
		segment(&b, form.Currency, altCurrency)
		segment(&b, form.TotalAmount, altAmount)
	case !hasCurrency && !hasAmount:
		segment(&b, form.Currency)
		segment(&b, form.TotalAmount)
	default:
		return "", apperror.ErrAltCurrencyAmount()
	}

	segment(&b, form.SD.Value())
	if ref3, ok := form.Ref3.Get(); ok {
		segment(&b, ref3)
	}
	return b.String(), nil
}

// segment writes values joined by "," and terminated by ";".
func segment(b *strings.Builder, values ...string) {
	b.WriteString(strings.Join(values, ","))
	b.WriteByte(';')
}
