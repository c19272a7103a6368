package dto

import (
	"errors"
	"strings"
	"testing"

	"ecommerce-connect/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := FormRequest{
		MerchantID: "  1752256  ",
		TerminalID: " E7880056 ",
		OrderID:    "\torder-1\n",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "1752256", req.MerchantID)
	assert.Equal(t, "E7880056", req.TerminalID)
	assert.Equal(t, "order-1", req.OrderID)
}

func TestSanitizeStruct_KeepsMarkup(t *testing.T) {
	req := FormRequest{PurchaseDesc: "Tom & Jerry <gift>"}
	SanitizeStruct(&req)

	assert.Equal(t, "Tom & Jerry <gift>", req.PurchaseDesc)
}

func TestSanitizeStruct_StripsControlCharacters(t *testing.T) {
	req := FormRequest{PurchaseDesc: "line\x00one\x1b"}
	SanitizeStruct(&req)

	assert.Equal(t, "lineone", req.PurchaseDesc)
}

func TestSanitizeStruct_DescendsIntoNested(t *testing.T) {
	req := MessageRequest{
		MerchantID: "m ",
		Invoice:    &InvoiceRequest{PurchaseDesc: "  gift  "},
		Card:       &CardRequest{Number: " 4111111111111111 "},
	}
	SanitizeStruct(&req)

	assert.Equal(t, "m", req.MerchantID)
	assert.Equal(t, "gift", req.Invoice.PurchaseDesc)
	assert.Equal(t, "4111111111111111", req.Card.Number)
	assert.Nil(t, req.PARes)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
	SanitizeStruct((*FormRequest)(nil))
}

// --- Binding tests ---

func TestFormRequest_Binding(t *testing.T) {
	valid := FormRequest{
		MerchantID:  "1752256",
		TerminalID:  "E7880056",
		TotalAmount: "100",
		Currency:    "980",
		OrderID:     "order-1",
	}
	require.NoError(t, binding.Validator.ValidateStruct(&valid))

	t.Run("values are not format checked", func(t *testing.T) {
		req := valid
		req.MerchantID = "17;52"
		req.TotalAmount = "1,00"
		req.Currency = "UAH"
		req.AltCurrency = "USD"
		req.Delay = "5"
		req.Locale = "uk-UA-x"
		assert.NoError(t, binding.Validator.ValidateStruct(&req))
	})

	t.Run("missing required", func(t *testing.T) {
		for _, unset := range []func(*FormRequest){
			func(r *FormRequest) { r.MerchantID = "" },
			func(r *FormRequest) { r.TerminalID = "" },
			func(r *FormRequest) { r.TotalAmount = "" },
			func(r *FormRequest) { r.Currency = "" },
			func(r *FormRequest) { r.OrderID = "" },
		} {
			req := valid
			unset(&req)
			assert.Error(t, binding.Validator.ValidateStruct(&req))
		}
	})

	t.Run("oversized", func(t *testing.T) {
		req := valid
		req.PurchaseDesc = strings.Repeat("x", 1025)
		assert.Error(t, binding.Validator.ValidateStruct(&req))
	})
}

func TestMessageRequest_Binding(t *testing.T) {
	req := MessageRequest{
		MerchantID:     "1752256",
		TerminalID:     "E7880056",
		OrderID:        "order-1",
		Invoice:        &InvoiceRequest{TotalAmount: "1,00", Currency: "UAH"},
		Card:           &CardRequest{Number: "4111", ExpMonth: "123"},
		PARes:          &PAResRequest{Status: "YES", ECI: "105"},
		DeviceCategory: "2",
		ApprovalCode:   "1234567",
		Rrn:            "1234567890123",
		Amount:         "ten",
	}
	assert.NoError(t, binding.Validator.ValidateStruct(&req))

	req.Rrn = strings.Repeat("9", 257)
	assert.Error(t, binding.Validator.ValidateStruct(&req))
}

func TestValidationErrors_UseJSONNames(t *testing.T) {
	err := binding.Validator.ValidateStruct(&FormRequest{TerminalID: "t", TotalAmount: "1", Currency: "980", OrderID: "o"})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, "merchant_id", verrs[0].Field())
	assert.Equal(t, "required", verrs[0].Tag())
}

func TestMessageRequest_ToTransaction(t *testing.T) {
	req := MessageRequest{
		MerchantID: "1752256",
		TerminalID: "E7880056",
		OrderID:    "order-1",
		Invoice:    &InvoiceRequest{Date: "2024-01-01 10:00:00", TotalAmount: "100", Currency: "980"},
		Card:       &CardRequest{Number: "4111111111111111", ExpYear: "2030", ExpMonth: "12", CVNum: "123"},
		PARes:      &PAResRequest{Status: "Y", CAVV: "AAAB", ECI: "05", CavvAlgorithm: "2"},
		Rrn:        "123456789012",
	}

	tx := req.ToTransaction(domain.KindAuthorization)

	assert.Equal(t, domain.KindAuthorization, tx.Kind)
	assert.Equal(t, "order-1", tx.OrderID)
	assert.Equal(t, "100", tx.Invoice.TotalAmount)
	assert.False(t, tx.Invoice.Description.IsSet())
	assert.Equal(t, "4111111111111111", tx.Card.Number)
	assert.Equal(t, "123", tx.Card.CVNum.Value())
	assert.False(t, tx.Card.TAVV.IsSet())
	assert.Equal(t, "05", tx.PARes.ECI)
	assert.Equal(t, "123456789012", tx.Rrn.Value())
	assert.False(t, tx.ApprovalCode.IsSet())
	assert.NoError(t, tx.Validate())
}

func TestMessageRequest_ToTransaction_NoBlocks(t *testing.T) {
	tx := MessageRequest{MerchantID: "m", TerminalID: "t", OrderID: "o"}.ToTransaction(domain.KindTransactionState)

	assert.Equal(t, domain.Invoice{}, tx.Invoice)
	assert.True(t, tx.Card.IsZero())
	assert.Equal(t, domain.PARes{}, tx.PARes)
}

func TestNewFormResponse(t *testing.T) {
	form := domain.PaymentForm{
		Version:      domain.FormVersion,
		MerchantID:   "1752256",
		PurchaseTime: "01022024101500",
		AltCurrency:  domain.Some("840"),
		Signature:    "c2ln",
	}

	got := NewFormResponse(form)
	assert.Equal(t, 1, got.Version)
	assert.Equal(t, "840", got.AltCurrency)
	assert.Empty(t, got.AltTotalAmount)
	assert.Equal(t, "c2ln", got.Signature)
}
