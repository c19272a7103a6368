package dto

import "ecommerce-connect/internal/core/domain"

// InvoiceRequest is the purchase block of a message request.
type InvoiceRequest struct {
	Date         string `json:"date" binding:"max=256"`
	TotalAmount  string `json:"total_amount" binding:"max=256"`
	Currency     string `json:"currency" binding:"max=256"`
	PurchaseDesc string `json:"purchase_desc" binding:"max=1024"`
}

// CardRequest holds raw card data.
type CardRequest struct {
	Number   string `json:"card_num" binding:"max=256"`
	ExpYear  string `json:"exp_year" binding:"max=256"`
	ExpMonth string `json:"exp_month" binding:"max=256"`
	CVNum    string `json:"cv_num" binding:"max=256"`
	TAVV     string `json:"tavv" binding:"max=256"`
}

// PAResRequest is the 3-D Secure authentication result.
type PAResRequest struct {
	Status        string `json:"status" binding:"max=256"`
	CAVV          string `json:"cavv" binding:"max=256"`
	ECI           string `json:"eci" binding:"max=256"`
	CavvAlgorithm string `json:"cavv_alg" binding:"max=256"`
}

// MessageRequest is the request body for POST /api/v1/messages/:kind.
// Fields a kind does not use are ignored.
type MessageRequest struct {
	MerchantID string `json:"merchant_id" binding:"required,max=64"`
	TerminalID string `json:"terminal_id" binding:"required,max=64"`
	OrderID    string `json:"order_id" binding:"required,max=128"`

	Invoice *InvoiceRequest `json:"invoice,omitempty"`
	Card    *CardRequest    `json:"card,omitempty"`
	PARes   *PAResRequest   `json:"pares,omitempty"`

	UpcToken       string `json:"upc_token,omitempty" binding:"max=256"`
	DeviceCategory string `json:"device_category,omitempty" binding:"max=256"`

	ApprovalCode string `json:"approval_code,omitempty" binding:"max=256"`
	Rrn          string `json:"rrn,omitempty" binding:"max=256"`
	// Amount is the refund or post-authorization amount.
	Amount string `json:"amount,omitempty" binding:"max=256"`

	WalletID string `json:"wallet_id,omitempty" binding:"max=256"`
	CallID   string `json:"call_id,omitempty" binding:"max=256"`

	ECI              string `json:"eci,omitempty" binding:"max=256"`
	PosConditionCode string `json:"pos_condition_code,omitempty" binding:"max=256"`
	Ref3             string `json:"ref3,omitempty" binding:"max=256"`
}

// ToTransaction maps the request onto a transaction of the given kind.
func (r MessageRequest) ToTransaction(kind domain.Kind) domain.Transaction {
	tx := domain.Transaction{
		Kind:             kind,
		MerchantID:       r.MerchantID,
		TerminalID:       r.TerminalID,
		OrderID:          r.OrderID,
		UpcToken:         domain.Some(r.UpcToken),
		DeviceCategory:   domain.Some(r.DeviceCategory),
		ApprovalCode:     domain.Some(r.ApprovalCode),
		Rrn:              domain.Some(r.Rrn),
		Amount:           domain.Some(r.Amount),
		WalletID:         domain.Some(r.WalletID),
		CallID:           domain.Some(r.CallID),
		ECI:              domain.Some(r.ECI),
		PosConditionCode: domain.Some(r.PosConditionCode),
		Ref3:             domain.Some(r.Ref3),
	}
	if r.Invoice != nil {
		tx.Invoice = domain.Invoice{
			Date:        r.Invoice.Date,
			TotalAmount: r.Invoice.TotalAmount,
			Currency:    r.Invoice.Currency,
			Description: domain.Some(r.Invoice.PurchaseDesc),
		}
	}
	if r.Card != nil {
		tx.Card = domain.Card{
			Number:   r.Card.Number,
			ExpYear:  r.Card.ExpYear,
			ExpMonth: r.Card.ExpMonth,
			CVNum:    domain.Some(r.Card.CVNum),
			TAVV:     domain.Some(r.Card.TAVV),
		}
	}
	if r.PARes != nil {
		tx.PARes = domain.PARes{
			Status:        r.PARes.Status,
			CAVV:          r.PARes.CAVV,
			ECI:           r.PARes.ECI,
			CavvAlgorithm: r.PARes.CavvAlgorithm,
		}
	}
	return tx
}

// FormRequest is the request body for POST /api/v1/forms.
type FormRequest struct {
	MerchantID     string `json:"merchant_id" binding:"required,max=64"`
	TerminalID     string `json:"terminal_id" binding:"required,max=64"`
	TotalAmount    string `json:"total_amount" binding:"required,max=256"`
	Currency       string `json:"currency" binding:"required,max=256"`
	Locale         string `json:"locale" binding:"max=256"`
	OrderID        string `json:"order_id" binding:"required,max=128"`
	PurchaseDesc   string `json:"purchase_desc" binding:"max=1024"`
	AltTotalAmount string `json:"alt_total_amount,omitempty" binding:"max=256"`
	AltCurrency    string `json:"alt_currency,omitempty" binding:"max=256"`
	SD             string `json:"sd,omitempty" binding:"max=256"`
	Delay          string `json:"delay,omitempty" binding:"max=256"`
	Ref3           string `json:"ref3,omitempty" binding:"max=256"`
}

// Fields maps the request onto the caller-supplied form values.
func (r FormRequest) Fields() domain.FormFields {
	return domain.FormFields{
		MerchantID:     r.MerchantID,
		TerminalID:     r.TerminalID,
		TotalAmount:    r.TotalAmount,
		Currency:       r.Currency,
		Locale:         r.Locale,
		OrderID:        r.OrderID,
		PurchaseDesc:   r.PurchaseDesc,
		AltTotalAmount: domain.Some(r.AltTotalAmount),
		AltCurrency:    domain.Some(r.AltCurrency),
		SD:             domain.Some(r.SD),
		Delay:          domain.Some(r.Delay),
		Ref3:           domain.Some(r.Ref3),
	}
}

// FormResponse is the signed legacy form, ready to be posted to the gateway.
type FormResponse struct {
	Version        int    `json:"version"`
	MerchantID     string `json:"merchant_id"`
	TerminalID     string `json:"terminal_id"`
	TotalAmount    string `json:"total_amount"`
	Currency       string `json:"currency"`
	Locale         string `json:"locale,omitempty"`
	PurchaseTime   string `json:"purchase_time"`
	OrderID        string `json:"order_id"`
	PurchaseDesc   string `json:"purchase_desc,omitempty"`
	AltTotalAmount string `json:"alt_total_amount,omitempty"`
	AltCurrency    string `json:"alt_currency,omitempty"`
	SD             string `json:"sd,omitempty"`
	Delay          string `json:"delay,omitempty"`
	Ref3           string `json:"ref3,omitempty"`
	Signature      string `json:"signature"`
}

// NewFormResponse converts a signed form.
func NewFormResponse(f domain.PaymentForm) FormResponse {
	return FormResponse{
		Version:        f.Version,
		MerchantID:     f.MerchantID,
		TerminalID:     f.TerminalID,
		TotalAmount:    f.TotalAmount,
		Currency:       f.Currency,
		Locale:         f.Locale,
		PurchaseTime:   f.PurchaseTime,
		OrderID:        f.OrderID,
		PurchaseDesc:   f.PurchaseDesc,
		AltTotalAmount: f.AltTotalAmount.Value(),
		AltCurrency:    f.AltCurrency.Value(),
		SD:             f.SD.Value(),
		Delay:          f.Delay.Value(),
		Ref3:           f.Ref3.Value(),
		Signature:      f.Signature,
	}
}

// DecodedResponse summarizes a decoded gateway reply.
type DecodedResponse struct {
	Kind     string `json:"kind"`
	RootTag  string `json:"root_tag"`
	Verified bool   `json:"verified"`
}

// NewDecodedResponse converts a parsed gateway reply.
func NewDecodedResponse(r *domain.GatewayResponse) DecodedResponse {
	return DecodedResponse{
		Kind:     string(r.Kind),
		RootTag:  r.RootTag(),
		Verified: r.Verified,
	}
}
