package message

import (
	"ecommerce-connect/internal/core/domain"

	"github.com/beevik/etree"
)

// block appends one structural piece of a message below parent.
type block func(parent *etree.Element, tx domain.Transaction)

type field func(tx domain.Transaction) string

type optionalField func(tx domain.Transaction) domain.Text

// element always emits tag, even when its value is empty.
func element(tag string, value field) block {
	return func(parent *etree.Element, tx domain.Transaction) {
		parent.CreateElement(tag).SetText(value(tx))
	}
}

// optional emits tag only when its value is present.
func optional(tag string, value optionalField) block {
	return func(parent *etree.Element, tx domain.Transaction) {
		if v, ok := value(tx).Get(); ok {
			parent.CreateElement(tag).SetText(v)
		}
	}
}

func fixed(tag, value string) block {
	return element(tag, func(domain.Transaction) string { return value })
}

// nest emits tag and runs children below it.
func nest(tag string, children ...block) block {
	return func(parent *etree.Element, tx domain.Transaction) {
		el := parent.CreateElement(tag)
		for _, child := range children {
			child(el, tx)
		}
	}
}

type invoiceOptions struct {
	description bool
}

// invoice emits OrderID, Date, TotalAmount and Currency, followed by
// Description when enabled and present.
func invoice(opts invoiceOptions) block {
	children := []block{
		element("OrderID", func(tx domain.Transaction) string { return tx.OrderID }),
		element("Date", func(tx domain.Transaction) string { return tx.Invoice.Date }),
		element("TotalAmount", func(tx domain.Transaction) string { return tx.Invoice.TotalAmount }),
		element("Currency", func(tx domain.Transaction) string { return tx.Invoice.Currency }),
	}
	if opts.description {
		children = append(children, optional("Description", func(tx domain.Transaction) domain.Text { return tx.Invoice.Description }))
	}
	return nest("Invoice", children...)
}

type cardOptions struct {
	cvNum bool
	tavv  bool
}

func cardFields(opts cardOptions) []block {
	out := []block{
		element("CardNum", func(tx domain.Transaction) string { return tx.Card.Number }),
		element("ExpYear", func(tx domain.Transaction) string { return tx.Card.ExpYear }),
		element("ExpMonth", func(tx domain.Transaction) string { return tx.Card.ExpMonth }),
	}
	if opts.cvNum {
		out = append(out, optional("CVNum", func(tx domain.Transaction) domain.Text { return tx.Card.CVNum }))
	}
	if opts.tavv {
		out = append(out, func(parent *etree.Element, tx domain.Transaction) {
			if v, ok := tx.Card.TAVV.Get(); ok {
				parent.CreateElement("ExtDataToken").CreateElement("TAVV").SetText(v)
			}
		})
	}
	return out
}

func card(opts cardOptions) block {
	return nest("Card", cardFields(opts)...)
}

func pares() block {
	return nest("PARes",
		element("Status", func(tx domain.Transaction) string { return tx.PARes.Status }),
		element("CAVV", func(tx domain.Transaction) string { return tx.PARes.CAVV }),
		element("ECI", func(tx domain.Transaction) string { return tx.PARes.ECI }),
		element("CavvAlgorithm", func(tx domain.Transaction) string { return tx.PARes.CavvAlgorithm }),
	)
}

// reference emits an AuthorizationRef or PreauthorizationRef block.
func reference(tag string) block {
	return nest(tag,
		element("ApprovalCode", func(tx domain.Transaction) string { return tx.ApprovalCode.Value() }),
		element("Rrn", func(tx domain.Transaction) string { return tx.Rrn.Value() }),
	)
}

func amount(tag string) block {
	return element(tag, func(tx domain.Transaction) string { return tx.Amount.Value() })
}

func visaCheckoutWallet() block {
	return nest("Wallet", nest("VISACheckout",
		element("CallID", func(tx domain.Transaction) string { return tx.CallID.Value() }),
	))
}

// enrolInstrument emits flat card fields, or the UPC token reference when
// one is given.
func enrolInstrument() block {
	flat := cardFields(cardOptions{})
	return func(parent *etree.Element, tx domain.Transaction) {
		if token, ok := tx.UpcToken.Get(); ok {
			parent.CreateElement("Token").CreateElement("UpcToken").CreateElement("TokenID").SetText(token)
			return
		}
		for _, b := range flat {
			b(parent, tx)
		}
	}
}
