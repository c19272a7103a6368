// Package message assembles unsigned ECommerceConnect request documents.
// Each transaction kind is described by a layout in layouts.go; Build walks
// the layout once to produce the element tree.
package message

import (
	"fmt"

	"ecommerce-connect/internal/core/domain"
	"ecommerce-connect/internal/xmldsig"
	"ecommerce-connect/pkg/apperror"

	"github.com/beevik/etree"
)

const (
	RootTag         = "ECommerceConnect"
	ProtocolVersion = "1.0"

	NamespaceXMLEnc   = "http://www.w3.org/2001/04/xmlenc#"
	NamespaceXSI      = "http://www.w3.org/2001/XMLSchema-instance"
	PaySchemaLocation = "https://secure.upc.ua/go/pub/schema/xmlpay-1.21.xsd"
)

// Build validates tx and returns its unsigned document. The document has no
// XML declaration.
func Build(tx domain.Transaction) (*etree.Document, error) {
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	l, ok := layouts[tx.Kind]
	if !ok {
		return nil, apperror.Validation(fmt.Sprintf("no message layout for kind %q", tx.Kind))
	}

	doc := etree.NewDocument()
	msg := newRoot(doc).CreateElement("Message")
	msg.CreateAttr("id", tx.OrderID)
	msg.CreateAttr("version", ProtocolVersion)

	var op *etree.Element
	switch l.envelope {
	case mpiEnvelope:
		req := msg.CreateElement("XMLMPIRequest")
		identify(req, tx)
		mpi := req.CreateElement("MPIRequest")
		mpi.CreateAttr("id", tx.OrderID)
		op = mpi.CreateElement(l.operation)
	default:
		data := msg.CreateElement("XMLPayRequest").CreateElement("RequestData")
		identify(data, tx)
		t := data.CreateElement("Transactions").CreateElement("Transaction")
		t.CreateAttr("id", tx.OrderID)
		op = t.CreateElement(l.operation)
	}

	target := op
	if l.data != "" {
		target = op.CreateElement(l.data)
	}
	for _, b := range l.blocks {
		b(target, tx)
	}
	return doc, nil
}

// Operation returns the operation and data element names used for kind.
func Operation(kind domain.Kind) (operation, data string, ok bool) {
	l, ok := layouts[kind]
	return l.operation, l.data, ok
}

func newRoot(doc *etree.Document) *etree.Element {
	root := doc.CreateElement(RootTag)
	root.CreateAttr("xmlns:xenc", NamespaceXMLEnc)
	root.CreateAttr("xmlns:ds", xmldsig.Namespace)
	root.CreateAttr("xmlns:xsi", NamespaceXSI)
	root.CreateAttr("xmlns:noNamespaceSchemaLocation", PaySchemaLocation)
	return root
}

func identify(parent *etree.Element, tx domain.Transaction) {
	parent.CreateElement("MerchantID").SetText(tx.MerchantID)
	parent.CreateElement("TerminalID").SetText(tx.TerminalID)
}
