package domain

import "github.com/beevik/etree"

// GatewayResponse is a parsed gateway reply.
// Field-level outcome extraction per kind is left to the caller through
// Lookup until the gateway's reply schema is pinned down.
type GatewayResponse struct {
	Kind     Kind
	Document *etree.Document
	// Verified is true when the enveloped signature was checked against the
	// configured gateway key.
	Verified bool
}

// RootTag returns the tag of the document element, or "" for an empty document.
func (r *GatewayResponse) RootTag() string {
	if r.Document == nil || r.Document.Root() == nil {
		return ""
	}
	return r.Document.Root().Tag
}

// Lookup returns the text of the first element matching an etree path
// (for example "./Message/XMLPayResponse//TranCode").
func (r *GatewayResponse) Lookup(path string) (string, bool) {
	if r.Document == nil || r.Document.Root() == nil {
		return "", false
	}
	el := r.Document.Root().FindElement(path)
	if el == nil {
		return "", false
	}
	return el.Text(), true
}
