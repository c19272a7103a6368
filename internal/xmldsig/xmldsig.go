// Package xmldsig signs and verifies whole-document enveloped XML signatures
// the way the payment gateway expects them: exclusive C14N, SHA-1 digest and
// RSA-SHA1 signature. The algorithms are fixed by the gateway protocol and
// are not configurable.
package xmldsig

import (
	"bytes"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/beevik/etree"
	dsig "github.com/russellhaering/goxmldsig"
	"github.com/russellhaering/goxmldsig/etreeutils"
)

const (
	Namespace = "http://www.w3.org/2000/09/xmldsig#"

	AlgorithmExcC14N   = "http://www.w3.org/2001/10/xml-exc-c14n#"
	AlgorithmEnveloped = "http://www.w3.org/2000/09/xmldsig#enveloped-signature"
	AlgorithmSHA1      = "http://www.w3.org/2000/09/xmldsig#sha1"
	AlgorithmRSASHA1   = "http://www.w3.org/2000/09/xmldsig#rsa-sha1"
)

const (
	defaultPrefix       = "ds"
	signatureTag        = "Signature"
	signedInfoTag       = "SignedInfo"
	signatureValueTag   = "SignatureValue"
	referenceTag        = "Reference"
	digestValueTag      = "DigestValue"
	digestMethodTag     = "DigestMethod"
	signatureMethodTag  = "SignatureMethod"
	canonicalizationTag = "CanonicalizationMethod"
	algorithmAttr       = "Algorithm"
	uriAttr             = "URI"
)

var (
	ErrNoSignature        = errors.New("xmldsig: signature element not found")
	ErrMultipleSignatures = errors.New("xmldsig: more than one signature element")
	ErrDigestMismatch     = errors.New("xmldsig: digest mismatch")
	ErrUnsupported        = errors.New("xmldsig: unsupported signature construction")
)

// Signer produces enveloped signatures over a document root.
type Signer struct {
	canonicalizer dsig.Canonicalizer
	prefix        string
}

// NewSigner returns a signer using the "ds" prefix.
func NewSigner() *Signer {
	return &Signer{
		canonicalizer: dsig.MakeC14N10ExclusiveCanonicalizerWithPrefixList(""),
		prefix:        defaultPrefix,
	}
}

// SignEnveloped appends a signature element to root covering the whole
// document (Reference URI=""). On error root is left unchanged.
func (s *Signer) SignEnveloped(root *etree.Element, key *rsa.PrivateKey) error {
	if key == nil {
		return errors.New("xmldsig: nil signing key")
	}
	if len(signatureElements(root)) > 0 {
		return errors.New("xmldsig: document is already signed")
	}

	canonical, err := s.canonicalizer.Canonicalize(root.Copy())
	if err != nil {
		return fmt.Errorf("canonicalizing document: %w", err)
	}
	digest := sha1.Sum(canonical)

	sig := root.CreateElement(s.tag(signatureTag))
	if !declares(root, s.prefix) {
		sig.CreateAttr("xmlns:"+s.prefix, Namespace)
	}
	if err := s.fillSignature(sig, digest[:], key); err != nil {
		root.RemoveChild(sig)
		return err
	}
	return nil
}

func (s *Signer) fillSignature(sig *etree.Element, digest []byte, key *rsa.PrivateKey) error {
	signedInfo := sig.CreateElement(s.tag(signedInfoTag))
	signedInfo.CreateElement(s.tag(canonicalizationTag)).CreateAttr(algorithmAttr, AlgorithmExcC14N)
	signedInfo.CreateElement(s.tag(signatureMethodTag)).CreateAttr(algorithmAttr, AlgorithmRSASHA1)

	ref := signedInfo.CreateElement(s.tag(referenceTag))
	ref.CreateAttr(uriAttr, "")
	transforms := ref.CreateElement(s.tag("Transforms"))
	transforms.CreateElement(s.tag("Transform")).CreateAttr(algorithmAttr, AlgorithmEnveloped)
	transforms.CreateElement(s.tag("Transform")).CreateAttr(algorithmAttr, AlgorithmExcC14N)
	ref.CreateElement(s.tag(digestMethodTag)).CreateAttr(algorithmAttr, AlgorithmSHA1)
	ref.CreateElement(s.tag(digestValueTag)).SetText(base64.StdEncoding.EncodeToString(digest))

	canonicalSignedInfo, err := canonicalizeDetached(s.canonicalizer, signedInfo)
	if err != nil {
		return err
	}
	hashed := sha1.Sum(canonicalSignedInfo)
	value, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA1, hashed[:])
	if err != nil {
		return fmt.Errorf("signing signed info: %w", err)
	}
	sig.CreateElement(s.tag(signatureValueTag)).SetText(base64.StdEncoding.EncodeToString(value))

	rsaKeyValue := sig.CreateElement(s.tag("KeyInfo")).
		CreateElement(s.tag("KeyValue")).
		CreateElement(s.tag("RSAKeyValue"))
	rsaKeyValue.CreateElement(s.tag("Modulus")).SetText(base64.StdEncoding.EncodeToString(key.N.Bytes()))
	rsaKeyValue.CreateElement(s.tag("Exponent")).SetText(base64.StdEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()))
	return nil
}

func (s *Signer) tag(local string) string {
	if s.prefix == "" {
		return local
	}
	return s.prefix + ":" + local
}

// Verify checks the single enveloped signature carried by root against pub.
func Verify(root *etree.Element, pub *rsa.PublicKey) error {
	sigs := signatureElements(root)
	switch len(sigs) {
	case 0:
		return ErrNoSignature
	case 1:
	default:
		return ErrMultipleSignatures
	}
	sig := sigs[0]
	canonicalizer := dsig.MakeC14N10ExclusiveCanonicalizerWithPrefixList("")

	signedInfo := child(sig, signedInfoTag)
	if signedInfo == nil {
		return fmt.Errorf("%w: missing SignedInfo", ErrUnsupported)
	}
	if err := expectAlgorithm(signedInfo, canonicalizationTag, AlgorithmExcC14N); err != nil {
		return err
	}
	if err := expectAlgorithm(signedInfo, signatureMethodTag, AlgorithmRSASHA1); err != nil {
		return err
	}
	ref := child(signedInfo, referenceTag)
	if ref == nil {
		return fmt.Errorf("%w: missing Reference", ErrUnsupported)
	}
	if uri := ref.SelectAttrValue(uriAttr, ""); uri != "" {
		return fmt.Errorf("%w: reference URI %q", ErrUnsupported, uri)
	}
	if err := expectAlgorithm(ref, digestMethodTag, AlgorithmSHA1); err != nil {
		return err
	}

	digestValue := child(ref, digestValueTag)
	if digestValue == nil {
		return fmt.Errorf("%w: missing DigestValue", ErrUnsupported)
	}
	wantDigest, err := decodeBase64(digestValue.Text())
	if err != nil {
		return fmt.Errorf("decoding digest value: %w", err)
	}

	unsigned := root.Copy()
	unsigned.RemoveChildAt(sig.Index())
	canonical, err := canonicalizer.Canonicalize(unsigned)
	if err != nil {
		return fmt.Errorf("canonicalizing document: %w", err)
	}
	gotDigest := sha1.Sum(canonical)
	if !bytes.Equal(gotDigest[:], wantDigest) {
		return ErrDigestMismatch
	}

	signatureValue := child(sig, signatureValueTag)
	if signatureValue == nil {
		return fmt.Errorf("%w: missing SignatureValue", ErrUnsupported)
	}
	value, err := decodeBase64(signatureValue.Text())
	if err != nil {
		return fmt.Errorf("decoding signature value: %w", err)
	}

	canonicalSignedInfo, err := canonicalizeDetached(canonicalizer, signedInfo)
	if err != nil {
		return err
	}
	hashed := sha1.Sum(canonicalSignedInfo)
	if err := rsa.VerifyPKCS1v15(pub, crypto.SHA1, hashed[:], value); err != nil {
		return fmt.Errorf("xmldsig: %w", err)
	}
	return nil
}

// canonicalizeDetached canonicalizes el as if it were cut out of its
// document, carrying the namespace declarations in scope at its position.
func canonicalizeDetached(c dsig.Canonicalizer, el *etree.Element) ([]byte, error) {
	ctx, err := etreeutils.NSBuildParentContext(el)
	if err != nil {
		return nil, fmt.Errorf("building namespace context: %w", err)
	}
	detached, err := etreeutils.NSDetatch(ctx, el)
	if err != nil {
		return nil, fmt.Errorf("detaching %s: %w", el.Tag, err)
	}
	out, err := c.Canonicalize(detached)
	if err != nil {
		return nil, fmt.Errorf("canonicalizing %s: %w", el.Tag, err)
	}
	return out, nil
}

func signatureElements(root *etree.Element) []*etree.Element {
	var out []*etree.Element
	for _, el := range root.ChildElements() {
		if el.Tag == signatureTag && el.NamespaceURI() == Namespace {
			out = append(out, el)
		}
	}
	return out
}

func child(parent *etree.Element, tag string) *etree.Element {
	for _, el := range parent.ChildElements() {
		if el.Tag == tag && el.NamespaceURI() == Namespace {
			return el
		}
	}
	return nil
}

func expectAlgorithm(parent *etree.Element, tag, want string) error {
	el := child(parent, tag)
	if el == nil {
		return fmt.Errorf("%w: missing %s", ErrUnsupported, tag)
	}
	if got := el.SelectAttrValue(algorithmAttr, ""); got != want {
		return fmt.Errorf("%w: %s %q", ErrUnsupported, tag, got)
	}
	return nil
}

func declares(el *etree.Element, prefix string) bool {
	for _, a := range el.Attr {
		if a.Space == "xmlns" && a.Key == prefix {
			return true
		}
	}
	return false
}

func decodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(strings.Join(strings.Fields(s), ""))
}
