package domain

import "fmt"

// Kind identifies a gateway transaction message type.
type Kind string

const (
	KindMPIEnrol                     Kind = "mpi-enrol"
	KindMPIAuth                      Kind = "mpi-auth"
	KindAuthorization                Kind = "authorization"
	KindRefund                       Kind = "refund"
	KindPreauthorization             Kind = "preauthorization"
	KindPostauthorization            Kind = "postauthorization"
	KindTransactionState             Kind = "transaction-state"
	KindAccountVerification          Kind = "account-verification"
	KindRecurrent                    Kind = "recurrent"
	KindSettlementRefund             Kind = "settlement-refund"
	KindMasterPassAuthorization      Kind = "masterpass"
	KindVisaCheckoutAuthorization    Kind = "visa-checkout"
	KindVisaCheckoutPCIAuthorization Kind = "visa-checkout-pci"
	KindAppleGooglePayAuthorization  Kind = "apple-google-pay"
)

// Kinds lists every supported kind in a stable order.
var Kinds = []Kind{
	KindMPIEnrol,
	KindMPIAuth,
	KindAuthorization,
	KindRefund,
	KindPreauthorization,
	KindPostauthorization,
	KindTransactionState,
	KindAccountVerification,
	KindRecurrent,
	KindSettlementRefund,
	KindMasterPassAuthorization,
	KindVisaCheckoutAuthorization,
	KindVisaCheckoutPCIAuthorization,
	KindAppleGooglePayAuthorization,
}

// ParseKind resolves a kind from its string form.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown transaction kind %q", s)
}

// IsMPI reports whether the kind travels in the XMLMPIRequest envelope.
func (k Kind) IsMPI() bool {
	return k == KindMPIEnrol || k == KindMPIAuth
}
