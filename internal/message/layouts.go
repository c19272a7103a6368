package message

import "ecommerce-connect/internal/core/domain"

type envelope int

const (
	payEnvelope envelope = iota // XMLPayRequest/RequestData/Transactions/Transaction
	mpiEnvelope                 // XMLMPIRequest/MPIRequest
)

// layout declares the element path and blocks of one transaction kind.
type layout struct {
	envelope  envelope
	operation string
	data      string // empty for MPI kinds, whose blocks sit directly under the operation
	blocks    []block
}

var (
	withDescription = invoiceOptions{description: true}
	withCVNum       = cardOptions{cvNum: true}
)

var layouts = map[domain.Kind]layout{
	domain.KindMPIEnrol: {
		envelope:  mpiEnvelope,
		operation: "MPIEnrolRequest",
		blocks: []block{
			enrolInstrument(),
			element("TotalAmount", func(tx domain.Transaction) string { return tx.Invoice.TotalAmount }),
			element("Currency", func(tx domain.Transaction) string { return tx.Invoice.Currency }),
			element("Description", func(tx domain.Transaction) string { return tx.Invoice.Description.Value() }),
			element("DeviceCategory", func(tx domain.Transaction) string {
				return tx.DeviceCategory.Or(domain.DefaultDeviceCategory)
			}),
		},
	},
	domain.KindMPIAuth: {
		envelope:  mpiEnvelope,
		operation: "MPIAuthRequest",
		blocks:    []block{pares()},
	},
	domain.KindAuthorization: {
		operation: "Authorization",
		data:      "PayData",
		blocks:    []block{invoice(withDescription), card(withCVNum), pares()},
	},
	domain.KindRefund: {
		operation: "Refund",
		data:      "RefundData",
		blocks:    []block{invoice(withDescription), reference("AuthorizationRef"), amount("RefundAmount")},
	},
	domain.KindPreauthorization: {
		operation: "Preauthorization",
		data:      "PayData",
		blocks: []block{
			invoice(withDescription), card(withCVNum), pares(),
			optional("Walletid", func(tx domain.Transaction) domain.Text { return tx.WalletID }),
		},
	},
	domain.KindPostauthorization: {
		operation: "Postauthorization",
		data:      "PostauthorizationData",
		blocks:    []block{invoice(withDescription), reference("PreauthorizationRef"), amount("PostauthorizationAmount")},
	},
	domain.KindTransactionState: {
		operation: "TransactionStateReq",
		data:      "TransactionStateReqData",
		blocks:    []block{invoice(invoiceOptions{})},
	},
	domain.KindAccountVerification: {
		operation: "Authorization",
		data:      "PayData",
		blocks:    []block{invoice(withDescription), card(withCVNum)},
	},
	domain.KindRecurrent: {
		operation: "Authorization",
		data:      "PayData",
		blocks:    []block{invoice(withDescription), card(withCVNum), fixed("Recurrent", "true")},
	},
	domain.KindSettlementRefund: {
		operation: "Settlement",
		data:      "SettlementRefundData",
		blocks: []block{
			invoice(withDescription), card(cardOptions{}),
			optional("ApprovalCode", func(tx domain.Transaction) domain.Text { return tx.ApprovalCode }),
			optional("Rrn", func(tx domain.Transaction) domain.Text { return tx.Rrn }),
			optional("ECI", func(tx domain.Transaction) domain.Text { return tx.ECI }),
			optional("PosConditionCode", func(tx domain.Transaction) domain.Text { return tx.PosConditionCode }),
			element("Ref3", func(tx domain.Transaction) string { return tx.Ref3.Value() }),
		},
	},
	domain.KindMasterPassAuthorization: {
		operation: "Authorization",
		data:      "PayData",
		blocks: []block{
			invoice(withDescription), card(withCVNum), pares(),
			element("Walletid", func(tx domain.Transaction) string { return tx.WalletID.Value() }),
		},
	},
	domain.KindVisaCheckoutAuthorization: {
		operation: "Authorization",
		data:      "PayData",
		blocks:    []block{invoice(withDescription), nest("Card", visaCheckoutWallet())},
	},
	domain.KindVisaCheckoutPCIAuthorization: {
		operation: "Authorization",
		data:      "PayData",
		blocks:    []block{invoice(withDescription), card(withCVNum), pares(), visaCheckoutWallet()},
	},
	domain.KindAppleGooglePayAuthorization: {
		operation: "Authorization",
		data:      "PayData",
		blocks:    []block{invoice(withDescription), card(cardOptions{tavv: true})},
	},
}
