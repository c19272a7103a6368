package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"ecommerce-connect/internal/core/domain"
	"ecommerce-connect/internal/core/ports/mocks"
	"ecommerce-connect/internal/testkeys"
	"ecommerce-connect/internal/xmldsig"
	"ecommerce-connect/pkg/apperror"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// minimalTx returns the smallest valid transaction of kind.
func minimalTx(kind domain.Kind) domain.Transaction {
	tx := domain.Transaction{
		Kind:       kind,
		MerchantID: "1",
		TerminalID: "2",
		OrderID:    "A1",
		Invoice:    domain.Invoice{Date: "01012023", TotalAmount: "100", Currency: "980"},
	}
	if kind != domain.KindVisaCheckoutAuthorization {
		tx.Card = domain.Card{Number: "4111111111111111", ExpYear: "25", ExpMonth: "12"}
	}
	return tx
}

func TestMessageSigningService_Sign_AllKinds(t *testing.T) {
	key := testkeys.Key(t)

	for _, kind := range domain.Kinds {
		t.Run(string(kind), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			keys := mocks.NewMockPrivateKeySource(ctrl)
			keys.EXPECT().PrivateKey().Return(key, nil)

			out, err := NewMessageSigningService(keys, zerolog.Nop()).Sign(context.Background(), minimalTx(kind))
			require.NoError(t, err)
			assert.False(t, bytes.HasPrefix(out, []byte("<?xml")), "no declaration")

			doc := etree.NewDocument()
			require.NoError(t, doc.ReadFromBytes(out))
			assert.Equal(t, "ECommerceConnect", doc.Root().Tag)
			assert.Len(t, doc.FindElements("//ds:Signature"), 1)
			assert.NoError(t, xmldsig.Verify(doc.Root(), &key.PublicKey))
		})
	}
}

func TestMessageSigningService_Sign_RefundExample(t *testing.T) {
	key := testkeys.Key(t)
	ctrl := gomock.NewController(t)
	keys := mocks.NewMockPrivateKeySource(ctrl)
	keys.EXPECT().PrivateKey().Return(key, nil)

	tx := domain.Transaction{
		Kind:         domain.KindRefund,
		MerchantID:   "1",
		TerminalID:   "2",
		OrderID:      "A1",
		Invoice:      domain.Invoice{Date: "01012023", TotalAmount: "100", Currency: "980", Description: domain.Some("")},
		ApprovalCode: domain.Some("55"),
		Rrn:          domain.Some("999"),
		Amount:       domain.Some("100"),
	}

	out, err := NewMessageSigningService(keys, zerolog.Nop()).Sign(context.Background(), tx)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	data := doc.FindElements("/ECommerceConnect/Message/XMLPayRequest/RequestData/Transactions/Transaction[@id='A1']/Refund/RefundData")
	require.Len(t, data, 1)
	assert.Equal(t, "A1", data[0].FindElement("Invoice/OrderID").Text())
	assert.Nil(t, data[0].FindElement("Invoice/Description"))
	assert.Len(t, doc.FindElements("//ds:Signature"), 1)
	assert.NoError(t, xmldsig.Verify(doc.Root(), &key.PublicKey))
}

func TestMessageSigningService_Sign_ValidationBeforeKeyAccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	keys := mocks.NewMockPrivateKeySource(ctrl) // no PrivateKey call expected

	tx := minimalTx(domain.KindAuthorization)
	tx.OrderID = ""

	out, err := NewMessageSigningService(keys, zerolog.Nop()).Sign(context.Background(), tx)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, apperror.Validation("")))
}

func TestMessageSigningService_Sign_PropagatesKeyError(t *testing.T) {
	ctrl := gomock.NewController(t)
	keys := mocks.NewMockPrivateKeySource(ctrl)
	wantErr := apperror.ErrInvalidKeyFormat(nil)
	keys.EXPECT().PrivateKey().Return(nil, wantErr)

	out, err := NewMessageSigningService(keys, zerolog.Nop()).Sign(context.Background(), minimalTx(domain.KindRefund))
	assert.Nil(t, out)
	assert.Same(t, wantErr, err)
}

func TestMessageSigningService_Sign_CanceledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	keys := mocks.NewMockPrivateKeySource(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := NewMessageSigningService(keys, zerolog.Nop()).Sign(ctx, minimalTx(domain.KindRefund))
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, context.Canceled))
}
