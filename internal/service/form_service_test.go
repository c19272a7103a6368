package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"ecommerce-connect/internal/adapter/storage/keyfile"
	"ecommerce-connect/internal/core/domain"
	"ecommerce-connect/internal/core/ports/mocks"
	"ecommerce-connect/internal/testkeys"
	"ecommerce-connect/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestFormSigningService_Sign_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	keys := mocks.NewMockPrivateKeySource(ctrl)
	key := testkeys.Key(t)
	keys.EXPECT().PrivateKey().Return(key, nil)

	svc := NewFormSigningService(keys, zerolog.Nop())
	form := baseForm()

	signed, err := svc.Sign(context.Background(), form)
	require.NoError(t, err)
	assert.NotEmpty(t, signed.Signature)
	assert.Empty(t, form.Signature, "input form is not modified")

	signed.Signature, form.Signature = "", ""
	assert.Equal(t, form, signed)
}

func TestFormSigningService_Sign_Verifies(t *testing.T) {
	key := testkeys.Key(t)
	svc := NewFormSigningService(keyfile.NewFile(testkeys.WritePKCS1(t, key)), zerolog.Nop())

	form := baseForm()
	form.AltCurrency = domain.Some("840")
	form.AltTotalAmount = domain.Some("3")
	form.Ref3 = domain.Some("r3")

	signed, err := svc.Sign(context.Background(), form)
	require.NoError(t, err)
	assert.NoError(t, VerifyFormSignature(signed, &key.PublicKey))

	tampered := signed
	tampered.TotalAmount = "1000"
	assert.Error(t, VerifyFormSignature(tampered, &key.PublicKey))
}

func TestFormSigningService_Sign_Deterministic(t *testing.T) {
	ctrl := gomock.NewController(t)
	keys := mocks.NewMockPrivateKeySource(ctrl)
	keys.EXPECT().PrivateKey().Return(testkeys.Key(t), nil).Times(2)

	svc := NewFormSigningService(keys, zerolog.Nop())
	first, err := svc.Sign(context.Background(), baseForm())
	require.NoError(t, err)
	second, err := svc.Sign(context.Background(), baseForm())
	require.NoError(t, err)
	assert.Equal(t, first.Signature, second.Signature)
}

func TestFormSigningService_Sign_AltMismatchBeforeKeyAccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	keys := mocks.NewMockPrivateKeySource(ctrl) // no PrivateKey call expected

	svc := NewFormSigningService(keys, zerolog.Nop())
	form := baseForm()
	form.AltTotalAmount = domain.Some("3")

	signed, err := svc.Sign(context.Background(), form)
	assert.True(t, errors.Is(err, apperror.ErrAltCurrencyAmount()))
	assert.Empty(t, signed.Signature)
}

func TestFormSigningService_Sign_KeyErrors(t *testing.T) {
	key := testkeys.Key(t)

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"missing file", filepath.Join(t.TempDir(), "missing.pem"), apperror.ErrKeyNotFound("", nil)},
		{"pkcs8 key", testkeys.WritePKCS8(t, key), apperror.ErrInvalidKeyFormat(nil)},
		{"public key", testkeys.WritePublicKey(t, key), apperror.ErrInvalidKeyFormat(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFormSigningService(keyfile.NewFile(tt.path), zerolog.Nop())
			signed, err := svc.Sign(context.Background(), baseForm())
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Equal(t, domain.PaymentForm{}, signed)
		})
	}
}

func TestFormSigningService_Sign_PropagatesKeyError(t *testing.T) {
	ctrl := gomock.NewController(t)
	keys := mocks.NewMockPrivateKeySource(ctrl)
	wantErr := apperror.ErrKeyUnreadable(errors.New("permission denied"))
	keys.EXPECT().PrivateKey().Return(nil, wantErr)

	_, err := NewFormSigningService(keys, zerolog.Nop()).Sign(context.Background(), baseForm())
	assert.Same(t, wantErr, err)
}
