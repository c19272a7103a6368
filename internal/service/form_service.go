package service

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"encoding/base64"
	"fmt"

	"ecommerce-connect/internal/core/domain"
	"ecommerce-connect/internal/core/ports"
	"ecommerce-connect/pkg/apperror"

	"github.com/rs/zerolog"
)

// FormSigningService implements ports.FormService with RSA-SHA1 over the
// legacy canonical string.
type FormSigningService struct {
	keys ports.PrivateKeySource
	log  zerolog.Logger
}

// NewFormSigningService creates a new legacy form signer.
func NewFormSigningService(keys ports.PrivateKeySource, log zerolog.Logger) *FormSigningService {
	return &FormSigningService{keys: keys, log: log}
}

// Sign canonicalizes form, signs it and returns the form with Signature set.
// Canonicalization errors are returned before the key is loaded.
func (s *FormSigningService) Sign(ctx context.Context, form domain.PaymentForm) (domain.PaymentForm, error) {
	data, err := BuildCanonicalString(form)
	if err != nil {
		return domain.PaymentForm{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.PaymentForm{}, apperror.InternalError(err)
	}

	key, err := s.keys.PrivateKey()
	if err != nil {
		return domain.PaymentForm{}, err
	}

	hashed := sha1.Sum([]byte(data))
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA1, hashed[:])
	if err != nil {
		return domain.PaymentForm{}, apperror.ErrSigningFailure(fmt.Errorf("signing form: %w", err))
	}

	form.Signature = base64.StdEncoding.EncodeToString(sig)

	s.log.Debug().
		Str("merchant_id", form.MerchantID).
		Str("order_id", form.OrderID).
		Str("purchase_time", form.PurchaseTime).
		Msg("payment form signed")

	return form, nil
}

// VerifyFormSignature checks form.Signature against the canonical string
// of form using pub.
func VerifyFormSignature(form domain.PaymentForm, pub *rsa.PublicKey) error {
	data, err := BuildCanonicalString(form)
	if err != nil {
		return err
	}
	sig, err := base64.StdEncoding.DecodeString(form.Signature)
	if err != nil {
		return fmt.Errorf("decoding signature: %w", err)
	}
	hashed := sha1.Sum([]byte(data))
	return rsa.VerifyPKCS1v15(pub, crypto.SHA1, hashed[:], sig)
}
