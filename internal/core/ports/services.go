package ports

import (
	"context"
	"crypto/rsa"
	"time"

	"ecommerce-connect/internal/core/domain"
)

// PrivateKeySource yields the merchant signing key. Implementations may
// read the key file on every call or cache it.
type PrivateKeySource interface {
	PrivateKey() (*rsa.PrivateKey, error)
}

// --- Service Ports (Business Logic) ---

// MessageService builds and signs structured gateway messages.
type MessageService interface {
	// Sign returns the serialized, signed ECommerceConnect document for tx.
	Sign(ctx context.Context, tx domain.Transaction) ([]byte, error)
}

// FormService signs legacy payment forms.
type FormService interface {
	// Sign returns a copy of form with Signature populated.
	Sign(ctx context.Context, form domain.PaymentForm) (domain.PaymentForm, error)
}

// ResponseDecoder parses raw gateway replies.
type ResponseDecoder interface {
	Decode(ctx context.Context, kind domain.Kind, payload []byte) (*domain.GatewayResponse, error)
}

// TokenService handles JWT token operations for API callers.
type TokenService interface {
	Generate(subject string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Subject string
}
