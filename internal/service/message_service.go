package service

import (
	"context"
	"fmt"

	"ecommerce-connect/internal/core/domain"
	"ecommerce-connect/internal/core/ports"
	"ecommerce-connect/internal/message"
	"ecommerce-connect/internal/xmldsig"
	"ecommerce-connect/pkg/apperror"

	"github.com/rs/zerolog"
)

// MessageSigningService implements ports.MessageService.
type MessageSigningService struct {
	keys   ports.PrivateKeySource
	signer *xmldsig.Signer
	log    zerolog.Logger
}

// NewMessageSigningService creates a new structured message signer.
func NewMessageSigningService(keys ports.PrivateKeySource, log zerolog.Logger) *MessageSigningService {
	return &MessageSigningService{
		keys:   keys,
		signer: xmldsig.NewSigner(),
		log:    log,
	}
}

// Sign builds the message for tx, wraps it in an enveloped signature and
// returns the serialized document. Nothing is returned on error.
func (s *MessageSigningService) Sign(ctx context.Context, tx domain.Transaction) ([]byte, error) {
	doc, err := message.Build(tx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, apperror.InternalError(err)
	}

	key, err := s.keys.PrivateKey()
	if err != nil {
		return nil, err
	}

	if err := s.signer.SignEnveloped(doc.Root(), key); err != nil {
		return nil, apperror.ErrSigningFailure(fmt.Errorf("signing %s message: %w", tx.Kind, err))
	}

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("serializing message: %w", err))
	}

	s.log.Debug().
		Str("kind", string(tx.Kind)).
		Str("merchant_id", tx.MerchantID).
		Str("order_id", tx.OrderID).
		Int("bytes", len(out)).
		Msg("gateway message signed")

	return out, nil
}
