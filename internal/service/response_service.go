package service

import (
	"bytes"
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"unicode/utf8"

	"ecommerce-connect/internal/core/domain"
	"ecommerce-connect/internal/xmldsig"
	"ecommerce-connect/pkg/apperror"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
)

// ResponseDecodingService implements ports.ResponseDecoder.
type ResponseDecodingService struct {
	gatewayKey *rsa.PublicKey // nil disables signature checks
	log        zerolog.Logger
}

// NewResponseDecodingService creates a decoder. When gatewayKey is nil,
// replies are parsed without checking their signature.
func NewResponseDecodingService(gatewayKey *rsa.PublicKey, log zerolog.Logger) *ResponseDecodingService {
	return &ResponseDecodingService{gatewayKey: gatewayKey, log: log}
}

// Decode parses a raw gateway reply leniently and verifies its enveloped
// signature when a gateway key is configured. Broken markup is tolerated as
// long as a document element was read before the parser gave up.
func (s *ResponseDecodingService) Decode(_ context.Context, kind domain.Kind, payload []byte) (*domain.GatewayResponse, error) {
	if _, err := domain.ParseKind(string(kind)); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if !isText(payload) {
		return nil, apperror.ErrWrongInputType()
	}

	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromBytes(payload); err != nil {
		// etree keeps the elements read before the error.
		if doc.Root() == nil {
			return nil, apperror.ErrMalformedResponse(err)
		}
		s.log.Warn().Err(err).Str("kind", string(kind)).Msg("recovered partial gateway response")
	}
	if doc.Root() == nil {
		return nil, apperror.ErrMalformedResponse(errors.New("no document element"))
	}

	resp := &domain.GatewayResponse{Kind: kind, Document: doc}
	if s.gatewayKey == nil {
		s.log.Debug().Str("kind", string(kind)).Msg("no gateway key configured, response signature not checked")
		return resp, nil
	}

	if err := xmldsig.Verify(doc.Root(), s.gatewayKey); err != nil {
		s.log.Warn().Err(err).Str("kind", string(kind)).Msg("gateway response signature rejected")
		return nil, apperror.ErrResponseSignature(fmt.Errorf("verifying %s response: %w", kind, err))
	}
	resp.Verified = true
	return resp, nil
}

// isText reports whether payload is non-empty UTF-8 text without NUL bytes.
func isText(payload []byte) bool {
	return len(bytes.TrimSpace(payload)) > 0 && utf8.Valid(payload) && bytes.IndexByte(payload, 0) < 0
}
