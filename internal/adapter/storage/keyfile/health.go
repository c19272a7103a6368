package keyfile

import "context"

// HealthCheck implements ports.HealthChecker by loading the signing key.
type HealthCheck struct {
	src PrivateKeySource
}

// NewHealthCheck creates a health checker for src.
func NewHealthCheck(src PrivateKeySource) *HealthCheck {
	return &HealthCheck{src: src}
}

// Ping reports whether the signing key can be loaded.
func (h *HealthCheck) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := h.src.PrivateKey()
	return err
}

// Name returns the dependency name.
func (h *HealthCheck) Name() string {
	return "signing_key"
}
