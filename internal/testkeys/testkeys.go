// Package testkeys generates throwaway RSA keys and key files for tests.
package testkeys

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

var (
	once   sync.Once
	shared *rsa.PrivateKey
	genErr error
)

// Key returns a 2048-bit key shared by every test in the binary.
func Key(t testing.TB) *rsa.PrivateKey {
	t.Helper()
	once.Do(func() {
		shared, genErr = rsa.GenerateKey(rand.Reader, 2048)
	})
	if genErr != nil {
		t.Fatalf("generating RSA key: %v", genErr)
	}
	return shared
}

// WritePKCS1 writes key as an "RSA PRIVATE KEY" PEM file and returns its path.
func WritePKCS1(t testing.TB, key *rsa.PrivateKey) string {
	t.Helper()
	return write(t, "merchant.pem", "RSA PRIVATE KEY", x509.MarshalPKCS1PrivateKey(key))
}

// WritePKCS8 writes key as a "PRIVATE KEY" PEM file and returns its path.
func WritePKCS8(t testing.TB, key *rsa.PrivateKey) string {
	t.Helper()
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshaling PKCS#8 key: %v", err)
	}
	return write(t, "merchant-pkcs8.pem", "PRIVATE KEY", der)
}

// WritePublicKey writes the public half of key as a "PUBLIC KEY" PEM file.
func WritePublicKey(t testing.TB, key *rsa.PrivateKey) string {
	t.Helper()
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshaling public key: %v", err)
	}
	return write(t, "gateway.pub.pem", "PUBLIC KEY", der)
}

// WriteFile writes raw content to a temp file and returns its path.
func WriteFile(t testing.TB, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func write(t testing.TB, name, blockType string, der []byte) string {
	t.Helper()
	return WriteFile(t, name, pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der}))
}
