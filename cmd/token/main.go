// Command token issues a bearer token for an API caller using the
// configured JWT secret.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"ecommerce-connect/config"
	"ecommerce-connect/internal/service"
)

func main() {
	subject := flag.String("subject", "", "caller id recorded in the token and used for rate limiting")
	cfgPath := flag.String("config", os.Getenv("ECC_CONFIG"), "config file path")
	flag.Parse()

	if err := run(*cfgPath, *subject); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfgPath, subject string) error {
	if subject == "" {
		return fmt.Errorf("-subject is required")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if cfg.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is not configured")
	}

	token, expiresAt, err := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer).Generate(subject)
	if err != nil {
		return fmt.Errorf("generating token: %w", err)
	}
	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires %s\n", expiresAt.UTC().Format(time.RFC3339))
	return nil
}
