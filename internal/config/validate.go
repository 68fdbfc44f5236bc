package config

import (
	"fmt"
	"net/mail"
)

const minBootstrapPasswordLen = 8

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Auth.validateBootstrap(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be >= 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	return nil
}

func (a *AuthConfig) validateBootstrap() error {
	if a.BootstrapAdminEmail == "" && a.BootstrapAdminPassword == "" {
		return nil
	}
	if a.BootstrapAdminEmail == "" || a.BootstrapAdminPassword == "" {
		return fmt.Errorf("bootstrap_admin_email and bootstrap_admin_password must be set together")
	}
	if _, err := mail.ParseAddress(a.BootstrapAdminEmail); err != nil {
		return fmt.Errorf("bootstrap_admin_email: %w", err)
	}
	if len(a.BootstrapAdminPassword) < minBootstrapPasswordLen {
		return fmt.Errorf("bootstrap_admin_password must be at least %d characters", minBootstrapPasswordLen)
	}
	return nil
}

func (s *StorageConfig) validate() error {
	switch s.Driver {
	case StorageDriverMinIO:
		if s.Endpoint == "" {
			return fmt.Errorf("endpoint is required for the minio driver")
		}
	case StorageDriverS3:
	default:
		return fmt.Errorf("unknown driver %q (want %q or %q)", s.Driver, StorageDriverMinIO, StorageDriverS3)
	}
	if s.Bucket == "" {
		return fmt.Errorf("bucket is required")
	}
	if s.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be > 0 (got %d)", s.MaxUploadBytes)
	}
	return nil
}
