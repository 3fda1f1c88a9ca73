package config

import (
	"errors"
	"fmt"
	"strconv"
)

// longueur minimale du secret HS256
const minSecretLength = 16

// Validate vérifie la cohérence de la configuration
func (c *Config) Validate() error {
	var errs []error

	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT invalide: %q", c.Server.Port))
	}

	if len(c.Auth.JWTSecret) < minSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET doit contenir au moins %d caractères", minSecretLength))
	}

	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("JWT_TOKEN_TTL doit être positif"))
	}

	if c.Upload.Dir == "" {
		errs = append(errs, errors.New("UPLOAD_DIR est obligatoire"))
	}

	if c.Upload.MaxSize <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_SIZE doit être positif"))
	}

	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SERVER_SHUTDOWN_TIMEOUT doit être positif"))
	}

	return errors.Join(errs...)
}
