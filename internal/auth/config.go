package auth

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// authEnv holds raw env values before post-parse validation.
type authEnv struct {
	Secret string        `env:"FORMDESIGNER_SESSION_SECRET"`
	TTL    time.Duration `env:"FORMDESIGNER_SESSION_TTL" envDefault:"12h"`
	Issuer string        `env:"FORMDESIGNER_SESSION_ISSUER" envDefault:"formdesigner"`
}

// Config defines how session tokens are signed and verified.
type Config struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
	Now    func() time.Time
	// Ephemeral is set when no secret was configured and a random one was
	// generated; sessions do not survive a restart.
	Ephemeral bool
}

// MinPasswordLength is the only credential rule the login stub enforces.
const MinPasswordLength = 6

// LoadConfigFromEnv reads session configuration.
func LoadConfigFromEnv(now func() time.Time) (Config, error) {
	var raw authEnv
	if err := env.Parse(&raw); err != nil {
		return Config{}, fmt.Errorf("parse auth env: %w", err)
	}
	if raw.TTL <= 0 {
		return Config{}, fmt.Errorf("FORMDESIGNER_SESSION_TTL must be positive")
	}
	if now == nil {
		now = time.Now
	}
	cfg := Config{
		Secret: []byte(strings.TrimSpace(raw.Secret)),
		TTL:    raw.TTL,
		Issuer: strings.TrimSpace(raw.Issuer),
		Now:    now,
	}
	if len(cfg.Secret) == 0 {
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return Config{}, fmt.Errorf("generate session secret: %w", err)
		}
		cfg.Secret = secret
		cfg.Ephemeral = true
	}
	return cfg, nil
}
