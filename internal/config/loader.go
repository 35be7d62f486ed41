package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultFile is read from the working directory when no explicit path is
// given and it exists.
const DefaultFile = "formdesigner.yaml"

// EnvPrefix prefixes every environment override, e.g. FORMDESIGNER_SERVER_ADDR.
const EnvPrefix = "FORMDESIGNER"

// ErrConfigFile wraps failures reading an explicit or discovered config file.
var ErrConfigFile = errors.New("config: read config file")

// Loader handles loading configuration from multiple sources
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}
	return &Loader{v: v}
}

// Load resolves configuration.
// Precedence: CLI overrides > environment > config file > defaults.
func (l *Loader) Load(path string, overrides map[string]any) (*Config, error) {
	if err := l.readFile(path); err != nil {
		return nil, err
	}
	for key, value := range overrides {
		if value == nil {
			continue
		}
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		l.v.Set(key, value)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return &cfg, nil
}

func (l *Loader) readFile(path string) error {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultFile
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}
	l.v.SetConfigFile(path)
	if err := l.v.ReadInConfig(); err != nil {
		return fmt.Errorf("%w %s: %v", ErrConfigFile, path, err)
	}
	return nil
}

// Load is shorthand for NewLoader().Load.
func Load(path string, overrides map[string]any) (*Config, error) {
	return NewLoader().Load(path, overrides)
}
