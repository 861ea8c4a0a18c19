package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/staffql/pkg/cryptox"
	"github.com/aussiebroadwan/staffql/pkg/jwtx"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variables before they are mapped to
// config keys, so STAFFQL_STORE_URI sets store.uri.
const EnvPrefix = "STAFFQL_"

// Store drivers.
const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

type Config struct {
	Env string `koanf:"env"` // dev, staging, prod

	Log struct {
		Level  string `koanf:"level"`  // debug, info, warn, error
		Format string `koanf:"format"` // json, text
	} `koanf:"log"`

	HTTP struct {
		Port          int           `koanf:"port"`
		ShutdownGrace time.Duration `koanf:"shutdowngrace"`
	} `koanf:"http"`

	Store struct {
		Driver   string        `koanf:"driver"`
		URI      string        `koanf:"uri"`      // mongo only
		Database string        `koanf:"database"` // mongo only
		File     string        `koanf:"file"`     // sqlite only
		Timeout  time.Duration `koanf:"timeout"`  // per store call
	} `koanf:"store"`

	Token struct {
		Secret string        `koanf:"secret"`
		Issuer string        `koanf:"issuer"`
		TTL    time.Duration `koanf:"ttl"` // 0 issues tokens that never expire
	} `koanf:"token"`

	Password struct {
		Algorithm  string `koanf:"algorithm"`
		Cost       int    `koanf:"cost"`
		PepperFile string `koanf:"pepperfile"` // empty disables the pepper
	} `koanf:"password"`

	Authz struct {
		Employees bool `koanf:"employees"` // require an identity for employee operations
	} `koanf:"authz"`
}

// Defaults returns the built-in configuration as a nested koanf map.
func Defaults() map[string]any {
	return map[string]any{
		"env": "dev",
		"log": map[string]any{
			"level":  "info",
			"format": "json",
		},
		"http": map[string]any{
			"port":          8080,
			"shutdowngrace": 10 * time.Second,
		},
		"store": map[string]any{
			"driver":   DriverMongo,
			"uri":      "mongodb://localhost:27017",
			"database": "training",
			"file":     "staffql.db",
			"timeout":  5 * time.Second,
		},
		"token": map[string]any{
			"secret": "",
			"issuer": "staffql",
			"ttl":    jwtx.DefaultSessionTTL,
		},
		"password": map[string]any{
			"algorithm":  cryptox.AlgorithmBcrypt,
			"cost":       cryptox.DefaultBcryptCost,
			"pepperfile": "",
		},
		"authz": map[string]any{
			"employees": false,
		},
	}
}

// LoadConfig layers defaults, the optional YAML file at path and STAFFQL_
// environment variables, later sources winning.
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(mapProvider(Defaults()), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// STAFFQL_HTTP_SHUTDOWNGRACE -> http.shutdowngrace
	transform := func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "_", ".")
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", transform), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	cfg.Password.Algorithm = strings.ToLower(strings.TrimSpace(cfg.Password.Algorithm))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsDev reports whether the service runs in the dev environment.
func (c Config) IsDev() bool { return c.Env == "" || c.Env == "dev" }

// Validate checks the settings that cannot be defaulted.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMongo:
		if c.Store.URI == "" || c.Store.Database == "" {
			return fmt.Errorf("config: store.uri and store.database are required for the %s driver", DriverMongo)
		}
	case DriverSQLite:
		if c.Store.File == "" {
			return fmt.Errorf("config: store.file is required for the %s driver", DriverSQLite)
		}
	default:
		return fmt.Errorf("config: unknown store.driver %q", c.Store.Driver)
	}

	if c.Store.Timeout < 0 {
		return fmt.Errorf("config: store.timeout must not be negative")
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("config: http.port %d out of range", c.HTTP.Port)
	}
	if c.Token.TTL < 0 {
		return fmt.Errorf("config: token.ttl must not be negative")
	}

	switch {
	case c.Token.Secret == "" && !c.IsDev():
		return fmt.Errorf("config: token.secret is required outside dev")
	case c.Token.Secret != "" && len(c.Token.Secret) < jwtx.MinSecretLength:
		return fmt.Errorf("config: token.secret must be at least %d bytes", jwtx.MinSecretLength)
	}

	switch c.Password.Algorithm {
	case cryptox.AlgorithmBcrypt, cryptox.AlgorithmArgon2id:
	default:
		return fmt.Errorf("config: unknown password.algorithm %q", c.Password.Algorithm)
	}

	return nil
}

// mapProvider feeds an in-memory map to koanf.
type mapProvider map[string]any

func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("config: map provider does not support ReadBytes")
}

func (m mapProvider) Read() (map[string]any, error) { return m, nil }
