package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix              = "LOVEHUB"
	defaultHTTPAddress     = "0.0.0.0:8080"
	defaultDatabaseDriver  = DriverSQLite
	defaultDatabasePath    = "lovehub.db"
	defaultStorageBackend  = StorageSQL
	defaultStorageKey      = "lovehub_proposals"
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultVoucherTTL      = 120
	defaultPaymentDelay    = 1500 * time.Millisecond
	defaultGeneratorDelay  = 1000 * time.Millisecond
	defaultAllowedOrigins  = "*"
	defaultDotEnvPath      = ".env"
	allowedOriginSeparator = ","
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	StorageSQL     = "sql"
	StorageMemory  = "memory"
)

// AppConfig captures runtime configuration for the API server.
type AppConfig struct {
	HTTPAddress          string
	DatabaseDriver       string
	DatabasePath         string
	DatabaseDSN          string
	StorageBackend       string
	StorageKey           string
	PublicOrigin         string
	LogLevel             string
	LogFormat            string
	VoucherSigningSecret string
	VoucherTTL           time.Duration
	PaymentDelay         time.Duration
	GeneratorDelay       time.Duration
	AllowedOrigins       []string
	AdminRoutesEnabled   bool
}

// LoadDotEnv populates the process environment from .env style files.
// Missing files are skipped; variables already set in the environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{defaultDotEnvPath}
	}
	for _, path := range paths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// NewViper returns a viper instance with defaults and env bindings configured.
func NewViper() *viper.Viper {
	configViper := viper.New()
	ApplyDefaults(configViper)
	return configViper
}

// ApplyDefaults configures defaults and env bindings on the provided viper instance.
func ApplyDefaults(configViper *viper.Viper) {
	configViper.SetEnvPrefix(envPrefix)
	configViper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	configViper.AutomaticEnv()

	configViper.SetDefault("http.address", defaultHTTPAddress)
	configViper.SetDefault("database.driver", defaultDatabaseDriver)
	configViper.SetDefault("database.path", defaultDatabasePath)
	configViper.SetDefault("database.dsn", "")
	configViper.SetDefault("storage.backend", defaultStorageBackend)
	configViper.SetDefault("storage.key", defaultStorageKey)
	configViper.SetDefault("public.origin", "")
	configViper.SetDefault("log.level", defaultLogLevel)
	configViper.SetDefault("log.format", defaultLogFormat)
	configViper.SetDefault("voucher.signing_secret", "")
	configViper.SetDefault("voucher.ttl_minutes", defaultVoucherTTL)
	configViper.SetDefault("payment.delay", defaultPaymentDelay)
	configViper.SetDefault("generator.delay", defaultGeneratorDelay)
	configViper.SetDefault("cors.allowed_origins", defaultAllowedOrigins)
	configViper.SetDefault("admin.routes_enabled", false)
}

// Load parses runtime configuration from viper.
func Load(configViper *viper.Viper) (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddress:          strings.TrimSpace(configViper.GetString("http.address")),
		DatabaseDriver:       strings.ToLower(strings.TrimSpace(configViper.GetString("database.driver"))),
		DatabasePath:         strings.TrimSpace(configViper.GetString("database.path")),
		DatabaseDSN:          strings.TrimSpace(configViper.GetString("database.dsn")),
		StorageBackend:       strings.ToLower(strings.TrimSpace(configViper.GetString("storage.backend"))),
		StorageKey:           strings.TrimSpace(configViper.GetString("storage.key")),
		PublicOrigin:         strings.TrimRight(strings.TrimSpace(configViper.GetString("public.origin")), "/"),
		LogLevel:             configViper.GetString("log.level"),
		LogFormat:            strings.ToLower(strings.TrimSpace(configViper.GetString("log.format"))),
		VoucherSigningSecret: configViper.GetString("voucher.signing_secret"),
		VoucherTTL:           time.Duration(configViper.GetInt("voucher.ttl_minutes")) * time.Minute,
		PaymentDelay:         configViper.GetDuration("payment.delay"),
		GeneratorDelay:       configViper.GetDuration("generator.delay"),
		AllowedOrigins:       splitOrigins(configViper.GetString("cors.allowed_origins")),
		AdminRoutesEnabled:   configViper.GetBool("admin.routes_enabled"),
	}

	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

// UsesSQLStorage reports whether proposals are persisted through the database.
func (c AppConfig) UsesSQLStorage() bool {
	return c.StorageBackend == StorageSQL
}

func (c AppConfig) validate() error {
	if strings.TrimSpace(c.VoucherSigningSecret) == "" {
		return fmt.Errorf("voucher.signing_secret is required")
	}
	if c.HTTPAddress == "" {
		return fmt.Errorf("http.address is required")
	}
	switch c.StorageBackend {
	case StorageMemory:
	case StorageSQL:
		if err := c.validateDatabase(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", StorageSQL, StorageMemory, c.StorageBackend)
	}
	if c.StorageKey == "" {
		return fmt.Errorf("storage.key is required")
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.LogFormat)
	}
	if c.VoucherTTL <= 0 {
		return fmt.Errorf("voucher.ttl_minutes must be positive")
	}
	if c.PaymentDelay < 0 {
		return fmt.Errorf("payment.delay must not be negative")
	}
	if c.GeneratorDelay < 0 {
		return fmt.Errorf("generator.delay must not be negative")
	}
	return nil
}

func (c AppConfig) validateDatabase() error {
	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("database.path is required")
		}
	case DriverPostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DatabaseDriver)
	}
	return nil
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, allowedOriginSeparator) {
		trimmed := strings.TrimRight(strings.TrimSpace(origin), "/")
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
