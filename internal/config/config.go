package config

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const (
	sslModeDisable = "disable"
	sslModeRequire = "require"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	envPrefix = "BRAIN"
)

var ErrNoJWTSecret = errors.New("JWT_SECRET is not set")

type (
	Config struct {
		Host        string        `mapstructure:"HOST"`
		Port        string        `mapstructure:"PORT"`
		GRPCPort    string        `mapstructure:"GRPC_PORT"`
		DBDriver    string        `mapstructure:"DB_DRIVER"`
		DBHost      string        `mapstructure:"DB_HOST"`
		DBPort      string        `mapstructure:"DB_PORT"`
		DBUser      string        `mapstructure:"DB_USER"`
		DBPassword  string        `mapstructure:"DB_PASSWORD"`
		DBName      string        `mapstructure:"DB_NAME"`
		DBSSLMode   string        `mapstructure:"DB_SSL_MODE"`
		DBPath      string        `mapstructure:"DB_PATH"`
		JWTSecret   string        `mapstructure:"JWT_SECRET"`
		JWTTTL      time.Duration `mapstructure:"JWT_TTL"`
		BcryptCost  int           `mapstructure:"BCRYPT_COST"`
		ShareStrict bool          `mapstructure:"SHARE_STRICT"`
		LogDev      bool          `mapstructure:"LOG_DEV"`
	}
)

var defaults = map[string]interface{}{
	"HOST":         "0.0.0.0",
	"PORT":         "3000",
	"GRPC_PORT":    "9000",
	"DB_DRIVER":    DriverPostgres,
	"DB_HOST":      "0.0.0.0",
	"DB_PORT":      "5432",
	"DB_USER":      "user",
	"DB_PASSWORD":  "password",
	"DB_NAME":      "db",
	"DB_SSL_MODE":  sslModeDisable,
	"DB_PATH":      "brain.db",
	"JWT_SECRET":   "",
	"JWT_TTL":      "0s",
	"BCRYPT_COST":  bcrypt.DefaultCost,
	"SHARE_STRICT": false,
	"LOG_DEV":      false,
}

// NewConfig reads BRAIN_* environment variables. It fails when the signing
// secret is missing so the process never starts without one.
func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)

	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	if err := validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

func (c *Config) HTTPListen() string {
	return c.Host + ":" + c.Port
}

func (c *Config) GRPCListen() string {
	return c.Host + ":" + c.GRPCPort
}

func validate(cfg *Config) error {
	if cfg.JWTSecret == "" {
		return ErrNoJWTSecret
	}
	if cfg.JWTTTL < 0 {
		return errors.New(fmt.Sprintf("JWT TTL is negative: %s", cfg.JWTTTL))
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return errors.New(fmt.Sprintf("bcrypt cost is out of range: %d", cfg.BcryptCost))
	}

	switch cfg.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return errors.New(fmt.Sprintf("DB driver is invalid: %s", cfg.DBDriver))
	}

	validSSLValues := []string{sslModeDisable, sslModeRequire}
	for _, validValue := range validSSLValues {
		if cfg.DBSSLMode == validValue {
			return nil
		}
	}
	return errors.New(fmt.Sprintf("DB SSL mode is invalid: %s", cfg.DBSSLMode))
}
