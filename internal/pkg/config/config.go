package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/engineeringdigest/ecommerce-seeder/internal/core/domain"
)

type Config struct {
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Mongo MongoConfig
	Redis RedisConfig
	Seed  SeedConfig
}

type MongoConfig struct {
	URI        string        `env:"MONGO_URI,         default=mongodb://localhost:27017"`
	Username   string        `env:"MONGO_USERNAME"`
	Password   string        `env:"MONGO_PASSWORD"`
	AuthSource string        `env:"MONGO_AUTH_SOURCE, default=admin"`
	Database   string        `env:"MONGO_DB,          default=ecommerce"`
	Timeout    time.Duration `env:"MONGO_TIMEOUT,     default=10s"`
}

// RedisConfig configures the run lock. An empty Addr disables it.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	DB       int    `env:"REDIS_DB,       default=0"`
	Password string `env:"REDIS_PASSWORD"`
}

type SeedConfig struct {
	Mode          string `env:"SEED_MODE,           default=upsert"`
	AdminUsername string `env:"SEED_ADMIN_USERNAME, default=admin"`
	AdminEmail    string `env:"SEED_ADMIN_EMAIL,    default=admin@example.com"`
	// AdminPassword and AdminPasswordHash are mutually exclusive. With
	// neither set the built-in hash is used.
	AdminPassword     string        `env:"SEED_ADMIN_PASSWORD"`
	AdminPasswordHash string        `env:"SEED_ADMIN_PASSWORD_HASH"`
	BcryptCost        int           `env:"SEED_BCRYPT_COST, default=10"`
	Verify            bool          `env:"SEED_VERIFY,      default=true"`
	LockTTL           time.Duration `env:"SEED_LOCK_TTL,    default=10m"`
	StatusAddr        string        `env:"SEED_STATUS_ADDR"`
	PushgatewayURL    string        `env:"SEED_PUSHGATEWAY_URL"`
}

// SeedMode returns the parsed SEED_MODE.
func (c *Config) SeedMode() domain.Mode {
	mode, _ := domain.ParseMode(c.Seed.Mode)
	return mode
}

// LockEnabled reports whether a Redis address was configured.
func (c *Config) LockEnabled() bool {
	return c.Redis.Addr != ""
}

// Load reads an optional .env file and then the process environment using
// go-envconfig. Values already present in the environment win over .env.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom resolves the configuration from lookuper and validates it.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := domain.ParseMode(c.Seed.Mode); err != nil {
		return fmt.Errorf("config: SEED_MODE: %w", err)
	}
	if c.Mongo.URI == "" {
		return errors.New("config: MONGO_URI must not be empty")
	}
	if c.Mongo.Database == "" {
		return errors.New("config: MONGO_DB must not be empty")
	}
	if c.Seed.AdminPassword != "" && c.Seed.AdminPasswordHash != "" {
		return errors.New("config: SEED_ADMIN_PASSWORD and SEED_ADMIN_PASSWORD_HASH are mutually exclusive")
	}
	return nil
}
