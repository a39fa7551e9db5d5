package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"

	LockDriverMemory = "memory"
	LockDriverRedis  = "redis"
)

var (
	ErrStoreDriverIsUnknown = errors.New("STORE_DRIVER must be memory or postgres")
	ErrLockDriverIsUnknown  = errors.New("LOCK_DRIVER must be memory or redis")
)

type Config struct {
	HTTPPort string     `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME"`
	DBSslMode   string `env:"DB_SSLMODE" envDefault:"disable"`

	LockDriver    string        `env:"LOCK_DRIVER" envDefault:"memory"`
	LockTTL       time.Duration `env:"LOCK_TTL" envDefault:"10s"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`

	IntegrityScanSchedule string `env:"INTEGRITY_SCAN_SCHEDULE" envDefault:"0 */5 * * * *"`
	OTELEndpoint          string `env:"OTEL_ENDPOINT"`

	// DefaultDivisionCutoff is the "HH:MM" cutoff of the last-resort division
	// rule, used when a location has neither the requested nor a DEFAULT division.
	DefaultDivisionCutoff string  `env:"DEFAULT_DIVISION_CUTOFF" envDefault:"15:00"`
	SkidWeightThreshold   float64 `env:"SKID_WEIGHT_THRESHOLD" envDefault:"2000"`
}

// LoadConfig reads an optional .env file into the environment and parses the
// environment into a Config. Variables already set win over the file.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		// A missing .env is normal outside local development.
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the driver selections.
func (c Config) Validate() error {
	var err error
	switch c.StoreDriver {
	case StoreDriverMemory, StoreDriverPostgres:
	default:
		err = errors.Join(err, fmt.Errorf("%w, got %q", ErrStoreDriverIsUnknown, c.StoreDriver))
	}
	switch c.LockDriver {
	case LockDriverMemory, LockDriverRedis:
	default:
		err = errors.Join(err, fmt.Errorf("%w, got %q", ErrLockDriverIsUnknown, c.LockDriver))
	}
	return err
}

// PostgresDSN renders the connection string for the postgres store.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
