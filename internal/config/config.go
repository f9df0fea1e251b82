package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

type Config struct {
	Port     string
	Env      string
	Location *time.Location

	StoreDriver    string
	SnapshotKey    string
	SQLitePath     string
	ConnectRetries int

	DB        DBConfig
	RedisAddr string

	KafkaBroker string
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads the configuration from the environment. Callers load .env
// beforehand with godotenv.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:        valueOr(getenv("PORT"), "3000"),
		Env:         strings.ToLower(strings.TrimSpace(getenv("APP_ENV"))),
		StoreDriver: strings.ToLower(valueOr(getenv("STORE_DRIVER"), DriverSQLite)),
		SnapshotKey: valueOr(getenv("SNAPSHOT_KEY"), "truthface_db"),
		SQLitePath:  valueOr(getenv("SQLITE_PATH"), "fieldtrack.db"),
		DB: DBConfig{
			Host:     getenv("DB_HOST"),
			User:     getenv("DB_USER"),
			Password: getenv("DB_PASSWORD"),
			Name:     getenv("DB_NAME"),
			Port:     valueOr(getenv("DB_PORT"), "5432"),
			SSLMode:  valueOr(getenv("DB_SSLMODE"), "disable"),
		},
		RedisAddr:   getenv("REDIS_ADDR"),
		KafkaBroker: strings.TrimSpace(getenv("KAFKA_BROKER")),
	}

	loc := time.Local
	if tz := strings.TrimSpace(getenv("APP_TIMEZONE")); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return Config{}, fmt.Errorf("invalid APP_TIMEZONE %q: %w", tz, err)
		}
		loc = l
	}
	cfg.Location = loc

	retries := 5
	if raw := strings.TrimSpace(getenv("CONNECT_RETRIES")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("invalid CONNECT_RETRIES %q", raw)
		}
		retries = n
	}
	cfg.ConnectRetries = retries

	switch cfg.StoreDriver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		if cfg.DB.Host == "" || cfg.DB.Name == "" {
			return Config{}, fmt.Errorf("DB_HOST and DB_NAME are required for the postgres store")
		}
	case DriverRedis:
		if cfg.RedisAddr == "" {
			return Config{}, fmt.Errorf("REDIS_ADDR is required for the redis store")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}

func valueOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return strings.TrimSpace(v)
}
