package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	driverMongo  = "mongo"
	driverSQLite = "sqlite"
)

// Config is the server configuration, read from the environment.
type Config struct {
	DatabaseURL     string        `env:"DATABASE_URL"`
	DatabaseName    string        `env:"DATABASE_NAME"`
	Host            string        `env:"HOST,default=0.0.0.0"`
	Port            int           `env:"PORT,default=8000"`
	StorageDriver   string        `env:"STORAGE_DRIVER,default=mongo"`
	SQLitePath      string        `env:"SQLITE_PATH,default=./data/healthyliving.db"`
	LogLevel        string        `env:"LOG_LEVEL,default=info"`
	LogFormat       string        `env:"LOG_FORMAT,default=text"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s"`
}

// Addr is the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// loadConfig reads an optional .env file, then the process environment.
// Variables already set in the environment win over the file.
func loadConfig() (Config, error) {
	_ = godotenv.Load()
	return parseConfig(os.Environ())
}

func parseConfig(environ []string) (Config, error) {
	var cfg Config
	es, err := env.EnvironToEnvSet(environ)
	if err != nil {
		return cfg, fmt.Errorf("read environment: %w", err)
	}
	if err := env.Unmarshal(es, &cfg); err != nil {
		return cfg, fmt.Errorf("config error: %w", err)
	}

	switch cfg.StorageDriver {
	case driverMongo, driverSQLite:
	default:
		return cfg, fmt.Errorf("config error: unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return cfg, fmt.Errorf("config error: PORT %d out of range", cfg.Port)
	}
	return cfg, nil
}
