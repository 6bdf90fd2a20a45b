package helper

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// EngineConfiguration holds the connection settings of the Duckling server
type EngineConfiguration struct {
	URL     string        `env:"DUCKLING_URL" env-default:"http://localhost:8000"`
	Timeout time.Duration `env:"DUCKLING_TIMEOUT" env-default:"10s"`
}

// Configuration holds the settings of a Duckling instance.
// Values come from the environment, optionally seeded from a .env file.
type Configuration struct {
	Engine EngineConfiguration

	// TimeZoneDBPath is a tzdata directory or a zoneinfo.zip archive
	TimeZoneDBPath string `env:"DUCKLING_TZDB" env-default:"/usr/share/zoneinfo"`
	LogLevel       string `env:"DUCKLING_LOG_LEVEL" env-default:"info"`

	// StoreEnabled persists every extraction using the DB_* settings
	StoreEnabled bool `env:"DUCKLING_STORE" env-default:"false"`
}

// NewConfiguration reads the configuration from the environment.
// A .env file in the working directory is loaded first if present;
// variables already set in the environment take precedence.
func NewConfiguration() (*Configuration, error) {
	if err := loadDotEnv(); err != nil {
		return nil, NewError("load .env", err)
	}

	config := &Configuration{}
	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, NewError("read environment", err)
	}

	return config, nil
}

// Level parses LogLevel, defaulting to info
func (c *Configuration) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func loadDotEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
