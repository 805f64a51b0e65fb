package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config holds the process settings, typically loaded from environment
// variables (populated from the .env file in main.go).
type Config struct {
	SQLDriver        string `env:"SQL_DRIVER" envDefault:"sqlserver"`
	SQLConnString    string `env:"SQL_CONNECTION_STRING"`
	SQLTable         string `env:"SQL_TABLE" envDefault:"records"`
	SQLIDColumn      string `env:"SQL_ID_COLUMN" envDefault:"id"`
	SQLPayloadColumn string `env:"SQL_PAYLOAD_COLUMN" envDefault:"payload"`

	MongoConnString string `env:"MONGO_CONNECTION_STRING"`
	MongoDatabase   string `env:"MONGO_DATABASE" envDefault:"mydb"`
	MongoCollection string `env:"MONGO_COLLECTION" envDefault:"records"`
	MongoSortField  string `env:"MONGO_SORT_FIELD" envDefault:"_id"`

	RedisURL string `env:"REDIS_URL"`
	RedisKey string `env:"REDIS_KEY" envDefault:"records"`

	BatchSize    int    `env:"BATCH_SIZE" envDefault:"100"`
	RecordIDPath string `env:"RECORD_ID_PATH" envDefault:"metadata.serialId.recordId"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogFile   string `env:"LOG_FILE"`
}

// LoadConfig parses the environment into a Config and validates it.
func LoadConfig() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.SQLDriver, validation.Required, validation.In("sqlserver", "sqlite")),
		validation.Field(&c.BatchSize, validation.Required, validation.Min(1)),
		validation.Field(&c.RecordIDPath, validation.Required),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.LogFormat, validation.In("text", "json")),
	)
}

// RequireSQL checks the settings needed by the sql source.
func (c *Config) RequireSQL() error {
	if c.SQLConnString == "" {
		return errors.New("SQL_CONNECTION_STRING environment variable not set")
	}
	return nil
}

func (c *Config) RequireMongo() error {
	if c.MongoConnString == "" {
		return errors.New("MONGO_CONNECTION_STRING environment variable not set")
	}
	return nil
}

func (c *Config) RequireRedis() error {
	if c.RedisURL == "" {
		return errors.New("REDIS_URL environment variable not set")
	}
	return nil
}
