package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config: cada campo es una variable de entorno (o clave del .env opcional).
type Config struct {
	// Server
	Port         int           `mapstructure:"PORT"`
	Env          string        `mapstructure:"APP_ENV"` // development | production
	AppName      string        `mapstructure:"APP_NAME"`
	ReadTimeout  time.Duration `mapstructure:"HTTP_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"HTTP_WRITE_TIMEOUT"`

	// Logging
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"` // text | json

	// Storage: vacío = in-memory
	DatabaseDSN string `mapstructure:"DB_DSN"`

	// Store
	SeedDemoData bool   `mapstructure:"SEED_DEMO_DATA"`
	IDStrategy   string `mapstructure:"ID_STRATEGY"` // uuid | sequence
}

func (c *Config) UsePostgres() bool {
	return c.DatabaseDSN != ""
}

// Load lee variables de entorno y, si existe, un .env en el directorio actual.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "kennel-records")
	v.SetDefault("HTTP_READ_TIMEOUT", "5s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "10s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("SEED_DEMO_DATA", true)
	v.SetDefault("ID_STRATEGY", "uuid")

	// .env es opcional
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
