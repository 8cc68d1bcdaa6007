// Package config reads and validates the adapter configuration.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Engine engine connection config struct
type Engine struct {
	Addresses   []string `json:"addresses" validate:"required,min=1,dive,url"`
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	Sniff       bool     `json:"sniff"`
	Healthcheck bool     `json:"healthcheck"`
	Gzip        bool     `json:"gzip"`
	LogLevel    string   `json:"log_level" validate:"omitempty,oneof=error info trace"`
}

// Logger logger config struct
type Logger struct {
	Level  string `json:"level" validate:"omitempty,oneof=panic fatal error warn info debug trace"`
	Format string `json:"format" validate:"omitempty,oneof=text json"`
}

// Config represents the full adapter configuration
type Config struct {
	Engine Engine `json:"engine" validate:"required"`
	Logger Logger `json:"logger"`
}

// setDefaults registers configuration defaults
func setDefaults(v *viper.Viper) {
	v.SetDefault("engine.addresses", []string{"http://localhost:9200"})
	v.SetDefault("engine.sniff", false)
	v.SetDefault("engine.healthcheck", true)
	v.SetDefault("engine.gzip", false)
	v.SetDefault("engine.log_level", "error")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "text")
}

// getEngineConfigs reads engine connection configurations
func getEngineConfigs(v *viper.Viper) Engine {
	return Engine{
		Addresses:   v.GetStringSlice("engine.addresses"),
		Username:    v.GetString("engine.username"),
		Password:    v.GetString("engine.password"),
		Sniff:       v.GetBool("engine.sniff"),
		Healthcheck: v.GetBool("engine.healthcheck"),
		Gzip:        v.GetBool("engine.gzip"),
		LogLevel:    v.GetString("engine.log_level"),
	}
}

// getLoggerConfigs reads logger configurations
func getLoggerConfigs(v *viper.Viper) Logger {
	return Logger{
		Level:  v.GetString("logger.level"),
		Format: v.GetString("logger.format"),
	}
}

// Load builds a Config from an existing viper instance
func Load(v *viper.Viper) *Config {
	setDefaults(v)
	return &Config{
		Engine: getEngineConfigs(v),
		Logger: getLoggerConfigs(v),
	}
}

// New reads configuration from the given file path
func New(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	cfg := Load(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
