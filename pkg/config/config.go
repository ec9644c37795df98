package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config carries everything the shop binary needs at startup.
// Values come from an optional YAML file first, then environment
// variables override field by field.
type Config struct {
	AppEnv   string `yaml:"app_env"`
	LogLevel string `yaml:"log_level"`

	HTTPPort int `yaml:"http_port"`

	// Preference counter persistence.
	PrefsDriver string `yaml:"prefs_driver"` // memory | fs | sqlite
	PrefsPath   string `yaml:"prefs_path"`   // fs root dir or sqlite file
}

func defaults() Config {
	return Config{
		AppEnv:      "dev",
		LogLevel:    "info",
		HTTPPort:    8080,
		PrefsDriver: "fs",
		PrefsPath:   "./prefsdata",
	}
}

// Load builds the config from defaults, the file named by SHOP_CONFIG_FILE
// (if set), and finally environment overrides.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("SHOP_CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.AppEnv = getEnv("APP_ENV", cfg.AppEnv)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.HTTPPort = getEnvInt("HTTP_PORT", cfg.HTTPPort)
	cfg.PrefsDriver = getEnv("SHOP_PREFS_DRIVER", cfg.PrefsDriver)
	cfg.PrefsPath = getEnv("SHOP_PREFS_PATH", cfg.PrefsPath)

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}
