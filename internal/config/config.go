// Package config holds the explicit configuration passed into the
// provisioning service at construction time. There is no process-wide
// settings singleton; the command layer builds one Config and hands it down.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full configuration for the provisioner.
type Config struct {
	Grafana  Grafana  `yaml:"grafana"`
	Telegram Telegram `yaml:"telegram"`
}

// Grafana holds the operator connection settings and the datasource backend
// addresses provisioned into every tenant.
type Grafana struct {
	URL         string      `yaml:"url"`
	User        string      `yaml:"user"`
	Password    string      `yaml:"password"`
	Datasources Datasources `yaml:"datasources"`
}

// Datasources are the telemetry backend addresses. Empty values fall back
// to the conventional in-cluster addresses.
type Datasources struct {
	Prometheus string `yaml:"prometheus"`
	Loki       string `yaml:"loki"`
	Tempo      string `yaml:"tempo"`
}

// Telegram holds the bot credential used for tenant alert contact points.
type Telegram struct {
	BotToken string `yaml:"bot_token"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Grafana: Grafana{
			URL:  "http://localhost:3000",
			User: "admin",
		},
	}
}

// Load reads a YAML configuration file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}
