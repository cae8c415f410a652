package commands

import (
	"github.com/wolfeidau/tenantctl/internal/config"
	"github.com/wolfeidau/tenantctl/internal/grafana"
	"github.com/wolfeidau/tenantctl/internal/provisioner"
)

type Globals struct {
	Debug   bool
	Version string
}

// GrafanaFlags are the connection settings shared by every command that
// talks to Grafana. A YAML config file can supply the same settings plus
// datasource addresses; when a file is given it takes precedence.
type GrafanaFlags struct {
	URL      string `help:"Grafana base URL" default:"http://localhost:3000" env:"TENANTCTL_GRAFANA_URL"`
	User     string `help:"Grafana admin user" default:"admin" env:"TENANTCTL_GRAFANA_USER"`
	Password string `help:"Grafana admin password" env:"TENANTCTL_GRAFANA_PASSWORD"`
	Config   string `help:"Path to a YAML config file" env:"TENANTCTL_CONFIG" type:"path"`
}

func (f GrafanaFlags) load() (config.Config, error) {
	if f.Config != "" {
		return config.Load(f.Config)
	}

	cfg := config.Default()
	cfg.Grafana.URL = f.URL
	cfg.Grafana.User = f.User
	cfg.Grafana.Password = f.Password
	return cfg, nil
}

func newService(cfg config.Config, botToken string) *provisioner.Service {
	if botToken == "" {
		botToken = cfg.Telegram.BotToken
	}

	client := grafana.New(grafana.Config{
		URL:      cfg.Grafana.URL,
		User:     cfg.Grafana.User,
		Password: cfg.Grafana.Password,
		Datasources: grafana.DatasourceURLs{
			Prometheus: cfg.Grafana.Datasources.Prometheus,
			Loki:       cfg.Grafana.Datasources.Loki,
			Tempo:      cfg.Grafana.Datasources.Tempo,
		},
	})

	return provisioner.New(client, botToken)
}
