package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/wolfeidau/tenantctl/internal/grafana"
)

type CreateProjectCmd struct {
	Name   string `arg:"" help:"Project name, becomes the organization name"`
	ChatID string `arg:"" help:"Telegram chat ID that receives the project's alerts"`

	BotToken string       `help:"Telegram bot token used for the alert contact point" env:"TENANTCTL_TELEGRAM_BOT_TOKEN"`
	Grafana  GrafanaFlags `embed:"" prefix:"grafana-"`
}

func (c *CreateProjectCmd) Run(ctx context.Context, globals *Globals) error {
	cfg, err := c.Grafana.load()
	if err != nil {
		return err
	}

	svc := newService(cfg, c.BotToken)

	orgID, err := svc.CreateProject(ctx, c.Name, c.ChatID)
	if err != nil {
		if errors.Is(err, grafana.ErrOrgAlreadyExists) {
			return fmt.Errorf("project %q already exists", c.Name)
		}
		return err
	}

	fmt.Printf("Project %q created successfully.\n", c.Name)
	fmt.Printf("Org ID: %d\n", orgID)
	fmt.Println("Datasources: Prometheus, Loki, Tempo")
	fmt.Printf("Alerts routed to Telegram chat %s\n", c.ChatID)

	return nil
}
