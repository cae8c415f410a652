package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/tenantctl/cmd/cli/internal/commands"
	"github.com/wolfeidau/tenantctl/internal/logger"
)

var (
	version = "dev"
	cli     struct {
		CreateProject commands.CreateProjectCmd `cmd:"" help:"Provision a Grafana organization with datasources, a dashboard folder and Telegram alerting"`
		DeleteProject commands.DeleteProjectCmd `cmd:"" help:"Delete a project's Grafana organization and all its data"`
		ListProjects  commands.ListProjectsCmd  `cmd:"" help:"List provisioned projects"`
		Serve         commands.ServeCmd         `cmd:"" help:"Run the ops server (health endpoint)"`
		Debug         bool                      `help:"Enable debug mode."`
		Version       kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	log.Logger = logger.Setup(cli.Debug)
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
