package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/wolfeidau/tenantctl/internal/grafana"
)

type DeleteProjectCmd struct {
	Name string `arg:"" help:"Project name to delete"`

	Grafana GrafanaFlags `embed:"" prefix:"grafana-"`
}

func (d *DeleteProjectCmd) Run(ctx context.Context, globals *Globals) error {
	cfg, err := d.Grafana.load()
	if err != nil {
		return err
	}

	svc := newService(cfg, "")

	if err := svc.DeleteProject(ctx, d.Name); err != nil {
		if errors.Is(err, grafana.ErrOrgNotFound) {
			return fmt.Errorf("project %q not found", d.Name)
		}
		return err
	}

	fmt.Printf("Project %q deleted successfully.\n", d.Name)
	return nil
}
