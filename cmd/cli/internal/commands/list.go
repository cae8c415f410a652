package commands

import (
	"context"
	"fmt"
)

type ListProjectsCmd struct {
	Grafana GrafanaFlags `embed:"" prefix:"grafana-"`
}

func (l *ListProjectsCmd) Run(ctx context.Context, globals *Globals) error {
	cfg, err := l.Grafana.load()
	if err != nil {
		return err
	}

	svc := newService(cfg, "")

	projects, err := svc.ListProjects(ctx)
	if err != nil {
		return err
	}

	if len(projects) == 0 {
		fmt.Println("No projects found.")
		return nil
	}

	fmt.Printf("%-8s %s\n", "Org ID", "Project")
	for _, p := range projects {
		fmt.Printf("%-8d %s\n", p.ID, p.Name)
	}

	return nil
}
