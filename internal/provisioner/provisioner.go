// Package provisioner composes the Grafana client operations into the
// end-to-end create/list/delete project workflows.
package provisioner

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/wolfeidau/tenantctl/internal/grafana"
	"github.com/wolfeidau/tenantctl/internal/telemetry"
)

// Stage identifies how far the create workflow got. Each stage depends on
// the previous one (every step needs the organization ID from the first),
// so the steps run strictly in order and a failure stops the workflow where
// it stands - there is no rollback of earlier stages.
type Stage int

const (
	StageOrgCreated Stage = iota + 1
	StageDatasourcesProvisioned
	StageFolderReady
	StageAlertingConfigured
)

func (s Stage) String() string {
	switch s {
	case StageOrgCreated:
		return "OrgCreated"
	case StageDatasourcesProvisioned:
		return "DatasourcesProvisioned"
	case StageFolderReady:
		return "FolderReady"
	case StageAlertingConfigured:
		return "AlertingConfigured"
	default:
		return "Unknown"
	}
}

// StageError reports which stage of the create workflow failed. Stages that
// completed before the failure are left in place.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("provisioning failed at stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// API is the subset of the Grafana client the workflows use.
type API interface {
	CreateOrganization(ctx context.Context, name string) (int64, error)
	OrganizationByName(ctx context.Context, name string) (*grafana.Org, error)
	ListOrganizations(ctx context.Context) ([]grafana.Org, error)
	DeleteOrganization(ctx context.Context, orgID int64) error
	ProvisionDatasources(ctx context.Context, orgID int64, project string) error
	ProvisionFolder(ctx context.Context, orgID int64, project string) error
	ConfigureAlerting(ctx context.Context, orgID int64, botToken, chatID string) error
}

// Service runs the provisioning workflows against one Grafana instance.
type Service struct {
	api      API
	botToken string
}

// New creates a provisioning service. botToken is the Telegram bot token
// wired into every tenant's alert contact point.
func New(api API, botToken string) *Service {
	return &Service{api: api, botToken: botToken}
}

// CreateProject provisions a complete tenant: organization, datasources,
// dashboard folder, and Telegram alerting, strictly in that order. The
// steps are not transactional - if a step fails, the earlier steps remain
// in place and the error reports the stage that failed.
func (s *Service) CreateProject(ctx context.Context, name, chatID string) (int64, error) {
	started := time.Now()
	m := telemetry.GetMetrics()

	orgID, err := s.api.CreateOrganization(ctx, name)
	if err != nil {
		return 0, s.failed(m, &StageError{Stage: StageOrgCreated, Err: err})
	}

	log.Info().Str("project", name).Int64("org_id", orgID).Msg("Organization created")

	if err := s.api.ProvisionDatasources(ctx, orgID, name); err != nil {
		return 0, s.failed(m, &StageError{Stage: StageDatasourcesProvisioned, Err: err})
	}

	if err := s.api.ProvisionFolder(ctx, orgID, name); err != nil {
		return 0, s.failed(m, &StageError{Stage: StageFolderReady, Err: err})
	}

	if err := s.api.ConfigureAlerting(ctx, orgID, s.botToken, chatID); err != nil {
		return 0, s.failed(m, &StageError{Stage: StageAlertingConfigured, Err: err})
	}

	m.ProjectsCreatedTotal.Add(ctx, 1)
	m.CreateProjectDuration.Record(ctx, float64(time.Since(started).Milliseconds()))

	log.Info().Str("project", name).Int64("org_id", orgID).
		Dur("duration", time.Since(started)).Msg("Project provisioned")

	return orgID, nil
}

func (s *Service) failed(m *telemetry.Metrics, stageErr *StageError) error {
	m.ProvisionFailuresTotal.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("stage", stageErr.Stage.String())))
	return stageErr
}

// DeleteProject resolves the project's organization by name and deletes it.
// Grafana cascades the delete to everything provisioned inside the org.
// Returns grafana.ErrOrgNotFound if no such project exists.
func (s *Service) DeleteProject(ctx context.Context, name string) error {
	org, err := s.api.OrganizationByName(ctx, name)
	if err != nil {
		return err
	}

	if err := s.api.DeleteOrganization(ctx, org.ID); err != nil {
		return err
	}

	telemetry.GetMetrics().ProjectsDeletedTotal.Add(ctx, 1)

	log.Info().Str("project", name).Int64("org_id", org.ID).Msg("Project deleted")
	return nil
}

// ListProjects returns all provisioned tenants. The built-in default
// organization is already filtered out by the client.
func (s *Service) ListProjects(ctx context.Context) ([]grafana.Org, error) {
	return s.api.ListOrganizations(ctx)
}
