package grafana

import (
	"context"
	"fmt"
	"net/http"
)

// Datasource is the request body for the datasource creation endpoint.
type Datasource struct {
	Name           string            `json:"name"`
	Type           string            `json:"type"`
	URL            string            `json:"url"`
	Access         string            `json:"access"`
	IsDefault      bool              `json:"isDefault,omitempty"`
	JSONData       map[string]any    `json:"jsonData,omitempty"`
	SecureJSONData map[string]string `json:"secureJsonData,omitempty"`
}

// projectDatasources returns the three datasources every tenant gets, in
// provisioning order. The Loki datasource carries the project name as an
// X-Scope-OrgID header so log queries stay inside the tenant; the value goes
// through secureJsonData and is never echoed back by Grafana.
func (c *Client) projectDatasources(project string) []Datasource {
	return []Datasource{
		{
			Name:      "Prometheus",
			Type:      "prometheus",
			URL:       c.datasources.Prometheus,
			Access:    "proxy",
			IsDefault: true,
			JSONData:  map[string]any{"timeInterval": "15s"},
		},
		{
			Name:   "Loki",
			Type:   "loki",
			URL:    c.datasources.Loki,
			Access: "proxy",
			JSONData: map[string]any{
				"httpHeaderName1": "X-Scope-OrgID",
			},
			SecureJSONData: map[string]string{
				"httpHeaderValue1": project,
			},
		},
		{
			Name:   "Tempo",
			Type:   "tempo",
			URL:    c.datasources.Tempo,
			Access: "proxy",
		},
	}
}

// ProvisionDatasources registers the Prometheus, Loki and Tempo datasources
// in the organization. A 409 for an individual datasource means it is
// already there and is treated as success, so re-running provisioning
// converges instead of erroring. Any other failure aborts the remaining
// datasources.
func (c *Client) ProvisionDatasources(ctx context.Context, orgID int64, project string) error {
	for _, ds := range c.projectDatasources(project) {
		status, body, err := c.do(ctx, orgAuth(orgID), http.MethodPost, "/api/datasources", ds)
		if err != nil {
			return err
		}

		switch status {
		case http.StatusOK, http.StatusCreated, http.StatusConflict:
			// 409 = datasource with this name already exists in the org
		default:
			return &APIError{
				Op:         fmt.Sprintf("add datasource %q", ds.Name),
				StatusCode: status,
				Detail:     string(body),
			}
		}
	}

	return nil
}
