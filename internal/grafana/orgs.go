package grafana

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// Org is a Grafana organization, the tenant boundary every other resource
// (datasources, folders, alerting) lives inside.
type Org struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateOrganization creates a new organization and returns its ID.
// Returns ErrOrgAlreadyExists if an organization with the same name is
// already resolvable.
//
// The existence check and the create call are two separate remote
// operations, so two concurrent creates for the same name can both pass the
// check. Grafana's own name uniqueness is the only protection in that case.
func (c *Client) CreateOrganization(ctx context.Context, name string) (int64, error) {
	_, err := c.OrganizationByName(ctx, name)
	if err == nil {
		return 0, fmt.Errorf("organization %q: %w", name, ErrOrgAlreadyExists)
	}
	if !errors.Is(err, ErrOrgNotFound) {
		return 0, err
	}

	status, body, err := c.do(ctx, operatorAuth(), http.MethodPost, "/api/orgs", map[string]string{"name": name})
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return 0, &APIError{Op: "create organization", StatusCode: status, Detail: string(body)}
	}

	var created struct {
		OrgID int64 `json:"orgId"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return 0, fmt.Errorf("failed to decode create organization response: %w", err)
	}

	return created.OrgID, nil
}

// OrganizationByName looks up an organization by name.
// Returns ErrOrgNotFound if no organization with that name exists.
func (c *Client) OrganizationByName(ctx context.Context, name string) (*Org, error) {
	status, body, err := c.do(ctx, operatorAuth(), http.MethodGet, "/api/orgs/name/"+url.PathEscape(name), nil)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusNotFound:
		return nil, fmt.Errorf("organization %q: %w", name, ErrOrgNotFound)
	case http.StatusOK:
		var org Org
		if err := json.Unmarshal(body, &org); err != nil {
			return nil, fmt.Errorf("failed to decode organization: %w", err)
		}
		return &org, nil
	default:
		return nil, &APIError{Op: "look up organization", StatusCode: status, Detail: string(body)}
	}
}

// ListOrganizations returns all organizations except the built-in default
// one. The filter is unconditional - the default org is not a tenant and
// must never show up in project listings.
func (c *Client) ListOrganizations(ctx context.Context) ([]Org, error) {
	status, body, err := c.do(ctx, operatorAuth(), http.MethodGet, "/api/orgs", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &APIError{Op: "list organizations", StatusCode: status, Detail: string(body)}
	}

	var orgs []Org
	if err := json.Unmarshal(body, &orgs); err != nil {
		return nil, fmt.Errorf("failed to decode organizations: %w", err)
	}

	filtered := make([]Org, 0, len(orgs))
	for _, org := range orgs {
		if org.Name == defaultOrgName {
			continue
		}
		filtered = append(filtered, org)
	}

	return filtered, nil
}

// DeleteOrganization deletes an organization by ID. Deleting an organization
// that does not exist is a success, so repeated deletes converge.
func (c *Client) DeleteOrganization(ctx context.Context, orgID int64) error {
	status, body, err := c.do(ctx, operatorAuth(), http.MethodDelete, fmt.Sprintf("/api/orgs/%d", orgID), nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusNotFound {
		return &APIError{Op: fmt.Sprintf("delete organization %d", orgID), StatusCode: status, Detail: string(body)}
	}
	return nil
}
