package grafana

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// orgHeader scopes an operator-credential request to one organization.
	orgHeader = "X-Grafana-Org-Id"

	// requestTimeout bounds every remote call. A single attempt per call,
	// no retries - retry policy belongs to the caller.
	requestTimeout = 10 * time.Second

	// defaultOrgName is the built-in organization Grafana ships with. It is
	// never created or deleted by this tool and is filtered out of listings.
	defaultOrgName = "Main Org."
)

// Config holds the connection settings for a Grafana instance.
type Config struct {
	URL      string
	User     string
	Password string

	Datasources DatasourceURLs
}

// DatasourceURLs holds the backend addresses provisioned into every tenant.
// Zero values fall back to the conventional in-cluster addresses.
type DatasourceURLs struct {
	Prometheus string
	Loki       string
	Tempo      string
}

func (d DatasourceURLs) withDefaults() DatasourceURLs {
	if d.Prometheus == "" {
		d.Prometheus = "http://prometheus:9090"
	}
	if d.Loki == "" {
		d.Loki = "http://loki:3100"
	}
	if d.Tempo == "" {
		d.Tempo = "http://tempo:3200"
	}
	return d
}

// Client talks to the Grafana HTTP API with operator credentials, optionally
// scoped to one organization, or with a short-lived bearer token minted for a
// temporary service account.
type Client struct {
	baseURL     string
	user        string
	password    string
	datasources DatasourceURLs
	httpClient  *http.Client
}

// New creates a client for the given Grafana instance.
func New(cfg Config) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.URL, "/"),
		user:        cfg.User,
		password:    cfg.Password,
		datasources: cfg.Datasources.withDefaults(),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// credentials selects how a single request authenticates: operator basic
// auth (optionally scoped to an org via the org header), or a bearer token
// which carries its own org scope.
type credentials struct {
	orgID int64
	token string
}

func operatorAuth() credentials {
	return credentials{}
}

func orgAuth(orgID int64) credentials {
	return credentials{orgID: orgID}
}

func bearerAuth(token string) credentials {
	return credentials{token: token}
}

// do issues one request and returns the status code and raw response body.
// Callers decide which status codes are successes - several provisioning
// calls treat "already exists" responses as success.
//
// A transport-level failure (DNS, connection refused, timeout) is returned
// as a ConnectivityError; HTTP status handling is left to the caller.
func (c *Client) do(ctx context.Context, creds credentials, method, path string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if creds.token != "" {
		req.Header.Set("Authorization", "Bearer "+creds.token)
	} else {
		req.SetBasicAuth(c.user, c.password)
		if creds.orgID > 0 {
			req.Header.Set(orgHeader, fmt.Sprintf("%d", creds.orgID))
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &ConnectivityError{BaseURL: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &ConnectivityError{BaseURL: c.baseURL, Err: err}
	}

	return resp.StatusCode, respBody, nil
}
