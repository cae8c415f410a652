package grafana

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProvisionDatasources(t *testing.T) {
	var created []Datasource

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/datasources", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "7", r.Header.Get("X-Grafana-Org-Id"))

		var ds Datasource
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ds))
		created = append(created, ds)

		w.WriteHeader(http.StatusOK)
	})

	client := newTestClient(t, mux)

	err := client.ProvisionDatasources(context.Background(), 7, "acme")
	require.NoError(t, err)
	require.Len(t, created, 3)

	// Fixed order: metrics, logs, traces.
	require.Equal(t, "Prometheus", created[0].Name)
	require.Equal(t, "Loki", created[1].Name)
	require.Equal(t, "Tempo", created[2].Name)

	require.True(t, created[0].IsDefault)
	require.Equal(t, "15s", created[0].JSONData["timeInterval"])

	// The Loki scope header value is the project name, carried as a secret.
	require.Equal(t, "X-Scope-OrgID", created[1].JSONData["httpHeaderName1"])
	require.Equal(t, "acme", created[1].SecureJSONData["httpHeaderValue1"])

	require.False(t, created[2].IsDefault)
}

func TestProvisionDatasourcesConflictsConverge(t *testing.T) {
	calls := 0

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"message":"data source with the same name already exists"}`, http.StatusConflict)
	}))

	// Re-running provisioning against an org that already has all three
	// datasources is a no-op, not an error.
	err := client.ProvisionDatasources(context.Background(), 7, "acme")
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestProvisionDatasourcesFailureAborts(t *testing.T) {
	calls := 0

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 2 {
			http.Error(w, "datasource validation failed", http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	err := client.ProvisionDatasources(context.Background(), 7, "acme")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Contains(t, apiErr.Op, "Loki")
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	// Tempo is never attempted after Loki fails.
	require.Equal(t, 2, calls)
}
