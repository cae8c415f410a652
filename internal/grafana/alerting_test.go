package grafana

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// alertingFake scripts the service account and provisioning endpoints so
// individual tests can fail one sub-step and observe the cleanup behaviour.
type alertingFake struct {
	tokenStatus        int
	contactPointStatus int
	policyStatus       int
	deleteStatus       int

	saName            string
	saDeletes         int
	contactPointCalls int
	policyCalls       int
	contactPointAuth  string
	contactPointBody  map[string]any
	policyBody        map[string]any
}

func newAlertingFake() *alertingFake {
	return &alertingFake{
		tokenStatus:        http.StatusOK,
		contactPointStatus: http.StatusAccepted,
		policyStatus:       http.StatusAccepted,
		deleteStatus:       http.StatusOK,
	}
}

func (f *alertingFake) handler(t *testing.T) http.Handler {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/serviceaccounts", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "7", r.Header.Get("X-Grafana-Org-Id"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		f.saName, _ = body["name"].(string)
		require.Equal(t, "Admin", body["role"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":42,"isDisabled":false}`))
	})

	mux.HandleFunc("POST /api/serviceaccounts/42/tokens", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(f.tokenStatus)
		_, _ = w.Write([]byte(`{"key":"sa-token"}`))
	})

	mux.HandleFunc("DELETE /api/serviceaccounts/42", func(w http.ResponseWriter, r *http.Request) {
		f.saDeletes++
		w.WriteHeader(f.deleteStatus)
	})

	mux.HandleFunc("POST /api/v1/provisioning/contact-points", func(w http.ResponseWriter, r *http.Request) {
		f.contactPointCalls++
		f.contactPointAuth = r.Header.Get("Authorization")
		require.Empty(t, r.Header.Get("X-Grafana-Org-Id"), "bearer calls carry no org header")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&f.contactPointBody))
		w.WriteHeader(f.contactPointStatus)
	})

	mux.HandleFunc("PUT /api/v1/provisioning/policies", func(w http.ResponseWriter, r *http.Request) {
		f.policyCalls++
		require.NoError(t, json.NewDecoder(r.Body).Decode(&f.policyBody))
		w.WriteHeader(f.policyStatus)
	})

	return mux
}

func TestConfigureAlerting(t *testing.T) {
	fake := newAlertingFake()
	client := newTestClient(t, fake.handler(t))

	err := client.ConfigureAlerting(context.Background(), 7, "123:abc", "99887")
	require.NoError(t, err)

	// Provisioning calls ran under the minted token.
	require.Equal(t, "Bearer sa-token", fake.contactPointAuth)

	require.Equal(t, "Telegram", fake.contactPointBody["name"])
	require.Equal(t, "telegram", fake.contactPointBody["type"])
	settings, ok := fake.contactPointBody["settings"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "123:abc", settings["bottoken"])
	require.Equal(t, "99887", settings["chatid"])

	require.Equal(t, "Telegram", fake.policyBody["receiver"])
	require.Equal(t, []any{"alertname"}, fake.policyBody["group_by"])
	require.Equal(t, "30s", fake.policyBody["group_wait"])
	require.Equal(t, "5m", fake.policyBody["group_interval"])
	require.Equal(t, "4h", fake.policyBody["repeat_interval"])

	require.True(t, strings.HasPrefix(fake.saName, "tenantctl-setup-"))
	require.Equal(t, 1, fake.saDeletes, "temporary service account deleted exactly once")
}

func TestConfigureAlertingContactPointFailure(t *testing.T) {
	fake := newAlertingFake()
	fake.contactPointStatus = http.StatusForbidden
	client := newTestClient(t, fake.handler(t))

	err := client.ConfigureAlerting(context.Background(), 7, "123:abc", "99887")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Contains(t, apiErr.Op, "contact point")

	require.Zero(t, fake.policyCalls, "policy is not set after the contact point fails")
	require.Equal(t, 1, fake.saDeletes, "cleanup still runs on failure")
}

func TestConfigureAlertingPolicyFailure(t *testing.T) {
	fake := newAlertingFake()
	fake.policyStatus = http.StatusBadRequest
	client := newTestClient(t, fake.handler(t))

	err := client.ConfigureAlerting(context.Background(), 7, "123:abc", "99887")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "set notification policy", apiErr.Op)
	require.Equal(t, 1, fake.saDeletes)
}

func TestConfigureAlertingTokenMintFailure(t *testing.T) {
	fake := newAlertingFake()
	fake.tokenStatus = http.StatusInternalServerError
	client := newTestClient(t, fake.handler(t))

	err := client.ConfigureAlerting(context.Background(), 7, "123:abc", "99887")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "create service account token", apiErr.Op)

	require.Zero(t, fake.contactPointCalls)
	require.Equal(t, 1, fake.saDeletes, "account from step 1 is deleted even when minting fails")
}

func TestConfigureAlertingCleanupFailureDoesNotFailCall(t *testing.T) {
	fake := newAlertingFake()
	fake.deleteStatus = http.StatusInternalServerError
	client := newTestClient(t, fake.handler(t))

	// Cleanup is best effort; a failed delete is logged, not raised.
	err := client.ConfigureAlerting(context.Background(), 7, "123:abc", "99887")
	require.NoError(t, err)
	require.Equal(t, 1, fake.saDeletes)
}
