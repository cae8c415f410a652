package grafana

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const contactPointName = "Telegram"

// ConfigureAlerting sets up the Telegram contact point and the notification
// policy for the organization.
//
// The alerting provisioning API ignores the org-scope header, so operator
// credentials cannot reach it for a freshly created organization. Instead a
// temporary Admin service account is created inside the org and a token
// minted for it; the token carries the org scope, so the provisioning calls
// need no header at all. The service account is deleted on every exit path,
// whether or not the provisioning calls succeeded.
func (c *Client) ConfigureAlerting(ctx context.Context, orgID int64, botToken, chatID string) error {
	saID, err := c.createSetupServiceAccount(ctx, orgID)
	if err != nil {
		return err
	}
	// Cleanup must survive a cancelled request context.
	defer c.deleteServiceAccount(context.WithoutCancel(ctx), orgID, saID)

	token, err := c.createServiceAccountToken(ctx, orgID, saID)
	if err != nil {
		return err
	}

	if err := c.createTelegramContactPoint(ctx, token, botToken, chatID); err != nil {
		return err
	}

	return c.setNotificationPolicy(ctx, token)
}

// createSetupServiceAccount creates the temporary Admin service account the
// alerting setup runs as. The name carries a random suffix so a leftover
// account from an earlier failed cleanup never blocks a new run.
func (c *Client) createSetupServiceAccount(ctx context.Context, orgID int64) (int64, error) {
	name := "tenantctl-setup-" + uuid.NewString()[:8]

	status, body, err := c.do(ctx, orgAuth(orgID), http.MethodPost, "/api/serviceaccounts", map[string]any{
		"name":       name,
		"role":       "Admin",
		"isDisabled": false,
	})
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return 0, &APIError{Op: "create service account", StatusCode: status, Detail: string(body)}
	}

	var sa struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &sa); err != nil {
		return 0, fmt.Errorf("failed to decode service account: %w", err)
	}

	return sa.ID, nil
}

// createServiceAccountToken mints a token for the service account. The token
// is scoped to the organization the account lives in.
func (c *Client) createServiceAccountToken(ctx context.Context, orgID, saID int64) (string, error) {
	status, body, err := c.do(ctx, orgAuth(orgID), http.MethodPost,
		fmt.Sprintf("/api/serviceaccounts/%d/tokens", saID), map[string]string{
			"name": "tenantctl-setup-token",
		})
	if err != nil {
		return "", err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return "", &APIError{Op: "create service account token", StatusCode: status, Detail: string(body)}
	}

	var tok struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("failed to decode service account token: %w", err)
	}

	return tok.Key, nil
}

// deleteServiceAccount removes the temporary service account. Cleanup is
// best effort: a failure here is logged but never overrides the outcome of
// the provisioning calls that ran under the account's token.
func (c *Client) deleteServiceAccount(ctx context.Context, orgID, saID int64) {
	status, body, err := c.do(ctx, orgAuth(orgID), http.MethodDelete,
		fmt.Sprintf("/api/serviceaccounts/%d", saID), nil)
	if err != nil {
		log.Warn().Err(err).Int64("org_id", orgID).Int64("service_account_id", saID).
			Msg("Failed to delete temporary service account")
		return
	}
	if status != http.StatusOK {
		log.Warn().Int("status", status).Str("detail", string(body)).
			Int64("org_id", orgID).Int64("service_account_id", saID).
			Msg("Failed to delete temporary service account")
	}
}

func (c *Client) createTelegramContactPoint(ctx context.Context, token, botToken, chatID string) error {
	status, body, err := c.do(ctx, bearerAuth(token), http.MethodPost, "/api/v1/provisioning/contact-points", map[string]any{
		"name": contactPointName,
		"type": "telegram",
		"settings": map[string]string{
			"bottoken": botToken,
			"chatid":   chatID,
		},
	})
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusCreated && status != http.StatusAccepted {
		return &APIError{Op: "create Telegram contact point", StatusCode: status, Detail: string(body)}
	}
	return nil
}

func (c *Client) setNotificationPolicy(ctx context.Context, token string) error {
	status, body, err := c.do(ctx, bearerAuth(token), http.MethodPut, "/api/v1/provisioning/policies", map[string]any{
		"receiver":        contactPointName,
		"group_by":        []string{"alertname"},
		"group_wait":      "30s",
		"group_interval":  "5m",
		"repeat_interval": "4h",
	})
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusAccepted {
		return &APIError{Op: "set notification policy", StatusCode: status, Detail: string(body)}
	}
	return nil
}
