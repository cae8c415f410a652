package grafana

import (
	"context"
	"net/http"
	"strings"
)

// folderUIDMaxLen matches Grafana's 40 character limit on folder UIDs.
const folderUIDMaxLen = 40

// FolderUID derives a deterministic folder UID from a project name so that
// repeated provisioning targets the same folder: lower-cased, spaces
// replaced with hyphens, truncated to the UID length limit.
func FolderUID(project string) string {
	uid := strings.ReplaceAll(strings.ToLower(project), " ", "-")
	if len(uid) > folderUIDMaxLen {
		uid = uid[:folderUIDMaxLen]
	}
	return uid
}

// ProvisionFolder creates the dashboard folder named after the project. A
// 412 means a folder with this UID already exists and is treated as
// success.
func (c *Client) ProvisionFolder(ctx context.Context, orgID int64, project string) error {
	status, body, err := c.do(ctx, orgAuth(orgID), http.MethodPost, "/api/folders", map[string]string{
		"title": project,
		"uid":   FolderUID(project),
	})
	if err != nil {
		return err
	}

	switch status {
	case http.StatusOK, http.StatusCreated, http.StatusPreconditionFailed:
		// 412 = folder with this uid already exists
		return nil
	default:
		return &APIError{Op: "create folder", StatusCode: status, Detail: string(body)}
	}
}
