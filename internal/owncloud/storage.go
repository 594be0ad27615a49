package owncloud

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// UserStorage combines the technical account (for sharing) with one user's
// authorized session (for renaming inside their own space). It satisfies the
// remote storage contract of the provisioning orchestrator.
type UserStorage struct {
	client *Client
	// session carries the user's OAuth2 token.
	session *http.Client
}

// NewUserStorage binds a user's authorized HTTP client to the technical
// account client.
func NewUserStorage(client *Client, session *http.Client) *UserStorage {
	return &UserStorage{
		client:  client,
		session: session,
	}
}

// ShareFolder shares a folder of the technical account with the recipient.
func (s *UserStorage) ShareFolder(ctx context.Context, path, recipient string) error {
	return s.client.ShareFolder(ctx, path, recipient)
}

// RenameFolder moves the shared folder inside the user's own space to its
// chosen display name and returns the link into the files app.
func (s *UserStorage) RenameFolder(ctx context.Context, path, newName, _ string) (string, error) {
	source := s.client.baseURL + "/" + s.client.webdavRoot + encodePath(path)
	destination := s.client.baseURL + "/" + s.client.webdavRoot + encodePath("/"+newName)

	req, err := http.NewRequestWithContext(ctx, "MOVE", source, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build move request: %w", err)
	}
	req.Header.Set("Destination", destination)
	req.Header.Set("Overwrite", "F")

	resp, err := s.session.Do(req)
	if err != nil {
		return "", fmt.Errorf("move request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusNoContent:
		return s.fileAppLink(newName), nil
	case http.StatusPreconditionFailed:
		return "", fmt.Errorf("a folder named %q already exists", newName)
	default:
		return "", fmt.Errorf("move %s failed with status %d", path, resp.StatusCode)
	}
}

// fileAppLink builds the web link to a folder in the user's files app.
func (s *UserStorage) fileAppLink(name string) string {
	return s.client.baseURL + "/index.php/apps/files/?dir=" + url.QueryEscape("/"+strings.TrimPrefix(name, "/"))
}
