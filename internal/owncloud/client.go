// Package owncloud talks to the ownCloud instance backing the collaborative
// folders: sharing and creating folders as the technical account, and
// renaming folders inside a logged-in user's own space.
package owncloud

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Dagefoerde/collaborativefolders/internal/config"
)

const sharesEndpoint = "/ocs/v1.php/apps/files_sharing/api/v1/shares"

// OCS status codes of the share API.
const (
	ocsOK            = 100
	ocsAlreadyShared = 403
)

// Client performs remote operations with the technical account.
type Client struct {
	baseURL    string
	webdavRoot string
	user       string
	password   string
	http       *http.Client
}

// NewClient creates a client from the ownCloud configuration.
func NewClient(cfg *config.OwnCloud) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		webdavRoot: strings.Trim(cfg.WebDAVRoot, "/"),
		user:       cfg.TechnicalUser,
		password:   cfg.TechnicalPassword,
		http:       &http.Client{},
	}
}

type ocsResponse struct {
	OCS struct {
		Meta struct {
			StatusCode int    `json:"statuscode"`
			Message    string `json:"message"`
		} `json:"meta"`
	} `json:"ocs"`
}

// ShareFolder shares a folder of the technical account with a remote user.
// Sharing an already-shared folder is treated as success.
func (c *Client) ShareFolder(ctx context.Context, path, recipient string) error {
	form := url.Values{}
	form.Set("path", path)
	form.Set("shareType", "0")
	form.Set("shareWith", recipient)
	form.Set("permissions", "31")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+sharesEndpoint+"?format=json", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build share request: %w", err)
	}
	req.SetBasicAuth(c.user, c.password)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("share request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read share response: %w", err)
	}

	var parsed ocsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("unexpected share response (status %d): %w", resp.StatusCode, err)
	}

	switch parsed.OCS.Meta.StatusCode {
	case ocsOK, ocsAlreadyShared:
		return nil
	default:
		return fmt.Errorf("share rejected (ocs status %d): %s",
			parsed.OCS.Meta.StatusCode, parsed.OCS.Meta.Message)
	}
}

// CreateFolder creates a directory in the technical account's space. An
// already existing directory is treated as success.
func (c *Client) CreateFolder(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, "MKCOL", c.davURL(path), nil)
	if err != nil {
		return fmt.Errorf("failed to build mkcol request: %w", err)
	}
	req.SetBasicAuth(c.user, c.password)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("mkcol request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusMethodNotAllowed:
		// 405 means the collection already exists
		return nil
	default:
		return fmt.Errorf("mkcol %s failed with status %d", path, resp.StatusCode)
	}
}

func (c *Client) davURL(path string) string {
	return c.baseURL + "/" + c.webdavRoot + encodePath(path)
}

// encodePath escapes each path segment while keeping the separators.
func encodePath(path string) string {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for i := range segments {
		segments[i] = url.PathEscape(segments[i])
	}

	return "/" + strings.Join(segments, "/")
}
