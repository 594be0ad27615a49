package owncloud

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dagefoerde/collaborativefolders/internal/config"
)

func testClient(serverURL string) *Client {
	return NewClient(&config.OwnCloud{
		BaseURL:           serverURL,
		WebDAVRoot:        "remote.php/webdav",
		TechnicalUser:     "technical",
		TechnicalPassword: "secret",
	})
}

func ocsBody(statusCode int, message string) string {
	return fmt.Sprintf(`{"ocs":{"meta":{"statuscode":%d,"message":"%s"}}}`, statusCode, message)
}

func TestShareFolder(t *testing.T) {
	testCases := []struct {
		name      string
		ocsStatus int
		wantErr   bool
	}{
		{"share accepted", 100, false},
		{"already shared counts as success", 403, false},
		{"unknown recipient", 404, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, sharesEndpoint, r.URL.Path)

				user, pass, ok := r.BasicAuth()
				require.True(t, ok)
				assert.Equal(t, "technical", user)
				assert.Equal(t, "secret", pass)

				require.NoError(t, r.ParseForm())
				assert.Equal(t, "/7/42", r.PostForm.Get("path"))
				assert.Equal(t, "alice", r.PostForm.Get("shareWith"))
				assert.Equal(t, "0", r.PostForm.Get("shareType"))

				fmt.Fprint(w, ocsBody(tc.ocsStatus, "msg"))
			}))
			defer server.Close()

			err := testClient(server.URL).ShareFolder(context.Background(), "/7/42", "alice")
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCreateFolder(t *testing.T) {
	testCases := []struct {
		name       string
		httpStatus int
		wantErr    bool
	}{
		{"created", http.StatusCreated, false},
		{"already exists counts as success", http.StatusMethodNotAllowed, false},
		{"server error", http.StatusInternalServerError, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "MKCOL", r.Method)
				assert.Equal(t, "/remote.php/webdav/7", r.URL.Path)
				w.WriteHeader(tc.httpStatus)
			}))
			defer server.Close()

			err := testClient(server.URL).CreateFolder(context.Background(), "/7")
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRenameFolder(t *testing.T) {
	var gotDestination string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "MOVE", r.Method)
		assert.Equal(t, "/remote.php/webdav/42", r.URL.Path)
		gotDestination = r.Header.Get("Destination")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	storage := NewUserStorage(testClient(server.URL), server.Client())

	link, err := storage.RenameFolder(context.Background(), "/42", "Our folder", "alice")
	require.NoError(t, err)

	assert.Equal(t, server.URL+"/remote.php/webdav/Our%20folder", gotDestination)
	assert.Equal(t, server.URL+"/index.php/apps/files/?dir=%2FOur+folder", link)
}

func TestRenameFolderNameTaken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPreconditionFailed)
	}))
	defer server.Close()

	storage := NewUserStorage(testClient(server.URL), server.Client())

	_, err := storage.RenameFolder(context.Background(), "/42", "Taken", "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
