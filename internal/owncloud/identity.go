package owncloud

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"github.com/Dagefoerde/collaborativefolders/internal/config"
	"github.com/Dagefoerde/collaborativefolders/internal/db/models"
	"github.com/Dagefoerde/collaborativefolders/internal/folder"
)

// ErrNotLoggedIn is returned when a user has no remote session.
var ErrNotLoggedIn = errors.New("not logged in at the remote storage")

// Identity manages the per-user OAuth2 sessions at the ownCloud instance.
// Tokens are persisted so sessions survive restarts.
type Identity struct {
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
	oauth    oauth2.Config
	client   *Client
	db       *gorm.DB
}

// NewIdentity discovers the OpenID Connect endpoints of the ownCloud
// instance and prepares the OAuth2 flow.
func NewIdentity(ctx context.Context, cfg *config.OwnCloud, client *Client, db *gorm.DB) (*Identity, error) {
	provider, err := oidc.NewProvider(ctx, cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery against %s failed: %w", cfg.BaseURL, err)
	}

	return &Identity{
		provider: provider,
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID},
		},
		client: client,
		db:     db,
	}, nil
}

// LoginURL returns the authorization URL to send the user to.
func (i *Identity) LoginURL(state string) string {
	return i.oauth.AuthCodeURL(state)
}

// HandleCallback exchanges the authorization code and stores the resulting
// token for the platform user.
func (i *Identity) HandleCallback(ctx context.Context, userID uint64, code string) error {
	token, err := i.oauth.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("code exchange failed: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return errors.New("token response carried no id_token")
	}

	idToken, err := i.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return fmt.Errorf("id token verification failed: %w", err)
	}

	row := models.RemoteToken{
		UserID:       userID,
		RemoteUserID: idToken.Subject,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}

	// one remote session per user; a fresh login replaces the old token
	err = i.db.Where("user_id = ?", userID).Delete(&models.RemoteToken{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear previous token: %w", err)
	}

	if err := i.db.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	return nil
}

// LoggedIn reports whether the user has a stored remote session.
func (i *Identity) LoggedIn(_ context.Context, userID uint64) (bool, error) {
	var count int64

	err := i.db.Model(&models.RemoteToken{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check remote session: %w", err)
	}

	return count > 0, nil
}

// Logout drops the user's remote session. The remote link and chosen name
// are unaffected.
func (i *Identity) Logout(userID uint64) error {
	err := i.db.Where("user_id = ?", userID).Delete(&models.RemoteToken{}).Error
	if err != nil {
		return fmt.Errorf("failed to drop remote session: %w", err)
	}

	return nil
}

// Storage returns remote storage bound to the user's session plus the user's
// remote account name, refreshing the stored token when needed.
func (i *Identity) Storage(ctx context.Context, userID uint64) (folder.RemoteStorage, string, error) {
	var row models.RemoteToken

	err := i.db.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", ErrNotLoggedIn
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load token: %w", err)
	}

	stored := &oauth2.Token{
		AccessToken:  row.AccessToken,
		RefreshToken: row.RefreshToken,
		Expiry:       row.Expiry,
	}

	source := i.oauth.TokenSource(ctx, stored)

	fresh, err := source.Token()
	if err != nil {
		return nil, "", fmt.Errorf("failed to refresh token: %w", err)
	}

	if fresh.AccessToken != stored.AccessToken {
		err = i.db.Model(&models.RemoteToken{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
			"access_token":  fresh.AccessToken,
			"refresh_token": fresh.RefreshToken,
			"expiry":        fresh.Expiry,
		}).Error
		if err != nil {
			return nil, "", fmt.Errorf("failed to persist refreshed token: %w", err)
		}
	}

	return NewUserStorage(i.client, oauth2.NewClient(ctx, source)), row.RemoteUserID, nil
}
