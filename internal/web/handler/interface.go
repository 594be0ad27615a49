package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Dagefoerde/collaborativefolders/internal/config"
	"github.com/Dagefoerde/collaborativefolders/internal/folder"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error
}

// RemoteIdentity is the slice of the remote identity service the handlers
// depend on.
type RemoteIdentity interface {
	LoginURL(state string) string
	HandleCallback(ctx context.Context, userID uint64, code string) error
	LoggedIn(ctx context.Context, userID uint64) (bool, error)
	Logout(userID uint64) error
	Storage(ctx context.Context, userID uint64) (folder.RemoteStorage, string, error)
}
