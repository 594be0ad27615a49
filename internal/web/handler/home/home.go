// Package home lists the activities a user may open.
package home

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Dagefoerde/collaborativefolders/internal/auth"
	"github.com/Dagefoerde/collaborativefolders/internal/config"
	"github.com/Dagefoerde/collaborativefolders/internal/db/models"
	"github.com/Dagefoerde/collaborativefolders/internal/web/handler"
	"github.com/Dagefoerde/collaborativefolders/internal/web/navigation"
	"github.com/Dagefoerde/collaborativefolders/internal/web/session"
)

const (
	// Path is the path of the home page.
	Path = "/home"

	// TemplateName is the name of the home template.
	TemplateName = "home"
)

// Entry is one activity shown on the home page.
type Entry struct {
	Activity models.Activity
	Course   models.Course
}

// Service is the home handler service.
type Service struct {
	cfg  *config.Config
	db   *gorm.DB
	auth *auth.Service
}

// Handler is the home handler.
var Handler = Service{}

// Init initializes the home handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		return errors.New("app, cfg, db or auth is nil")
	}

	s.cfg = cfg
	s.db = db
	s.auth = authService

	app.Get(Path, s.Get)

	return nil
}

// Get renders the list of activities the user may view.
func (s *Service) Get(c *fiber.Ctx) error {
	sessData, ok := session.CurrentUser(c)
	if !ok {
		return c.Redirect("/login")
	}

	var activities []models.Activity

	err := s.db.Preload("Course").Order("id asc").Find(&activities).Error
	if err != nil {
		log.Error().Err(err).Msg("failed to list activities")
		return c.Status(fiber.StatusInternalServerError).SendString("internal error")
	}

	entries := make([]Entry, 0, len(activities))

	for i := range activities {
		canView, err := s.auth.HasCapability(sessData.User.ID, activities[i].ID, auth.CapabilityView)
		if err != nil {
			log.Error().Err(err).Msg("capability check failed")
			return c.Status(fiber.StatusInternalServerError).SendString("internal error")
		}

		if canView {
			entries = append(entries, Entry{Activity: activities[i], Course: activities[i].Course})
		}
	}

	nav := navigation.NewContext("Home", "home").
		AddBreadcrumb("Home", Path, true)

	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": nav,
		"User":       sessData.User,
		"Entries":    entries,
	}, handler.BaseLayout)
}
