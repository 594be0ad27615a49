// Package remote runs the OAuth2 login flow against the remote storage.
package remote

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/Dagefoerde/collaborativefolders/internal/config"
	"github.com/Dagefoerde/collaborativefolders/internal/uniuri"
	"github.com/Dagefoerde/collaborativefolders/internal/web/handler"
	"github.com/Dagefoerde/collaborativefolders/internal/web/session"
)

const (
	// LoginPath starts the authorization flow.
	LoginPath = "/remote/login"

	// CallbackPath receives the authorization code.
	CallbackPath = "/remote/callback"

	stateCookie  = "remote_state"
	returnCookie = "remote_return"
)

// Service is the remote login handler service.
type Service struct {
	cfg      *config.Config
	identity handler.RemoteIdentity
}

// Handler is the remote login handler.
var Handler = Service{}

// Init initializes the remote login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, identity handler.RemoteIdentity) error {
	if app == nil || cfg == nil || identity == nil {
		return errors.New("app, cfg or identity is nil")
	}

	s.cfg = cfg
	s.identity = identity

	app.Get(LoginPath, s.Login)
	app.Get(CallbackPath, s.Callback)

	return nil
}

// Login sends the user to the remote authorization page. The page to come
// back to afterwards is taken from the return query parameter.
func (s *Service) Login(c *fiber.Ctx) error {
	if _, ok := session.CurrentUser(c); !ok {
		return c.Redirect("/login")
	}

	state := uniuri.New()

	s.setFlowCookie(c, stateCookie, state)
	s.setFlowCookie(c, returnCookie, sanitizeReturn(c.Query("return")))

	return c.Redirect(s.identity.LoginURL(state))
}

// Callback finishes the authorization flow and stores the remote session.
func (s *Service) Callback(c *fiber.Ctx) error {
	sessData, ok := session.CurrentUser(c)
	if !ok {
		return c.Redirect("/login")
	}

	if c.Query("state") == "" || c.Query("state") != c.Cookies(stateCookie) {
		log.Warn().Uint64("user_id", sessData.User.ID).Msg("state mismatch in remote callback")
		return c.Status(fiber.StatusBadRequest).SendString("invalid state")
	}

	returnTo := sanitizeReturn(c.Cookies(returnCookie))

	s.clearFlowCookie(c, stateCookie)
	s.clearFlowCookie(c, returnCookie)

	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).SendString("missing code")
	}

	if err := s.identity.HandleCallback(c.Context(), sessData.User.ID, code); err != nil {
		log.Error().Err(err).Uint64("user_id", sessData.User.ID).Msg("remote login failed")
		return c.Status(fiber.StatusBadGateway).SendString("remote login failed")
	}

	return c.Redirect(returnTo)
}

func (s *Service) setFlowCookie(c *fiber.Ctx, name, value string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		MaxAge:   300,
		Secure:   !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func (s *Service) clearFlowCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		MaxAge:   -1,
		Secure:   !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// sanitizeReturn only allows site-local paths as return targets.
func sanitizeReturn(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return "/"
	}

	return target
}
