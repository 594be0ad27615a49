// Package activity serves the collaborative-folder activity page: folder
// status, name choice, link generation and the remote login hooks.
package activity

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Dagefoerde/collaborativefolders/internal/auth"
	"github.com/Dagefoerde/collaborativefolders/internal/config"
	"github.com/Dagefoerde/collaborativefolders/internal/course"
	activityctl "github.com/Dagefoerde/collaborativefolders/internal/db/controller/activity"
	"github.com/Dagefoerde/collaborativefolders/internal/db/controller/linkpref"
	"github.com/Dagefoerde/collaborativefolders/internal/db/models"
	"github.com/Dagefoerde/collaborativefolders/internal/event"
	"github.com/Dagefoerde/collaborativefolders/internal/folder"
	"github.com/Dagefoerde/collaborativefolders/internal/owncloud"
	"github.com/Dagefoerde/collaborativefolders/internal/task"
	"github.com/Dagefoerde/collaborativefolders/internal/web/handler"
	"github.com/Dagefoerde/collaborativefolders/internal/web/handler/remote"
	"github.com/Dagefoerde/collaborativefolders/internal/web/navigation"
	"github.com/Dagefoerde/collaborativefolders/internal/web/session"
)

const (
	// Path is the base path of the activity pages.
	Path = "/activity"

	// TemplateName is the name of the activity view template.
	TemplateName = "activity/view"
)

// NameForm is the folder name submission.
type NameForm struct {
	Name string `form:"namefield" validate:"required,max=190"`
}

var validate = validator.New()

// Service is the activity handler service.
type Service struct {
	cfg      *config.Config
	db       *gorm.DB
	identity handler.RemoteIdentity
	auth     *auth.Service
	courses  *course.Service
	tracker  *task.Tracker
	sink     *event.Sink
}

// Handler is the activity handler.
var Handler = Service{}

// Init initializes the activity handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service, identity handler.RemoteIdentity) error {
	if app == nil || cfg == nil || db == nil || authService == nil || identity == nil {
		return errors.New("app, cfg, db, auth or identity is nil")
	}

	s.cfg = cfg
	s.db = db
	s.identity = identity
	s.auth = authService
	s.courses = course.NewService(db)
	s.tracker = task.NewTracker(db)
	s.sink = event.NewSink(db)

	app.Route(Path, func(router fiber.Router) {
		router.Get("/:id", s.Get)
		router.Post("/:id", s.Post)
	})

	return nil
}

// Get serves the activity page and handles the reset, logout and generate
// query actions.
func (s *Service) Get(c *fiber.Ctx) error {
	sessData, act, err := s.load(c)
	if err != nil {
		return err
	}
	if act == nil {
		return nil // load already answered
	}

	switch {
	case c.Query("reset") == "1":
		return s.reset(c, sessData, act)
	case c.Query("logout") == "1":
		return s.remoteLogout(c, sessData, act)
	case c.Query("generate") == "1":
		return s.generate(c, sessData, act)
	default:
		return s.display(c, sessData, act, "")
	}
}

// Post handles the folder name submission.
func (s *Service) Post(c *fiber.Ctx) error {
	sessData, act, err := s.load(c)
	if err != nil {
		return err
	}
	if act == nil {
		return nil
	}

	form := new(NameForm)
	if err := c.BodyParser(form); err != nil {
		return s.display(c, sessData, act, "The submitted form could not be read.")
	}

	if err := validate.Struct(form); err != nil {
		return s.display(c, sessData, act, "Please choose a non-empty folder name.")
	}

	if err := linkpref.SetName(s.db, sessData.User.ID, act.ID, form.Name); err != nil {
		log.Error().Err(err).Msg("failed to store folder name")
		return s.display(c, sessData, act, "Storing the folder name failed.")
	}

	return c.Redirect(s.pagePath(act))
}

// load resolves the session user and the requested activity and enforces the
// view capability. A nil activity with a nil error means the response was
// already written.
func (s *Service) load(c *fiber.Ctx) (*session.Data, *models.Activity, error) {
	sessData, ok := session.CurrentUser(c)
	if !ok {
		return nil, nil, c.Redirect("/login")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return nil, nil, c.Status(fiber.StatusNotFound).SendString("unknown activity")
	}

	act, err := activityctl.Get(s.db, id)
	if errors.Is(err, activityctl.ErrNotFound) {
		return nil, nil, c.Status(fiber.StatusNotFound).SendString("unknown activity")
	}
	if err != nil {
		log.Error().Err(err).Uint64("instance_id", id).Msg("failed to load activity")
		return nil, nil, c.Status(fiber.StatusInternalServerError).SendString("internal error")
	}

	canView, err := s.auth.HasCapability(sessData.User.ID, act.ID, auth.CapabilityView)
	if err != nil {
		log.Error().Err(err).Msg("capability check failed")
		return nil, nil, c.Status(fiber.StatusInternalServerError).SendString("internal error")
	}

	if !canView {
		return nil, nil, c.Status(fiber.StatusForbidden).SendString("you may not view this activity")
	}

	return sessData, act, nil
}

// reset clears the chosen folder name. An already issued link survives.
func (s *Service) reset(c *fiber.Ctx, sessData *session.Data, act *models.Activity) error {
	if err := linkpref.ResetName(s.db, sessData.User.ID, act.ID); err != nil {
		log.Error().Err(err).Msg("failed to reset folder name")
		return s.display(c, sessData, act, "Resetting the folder name failed.")
	}

	return c.Redirect(s.pagePath(act))
}

// remoteLogout drops the user's remote storage session.
func (s *Service) remoteLogout(c *fiber.Ctx, sessData *session.Data, act *models.Activity) error {
	if err := s.identity.Logout(sessData.User.ID); err != nil {
		log.Error().Err(err).Msg("remote logout failed")
		return s.display(c, sessData, act, "Logging out of the remote storage failed.")
	}

	return c.Redirect(s.pagePath(act))
}

// pageState gathers everything the view and the generate action decide on.
type pageState struct {
	capAdd         bool
	foldersCreated bool
	decision       folder.Decision
	group          *models.Group
	noGroup        bool
	pref           models.LinkPreference
	loggedIn       bool
}

func (s *Service) state(c *fiber.Ctx, sessData *session.Data, act *models.Activity) (*pageState, error) {
	st := new(pageState)

	capAdd, err := s.auth.HasCapability(sessData.User.ID, act.ID, auth.CapabilityAddInstance)
	if err != nil {
		return nil, err
	}
	st.capAdd = capAdd

	st.foldersCreated, err = s.tracker.FoldersCreated(act)
	if err != nil {
		return nil, err
	}

	st.decision = folder.Evaluate(folder.AccessInput{
		CapabilityAdd:  st.capAdd,
		TeacherAllowed: act.TeacherAllowed,
		FoldersCreated: st.foldersCreated,
		GroupMode:      act.GroupMode,
	})

	if act.GroupMode && !st.capAdd {
		st.group, err = s.courses.CurrentGroupOf(sessData.User.ID, act)
		if err != nil {
			return nil, err
		}

		st.noGroup = st.group == nil
	}

	pref, err := linkpref.Get(s.db, sessData.User.ID, act.ID)
	switch {
	case errors.Is(err, linkpref.ErrNotFound):
		// nothing stored yet
	case err != nil:
		return nil, err
	default:
		st.pref = *pref
	}

	st.loggedIn, err = s.identity.LoggedIn(c.Context(), sessData.User.ID)
	if err != nil {
		return nil, err
	}

	return st, nil
}

// display renders the activity page.
func (s *Service) display(c *fiber.Ctx, sessData *session.Data, act *models.Activity, flash string) error {
	st, err := s.state(c, sessData, act)
	if err != nil {
		log.Error().Err(err).Uint64("instance_id", act.ID).Msg("failed to assemble activity page")
		return c.Status(fiber.StatusInternalServerError).SendString("internal error")
	}

	var groups []models.Group
	if st.decision.CanShowAdminTable {
		groups, err = s.courses.AllGroups(act)
		if err != nil {
			log.Error().Err(err).Msg("failed to list groups")
			return c.Status(fiber.StatusInternalServerError).SendString("internal error")
		}
	}

	if err := s.sink.Emit(event.ActivityViewed, sessData.User.ID, act.ID); err != nil {
		log.Error().Err(err).Msg("failed to record view event")
	}

	nav := navigation.NewContext(act.Name, "activity").
		AddBreadcrumb("Home", "/home", false).
		AddBreadcrumb(act.Course.FullName, "/home", false).
		AddBreadcrumb(act.Name, s.pagePath(act), true)

	return c.Render(TemplateName, fiber.Map{
		"Title":          s.cfg.Title,
		"Navigation":     nav,
		"Activity":       act,
		"Course":         act.Course,
		"CapAdd":         st.capAdd,
		"TeacherAccess":  st.decision.TeacherAccess,
		"CanGenerate":    st.decision.CanGenerate,
		"FoldersCreated": st.foldersCreated,
		"NoGroup":        st.noGroup,
		"Group":          st.group,
		"Groups":         groups,
		"LoggedIn":       st.loggedIn,
		"HasLink":        st.pref.Link != "",
		"Link":           st.pref.Link,
		"Name":           st.pref.Name,
		"Error":          flash,
		"PagePath":       s.pagePath(act),
		"RemoteLogin":    remote.LoginPath + "?return=" + s.pagePath(act),
	}, handler.BaseLayout)
}

// generate runs the share and rename steps and stores the resulting link.
func (s *Service) generate(c *fiber.Ctx, sessData *session.Data, act *models.Activity) error {
	st, err := s.state(c, sessData, act)
	if err != nil {
		log.Error().Err(err).Uint64("instance_id", act.ID).Msg("failed to assemble activity state")
		return c.Status(fiber.StatusInternalServerError).SendString("internal error")
	}

	// guards; none of these reach the remote storage
	switch {
	case !st.decision.CanGenerate:
		return s.display(c, sessData, act, "")
	case st.pref.Link != "":
		return s.display(c, sessData, act, "")
	case st.pref.Name == "":
		return s.display(c, sessData, act, "Please choose a folder name first.")
	case st.noGroup:
		return s.display(c, sessData, act, "You are not member of any group of this activity.")
	}

	storage, recipient, err := s.identity.Storage(c.Context(), sessData.User.ID)
	if errors.Is(err, owncloud.ErrNotLoggedIn) {
		return s.display(c, sessData, act, "Please log in at the remote storage first.")
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to open remote session")
		return s.display(c, sessData, act, "The remote storage is not reachable right now.")
	}

	var groupID uint64
	if st.group != nil {
		groupID = st.group.ID
	}

	orch := folder.NewOrchestrator(storage, s.cfg.OwnCloud.RemoteTimeout)
	outcome := orch.Provision(c.Context(), folder.ResolvePaths(act.ID, groupID), st.pref.Name, recipient)

	switch outcome.Kind {
	case folder.OutcomeShared:
		if err := linkpref.SetLink(s.db, sessData.User.ID, act.ID, outcome.Link); err != nil {
			log.Error().Err(err).Msg("failed to store link")
			return s.display(c, sessData, act, "The folder was shared but storing the link failed.")
		}

		if err := s.sink.Emit(event.LinkGenerated, sessData.User.ID, act.ID); err != nil {
			log.Error().Err(err).Msg("failed to record link event")
		}

		return c.Redirect(s.pagePath(act))
	case folder.OutcomeShareFailed:
		return s.display(c, sessData, act, "Sharing the folder failed: "+outcome.Detail)
	default:
		return s.display(c, sessData, act, "The folder was shared but renaming it failed: "+outcome.Detail)
	}
}

func (s *Service) pagePath(act *models.Activity) string {
	return Path + "/" + strconv.FormatUint(act.ID, 10)
}
