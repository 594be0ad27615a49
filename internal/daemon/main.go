// Package daemon assembles and runs the whole service: database, remote
// storage client, folder-creation worker and the web frontend.
package daemon

import (
	"context"
	"fmt"
	"strconv"

	sessionmysql "github.com/gofiber/storage/mysql"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Dagefoerde/collaborativefolders/internal/config"
	"github.com/Dagefoerde/collaborativefolders/internal/db/dsn"
	"github.com/Dagefoerde/collaborativefolders/internal/db/models"
	"github.com/Dagefoerde/collaborativefolders/internal/owncloud"
	"github.com/Dagefoerde/collaborativefolders/internal/task"
	"github.com/Dagefoerde/collaborativefolders/internal/web"
	"github.com/Dagefoerde/collaborativefolders/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
	worker     *task.Worker
	stopWorker context.CancelFunc
}

// Start runs the worker and the web service until a shutdown signal arrives.
func (d *Daemon) Start() error {
	workerCtx, cancel := context.WithCancel(context.Background())
	d.stopWorker = cancel

	go d.worker.Run(workerCtx)

	go func() {
		d.webService.WaitShutdown()
		cancel()
	}()

	return d.webService.Start(":" + strconv.Itoa(d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	dbDriver := gormmysql.Open(dsn.Create(cfg)) // open db with gorm mysql driver

	db, err := gorm.Open(dbDriver, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Activity{},
		&models.Group{},
		&models.UserGroup{},
		&models.Capability{},
		&models.LinkPreference{},
		&models.PendingTask{},
		&models.Event{},
		&models.RemoteToken{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	seed(cfg, db)

	// Initialize fiber session store
	sessionStorage := sessionmysql.New(sessionmysql.Config{
		ConnectionURI: dsn.Create(cfg),
		Table:         "sessions",
	})

	session.Init(sessionStorage)

	client := owncloud.NewClient(&cfg.OwnCloud)

	identity, err := owncloud.NewIdentity(context.Background(), &cfg.OwnCloud, client, db)
	if err != nil {
		return nil, fmt.Errorf("failed to set up remote identity: %w", err)
	}

	log.Info().
		Str("remote", cfg.OwnCloud.BaseURL).
		Msg("remote storage configured")

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db, identity),
		worker:     task.NewWorker(db, client, cfg.Provisioning.WorkerInterval),
	}, nil
}
