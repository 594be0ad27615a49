package config

import (
	"time"

	"github.com/Dagefoerde/collaborativefolders/internal/logger"
)

const (
	defaultRemoteTimeout  = 30 * time.Second
	defaultWorkerInterval = time.Minute
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode      bool // enable dev mode for development
	DB           DB
	Log          logger.Log
	Title        string
	Webserver    Webserver
	OwnCloud     OwnCloud
	Provisioning Provisioning
}

// DB implements database connection settings.
type DB struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	Extras   string // extra dsn parameters, e.g. parseTime=true
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath      bool    // use clean path middleware to allow multi slash requests
	DisableRecover bool    // disable recover middleware
	Domain         string  // domain name for the webserver
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	Session        Session // session settings
}

// OwnCloud implements the remote storage service settings.
type OwnCloud struct {
	// BaseURL is the root URL of the remote storage service.
	BaseURL string
	// WebDAVRoot is the WebDAV path below BaseURL (default remote.php/webdav).
	WebDAVRoot string
	// ClientID and ClientSecret identify the OAuth2 app used for the
	// acting-user login flow.
	ClientID     string
	ClientSecret string
	// RedirectURL is the callback URL for the acting-user login flow.
	RedirectURL string
	// TechnicalUser and TechnicalPassword authenticate the technical account
	// that owns the provisioned folders and issues the shares.
	TechnicalUser     string
	TechnicalPassword string
	// RemoteTimeout bounds every single remote call.
	RemoteTimeout time.Duration
}

// Provisioning implements folder-creation worker settings.
type Provisioning struct {
	// WorkerInterval is the poll interval of the folder-creation worker.
	WorkerInterval time.Duration
}
