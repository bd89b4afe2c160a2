package http

import (
	"github.com/openshelf/locallibrary/internal/database"
	"github.com/openshelf/locallibrary/internal/security"
	"github.com/openshelf/locallibrary/internal/sessions"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces the long parameter list
// in NewRouter for better maintainability.
type RouterConfig struct {
	// Catalog stores
	AuthorStore   AuthorStore
	GenreStore    GenreStore
	BookStore     BookStore
	InstanceStore InstanceStore

	// Core dependencies
	Database *database.Database
	Auditor  Auditor

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Session-backed flash messages (optional)
	SessionManager *sessions.Manager

	// CSRF protection; empty secret disables it
	CSRFSecret    []byte
	SecureCookies bool

	// Per-client rate limiting
	RateLimit security.RateLimitConfig

	// Application info
	Version string
	Debug   bool

	// Number of audit events shown on the home page
	RecentEventsLimit int
}
