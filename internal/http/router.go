package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/locallibrary/internal/security"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Tag every request before anything else can log or fail
	router.Use(security.RequestID())

	// Apply security headers to all responses
	router.Use(security.Headers())

	if cfg.RateLimit.Enabled {
		router.Use(security.RateLimit(cfg.RateLimit))
	}

	// Apply CSRF protection to the form endpoints
	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(security.CSRF(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Apply session middleware if enabled
	// Session runs after CSRF so session context isn't overwritten by CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.LoadSave())
	}

	// Inject flash and version data for templates. The interface value
	// stays nil unless a session manager is configured.
	var flasher Flasher
	if cfg.SessionManager != nil {
		flasher = cfg.SessionManager
	}
	router.Use(PageContextMiddleware(flasher, cfg.Version, cfg.Debug))

	// Load HTML templates
	tmpl := template.Must(template.ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	// Serve static files
	router.Static("/static", cfg.StaticPath)

	// Create controllers with appropriate interfaces
	health := NewHealthController(cfg.Database, cfg.Version)
	home := NewHomeController(cfg.AuthorStore, cfg.GenreStore, cfg.BookStore, cfg.InstanceStore, cfg.Auditor, cfg.RecentEventsLimit)
	authors := NewAuthorsController(cfg.AuthorStore, cfg.BookStore, cfg.Auditor, flasher)
	genres := NewGenresController(cfg.GenreStore, cfg.BookStore, cfg.Auditor, flasher)
	books := NewBooksController(cfg.BookStore, cfg.AuthorStore, cfg.GenreStore, cfg.InstanceStore, cfg.Auditor, flasher)
	instances := NewInstancesController(cfg.InstanceStore, cfg.BookStore, cfg.Auditor, flasher)

	// Health endpoint
	router.GET("/health", health.Status)

	// The whole site lives under /catalog
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/catalog")
	})

	catalog := router.Group("/catalog")

	catalog.GET("", home.Index)

	catalog.GET("/books", books.List)
	catalog.GET("/book/create", books.CreateForm)
	catalog.POST("/book/create", books.Create)
	catalog.GET("/book/:id", books.Detail)
	catalog.GET("/book/:id/update", books.UpdateForm)
	catalog.POST("/book/:id/update", books.Update)
	catalog.GET("/book/:id/delete", books.DeleteForm)
	catalog.POST("/book/:id/delete", books.Delete)

	catalog.GET("/authors", authors.List)
	catalog.GET("/author/create", authors.CreateForm)
	catalog.POST("/author/create", authors.Create)
	catalog.GET("/author/:id", authors.Detail)
	catalog.GET("/author/:id/update", authors.UpdateForm)
	catalog.POST("/author/:id/update", authors.Update)
	catalog.GET("/author/:id/delete", authors.DeleteForm)
	catalog.POST("/author/:id/delete", authors.Delete)

	catalog.GET("/genres", genres.List)
	catalog.GET("/genre/create", genres.CreateForm)
	catalog.POST("/genre/create", genres.Create)
	catalog.GET("/genre/:id", genres.Detail)
	catalog.GET("/genre/:id/update", genres.UpdateForm)
	catalog.POST("/genre/:id/update", genres.Update)
	catalog.GET("/genre/:id/delete", genres.DeleteForm)
	catalog.POST("/genre/:id/delete", genres.Delete)

	catalog.GET("/bookinstances", instances.List)
	catalog.GET("/bookinstance/create", instances.CreateForm)
	catalog.POST("/bookinstance/create", instances.Create)
	catalog.GET("/bookinstance/:id", instances.Detail)
	catalog.GET("/bookinstance/:id/update", instances.UpdateForm)
	catalog.POST("/bookinstance/:id/update", instances.Update)
	catalog.GET("/bookinstance/:id/delete", instances.DeleteForm)
	catalog.POST("/bookinstance/:id/delete", instances.Delete)

	return router
}
