package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/locallibrary/internal/entities"
	"github.com/openshelf/locallibrary/internal/fetch"
)

// HomeController renders the catalog landing page.
type HomeController struct {
	authors     AuthorStore
	genres      GenreStore
	books       BookStore
	instances   InstanceStore
	auditor     Auditor
	recentLimit int
}

func NewHomeController(authors AuthorStore, genres GenreStore, books BookStore, instances InstanceStore, auditor Auditor, recentLimit int) *HomeController {
	return &HomeController{
		authors:     authors,
		genres:      genres,
		books:       books,
		instances:   instances,
		auditor:     auditor,
		recentLimit: recentLimit,
	}
}

// Index shows the record counts and the latest catalog activity. All
// counts are gathered concurrently.
func (hc *HomeController) Index(c *gin.Context) {
	ops := map[string]fetch.Op{
		"book_count": func(ctx context.Context) (any, error) {
			return hc.books.Count(ctx)
		},
		"instance_count": func(ctx context.Context) (any, error) {
			return hc.instances.Count(ctx)
		},
		"available_count": func(ctx context.Context) (any, error) {
			return hc.instances.CountByStatus(ctx, entities.StatusAvailable)
		},
		"author_count": func(ctx context.Context) (any, error) {
			return hc.authors.Count(ctx)
		},
		"genre_count": func(ctx context.Context) (any, error) {
			return hc.genres.Count(ctx)
		},
	}
	if hc.auditor != nil {
		ops["recent_events"] = func(ctx context.Context) (any, error) {
			return hc.auditor.Recent(ctx, hc.recentLimit)
		}
	}

	results, err := fetch.Parallel(c.Request.Context(), ops)
	if err != nil {
		renderServerError(c, err, "home page")
		return
	}

	render(c, http.StatusOK, "index.html", gin.H{
		"Title":          "Local Library Home",
		"BookCount":      fetch.Get[int64](results, "book_count"),
		"InstanceCount":  fetch.Get[int64](results, "instance_count"),
		"AvailableCount": fetch.Get[int64](results, "available_count"),
		"AuthorCount":    fetch.Get[int64](results, "author_count"),
		"GenreCount":     fetch.Get[int64](results, "genre_count"),
		"RecentEvents":   fetch.Get[[]entities.AuditEvent](results, "recent_events"),
	})
}
