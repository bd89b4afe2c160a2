package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/locallibrary/internal/database"
	"github.com/openshelf/locallibrary/internal/entities"
	"github.com/openshelf/locallibrary/internal/fetch"
	"github.com/openshelf/locallibrary/internal/forms"
	"github.com/openshelf/locallibrary/internal/security"
)

// GenresController handles the genre pages and forms.
type GenresController struct {
	genres  GenreStore
	books   BookStore
	auditor Auditor
	flasher Flasher
}

func NewGenresController(genres GenreStore, books BookStore, auditor Auditor, flasher Flasher) *GenresController {
	return &GenresController{
		genres:  genres,
		books:   books,
		auditor: auditor,
		flasher: flasher,
	}
}

// List renders every genre, ordered by name.
func (gc *GenresController) List(c *gin.Context) {
	genres, err := gc.genres.GetAll(c.Request.Context())
	if err != nil {
		renderServerError(c, err, "genre list")
		return
	}

	render(c, http.StatusOK, "genre_list.html", gin.H{
		"Title":  "Genre List",
		"Genres": genres,
	})
}

// Detail renders one genre together with the books tagged with it.
func (gc *GenresController) Detail(c *gin.Context) {
	id, ok := parseIDParam(c, "Genre")
	if !ok {
		return
	}

	results, err := fetch.Parallel(c.Request.Context(), map[string]fetch.Op{
		"genre": func(ctx context.Context) (any, error) {
			return gc.genres.GetByID(ctx, id)
		},
		"books": func(ctx context.Context) (any, error) {
			return gc.books.GetByGenre(ctx, id)
		},
	})
	if err != nil {
		if database.IsNotFound(err) {
			renderNotFound(c, "Genre")
			return
		}
		renderServerError(c, err, "genre detail")
		return
	}

	genre := fetch.Get[*entities.Genre](results, "genre")
	render(c, http.StatusOK, "genre_detail.html", gin.H{
		"Title": genre.Name,
		"Genre": genre,
		"Books": fetch.Get[[]entities.Book](results, "books"),
	})
}

// CreateForm renders an empty genre form.
func (gc *GenresController) CreateForm(c *gin.Context) {
	render(c, http.StatusOK, "genre_form.html", gin.H{
		"Title":  "Create Genre",
		"Action": "/catalog/genre/create",
		"Form":   &forms.GenreInput{},
	})
}

// Create validates the submitted form and stores a new genre. When a
// genre with the same name already exists (ignoring case), no
// duplicate is written; the client is sent to the existing record.
func (gc *GenresController) Create(c *gin.Context) {
	input := forms.ParseGenre(c)
	if v := input.Validate(); !v.Valid() {
		render(c, http.StatusOK, "genre_form.html", gin.H{
			"Title":  "Create Genre",
			"Action": "/catalog/genre/create",
			"Form":   input,
			"Errors": v.Errors,
		})
		return
	}

	ctx := c.Request.Context()
	existing, err := gc.genres.GetByName(ctx, input.Name)
	if err == nil {
		c.Redirect(http.StatusFound, existing.URL())
		return
	}
	if !database.IsNotFound(err) {
		renderServerError(c, err, "genre create")
		return
	}

	genre := input.Genre()
	if err := gc.genres.Create(ctx, &genre); err != nil {
		renderServerError(c, err, "genre create")
		return
	}

	if gc.auditor != nil {
		gc.auditor.LogCreated("genre", genre.ID, genre.Name, security.GetRequestID(c))
	}
	putFlash(c, gc.flasher, "Genre created")
	c.Redirect(http.StatusFound, genre.URL())
}

// UpdateForm renders the genre form pre-filled with the stored name.
func (gc *GenresController) UpdateForm(c *gin.Context) {
	id, ok := parseIDParam(c, "Genre")
	if !ok {
		return
	}

	genre, err := gc.genres.GetByID(c.Request.Context(), id)
	if err != nil {
		if database.IsNotFound(err) {
			renderNotFound(c, "Genre")
			return
		}
		renderServerError(c, err, "genre update form")
		return
	}

	render(c, http.StatusOK, "genre_form.html", gin.H{
		"Title":  "Update Genre",
		"Action": fmt.Sprintf("/catalog/genre/%d/update", id),
		"Form":   forms.InputFromGenre(genre),
	})
}

// Update validates the submitted form and overwrites the stored genre.
func (gc *GenresController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "Genre")
	if !ok {
		return
	}

	input := forms.ParseGenre(c)
	if v := input.Validate(); !v.Valid() {
		render(c, http.StatusOK, "genre_form.html", gin.H{
			"Title":  "Update Genre",
			"Action": fmt.Sprintf("/catalog/genre/%d/update", id),
			"Form":   input,
			"Errors": v.Errors,
		})
		return
	}

	genre := input.Genre()
	genre.ID = id
	if err := gc.genres.Update(c.Request.Context(), &genre); err != nil {
		renderServerError(c, err, "genre update")
		return
	}

	if gc.auditor != nil {
		gc.auditor.LogUpdated("genre", genre.ID, genre.Name, security.GetRequestID(c))
	}
	putFlash(c, gc.flasher, "Genre updated")
	c.Redirect(http.StatusFound, genre.URL())
}

// DeleteForm renders the delete confirmation page. When books are
// still tagged with the genre, the page lists them instead of
// offering the delete button.
func (gc *GenresController) DeleteForm(c *gin.Context) {
	id, ok := parseIDParam(c, "Genre")
	if !ok {
		return
	}

	results, err := fetch.Parallel(c.Request.Context(), map[string]fetch.Op{
		"genre": func(ctx context.Context) (any, error) {
			return gc.genres.GetByID(ctx, id)
		},
		"books": func(ctx context.Context) (any, error) {
			return gc.books.GetByGenre(ctx, id)
		},
	})
	if err != nil {
		if database.IsNotFound(err) {
			c.Redirect(http.StatusFound, "/catalog/genres")
			return
		}
		renderServerError(c, err, "genre delete form")
		return
	}

	render(c, http.StatusOK, "genre_delete.html", gin.H{
		"Title": "Delete Genre",
		"Genre": fetch.Get[*entities.Genre](results, "genre"),
		"Books": fetch.Get[[]entities.Book](results, "books"),
	})
}

// Delete removes the genre unless books still carry it, in which case
// the confirmation page is shown again with the blocking books.
func (gc *GenresController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "Genre")
	if !ok {
		return
	}

	results, err := fetch.Parallel(c.Request.Context(), map[string]fetch.Op{
		"genre": func(ctx context.Context) (any, error) {
			return gc.genres.GetByID(ctx, id)
		},
		"books": func(ctx context.Context) (any, error) {
			return gc.books.GetByGenre(ctx, id)
		},
	})
	if err != nil {
		if database.IsNotFound(err) {
			c.Redirect(http.StatusFound, "/catalog/genres")
			return
		}
		renderServerError(c, err, "genre delete")
		return
	}

	genre := fetch.Get[*entities.Genre](results, "genre")
	books := fetch.Get[[]entities.Book](results, "books")
	if len(books) > 0 {
		if gc.auditor != nil {
			gc.auditor.LogDeleteBlocked("genre", genre.ID, genre.Name, security.GetRequestID(c))
		}
		render(c, http.StatusOK, "genre_delete.html", gin.H{
			"Title": "Delete Genre",
			"Genre": genre,
			"Books": books,
		})
		return
	}

	if err := gc.genres.Delete(c.Request.Context(), id); err != nil {
		renderServerError(c, err, "genre delete")
		return
	}

	if gc.auditor != nil {
		gc.auditor.LogDeleted("genre", genre.ID, genre.Name, security.GetRequestID(c))
	}
	putFlash(c, gc.flasher, "Genre deleted")
	c.Redirect(http.StatusFound, "/catalog/genres")
}
