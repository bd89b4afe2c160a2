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

// AuthorsController handles the author pages and forms.
type AuthorsController struct {
	authors AuthorStore
	books   BookStore
	auditor Auditor
	flasher Flasher
}

func NewAuthorsController(authors AuthorStore, books BookStore, auditor Auditor, flasher Flasher) *AuthorsController {
	return &AuthorsController{
		authors: authors,
		books:   books,
		auditor: auditor,
		flasher: flasher,
	}
}

// List renders every author, ordered by family name.
func (ac *AuthorsController) List(c *gin.Context) {
	authors, err := ac.authors.GetAll(c.Request.Context())
	if err != nil {
		renderServerError(c, err, "author list")
		return
	}

	render(c, http.StatusOK, "author_list.html", gin.H{
		"Title":   "Author List",
		"Authors": authors,
	})
}

// Detail renders one author together with their books.
func (ac *AuthorsController) Detail(c *gin.Context) {
	id, ok := parseIDParam(c, "Author")
	if !ok {
		return
	}

	results, err := fetch.Parallel(c.Request.Context(), map[string]fetch.Op{
		"author": func(ctx context.Context) (any, error) {
			return ac.authors.GetByID(ctx, id)
		},
		"books": func(ctx context.Context) (any, error) {
			return ac.books.GetByAuthor(ctx, id)
		},
	})
	if err != nil {
		if database.IsNotFound(err) {
			renderNotFound(c, "Author")
			return
		}
		renderServerError(c, err, "author detail")
		return
	}

	author := fetch.Get[*entities.Author](results, "author")
	render(c, http.StatusOK, "author_detail.html", gin.H{
		"Title":  author.Name(),
		"Author": author,
		"Books":  fetch.Get[[]entities.Book](results, "books"),
	})
}

// CreateForm renders an empty author form.
func (ac *AuthorsController) CreateForm(c *gin.Context) {
	render(c, http.StatusOK, "author_form.html", gin.H{
		"Title":  "Create Author",
		"Action": "/catalog/author/create",
		"Form":   &forms.AuthorInput{},
	})
}

// Create validates the submitted form and stores a new author. An
// invalid submission re-renders the form with the entered values and
// the validation messages.
func (ac *AuthorsController) Create(c *gin.Context) {
	input := forms.ParseAuthor(c)
	if v := input.Validate(); !v.Valid() {
		render(c, http.StatusOK, "author_form.html", gin.H{
			"Title":  "Create Author",
			"Action": "/catalog/author/create",
			"Form":   input,
			"Errors": v.Errors,
		})
		return
	}

	author := input.Author()
	if err := ac.authors.Create(c.Request.Context(), &author); err != nil {
		renderServerError(c, err, "author create")
		return
	}

	if ac.auditor != nil {
		ac.auditor.LogCreated("author", author.ID, author.Name(), security.GetRequestID(c))
	}
	putFlash(c, ac.flasher, "Author created")
	c.Redirect(http.StatusFound, author.URL())
}

// UpdateForm renders the author form pre-filled with stored values.
func (ac *AuthorsController) UpdateForm(c *gin.Context) {
	id, ok := parseIDParam(c, "Author")
	if !ok {
		return
	}

	author, err := ac.authors.GetByID(c.Request.Context(), id)
	if err != nil {
		if database.IsNotFound(err) {
			renderNotFound(c, "Author")
			return
		}
		renderServerError(c, err, "author update form")
		return
	}

	render(c, http.StatusOK, "author_form.html", gin.H{
		"Title":  "Update Author",
		"Action": fmt.Sprintf("/catalog/author/%d/update", id),
		"Form":   forms.InputFromAuthor(author),
	})
}

// Update validates the submitted form and overwrites the stored author.
func (ac *AuthorsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "Author")
	if !ok {
		return
	}

	input := forms.ParseAuthor(c)
	if v := input.Validate(); !v.Valid() {
		render(c, http.StatusOK, "author_form.html", gin.H{
			"Title":  "Update Author",
			"Action": fmt.Sprintf("/catalog/author/%d/update", id),
			"Form":   input,
			"Errors": v.Errors,
		})
		return
	}

	author := input.Author()
	author.ID = id
	if err := ac.authors.Update(c.Request.Context(), &author); err != nil {
		renderServerError(c, err, "author update")
		return
	}

	if ac.auditor != nil {
		ac.auditor.LogUpdated("author", author.ID, author.Name(), security.GetRequestID(c))
	}
	putFlash(c, ac.flasher, "Author updated")
	c.Redirect(http.StatusFound, author.URL())
}

// DeleteForm renders the delete confirmation page. When the author
// still has books, the page lists them instead of offering the delete
// button.
func (ac *AuthorsController) DeleteForm(c *gin.Context) {
	id, ok := parseIDParam(c, "Author")
	if !ok {
		return
	}

	results, err := fetch.Parallel(c.Request.Context(), map[string]fetch.Op{
		"author": func(ctx context.Context) (any, error) {
			return ac.authors.GetByID(ctx, id)
		},
		"books": func(ctx context.Context) (any, error) {
			return ac.books.GetByAuthor(ctx, id)
		},
	})
	if err != nil {
		if database.IsNotFound(err) {
			c.Redirect(http.StatusFound, "/catalog/authors")
			return
		}
		renderServerError(c, err, "author delete form")
		return
	}

	render(c, http.StatusOK, "author_delete.html", gin.H{
		"Title":  "Delete Author",
		"Author": fetch.Get[*entities.Author](results, "author"),
		"Books":  fetch.Get[[]entities.Book](results, "books"),
	})
}

// Delete removes the author unless books still reference them, in
// which case the confirmation page is shown again with the blocking
// books.
func (ac *AuthorsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "Author")
	if !ok {
		return
	}

	results, err := fetch.Parallel(c.Request.Context(), map[string]fetch.Op{
		"author": func(ctx context.Context) (any, error) {
			return ac.authors.GetByID(ctx, id)
		},
		"books": func(ctx context.Context) (any, error) {
			return ac.books.GetByAuthor(ctx, id)
		},
	})
	if err != nil {
		if database.IsNotFound(err) {
			c.Redirect(http.StatusFound, "/catalog/authors")
			return
		}
		renderServerError(c, err, "author delete")
		return
	}

	author := fetch.Get[*entities.Author](results, "author")
	books := fetch.Get[[]entities.Book](results, "books")
	if len(books) > 0 {
		if ac.auditor != nil {
			ac.auditor.LogDeleteBlocked("author", author.ID, author.Name(), security.GetRequestID(c))
		}
		render(c, http.StatusOK, "author_delete.html", gin.H{
			"Title":  "Delete Author",
			"Author": author,
			"Books":  books,
		})
		return
	}

	if err := ac.authors.Delete(c.Request.Context(), id); err != nil {
		renderServerError(c, err, "author delete")
		return
	}

	if ac.auditor != nil {
		ac.auditor.LogDeleted("author", author.ID, author.Name(), security.GetRequestID(c))
	}
	putFlash(c, ac.flasher, "Author deleted")
	c.Redirect(http.StatusFound, "/catalog/authors")
}
