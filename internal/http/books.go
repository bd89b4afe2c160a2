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

// BooksController handles the book pages and forms.
type BooksController struct {
	books     BookStore
	authors   AuthorStore
	genres    GenreStore
	instances InstanceStore
	auditor   Auditor
	flasher   Flasher
}

func NewBooksController(books BookStore, authors AuthorStore, genres GenreStore, instances InstanceStore, auditor Auditor, flasher Flasher) *BooksController {
	return &BooksController{
		books:     books,
		authors:   authors,
		genres:    genres,
		instances: instances,
		auditor:   auditor,
		flasher:   flasher,
	}
}

// List renders every book with its author, ordered by title.
func (bc *BooksController) List(c *gin.Context) {
	books, err := bc.books.GetAll(c.Request.Context())
	if err != nil {
		renderServerError(c, err, "book list")
		return
	}

	render(c, http.StatusOK, "book_list.html", gin.H{
		"Title": "Book List",
		"Books": books,
	})
}

// Detail renders one book together with its copies.
func (bc *BooksController) Detail(c *gin.Context) {
	id, ok := parseIDParam(c, "Book")
	if !ok {
		return
	}

	results, err := fetch.Parallel(c.Request.Context(), map[string]fetch.Op{
		"book": func(ctx context.Context) (any, error) {
			return bc.books.GetByID(ctx, id)
		},
		"instances": func(ctx context.Context) (any, error) {
			return bc.instances.GetByBook(ctx, id)
		},
	})
	if err != nil {
		if database.IsNotFound(err) {
			renderNotFound(c, "Book")
			return
		}
		renderServerError(c, err, "book detail")
		return
	}

	book := fetch.Get[*entities.Book](results, "book")
	render(c, http.StatusOK, "book_detail.html", gin.H{
		"Title":     book.Title,
		"Book":      book,
		"Instances": fetch.Get[[]entities.BookInstance](results, "instances"),
	})
}

// renderForm loads the author and genre choices concurrently and
// renders the book form with them.
func (bc *BooksController) renderForm(c *gin.Context, status int, data gin.H) {
	results, err := fetch.Parallel(c.Request.Context(), map[string]fetch.Op{
		"authors": func(ctx context.Context) (any, error) {
			return bc.authors.GetAll(ctx)
		},
		"genres": func(ctx context.Context) (any, error) {
			return bc.genres.GetAll(ctx)
		},
	})
	if err != nil {
		renderServerError(c, err, "book form")
		return
	}

	data["Authors"] = fetch.Get[[]entities.Author](results, "authors")
	data["Genres"] = fetch.Get[[]entities.Genre](results, "genres")
	render(c, status, "book_form.html", data)
}

// CreateForm renders an empty book form.
func (bc *BooksController) CreateForm(c *gin.Context) {
	bc.renderForm(c, http.StatusOK, gin.H{
		"Title":  "Create Book",
		"Action": "/catalog/book/create",
		"Form":   &forms.BookInput{},
	})
}

// resolveReferences verifies that the submitted author and genres
// exist, collecting validation errors for tampered selections. The
// loaded genre rows are returned for association writes.
func (bc *BooksController) resolveReferences(ctx context.Context, input *forms.BookInput, v *forms.Validator) ([]entities.Genre, error) {
	genres, err := bc.genres.GetByIDs(ctx, input.GenreIDValues())
	if err != nil {
		return nil, err
	}
	if len(genres) != len(input.GenreIDs) {
		v.AddError("genre", "Invalid genre selection.")
	}

	if _, err := bc.authors.GetByID(ctx, input.AuthorIDValue()); err != nil {
		if !database.IsNotFound(err) {
			return nil, err
		}
		v.AddError("author", "Invalid author selection.")
	}

	return genres, nil
}

// Create validates the submitted form and stores a new book with its
// genre associations. An invalid submission re-renders the form with
// the entered values, the marked selections and the validation
// messages.
func (bc *BooksController) Create(c *gin.Context) {
	ctx := c.Request.Context()

	input := forms.ParseBook(c)
	v := input.Validate()

	var genres []entities.Genre
	if v.Valid() {
		var err error
		genres, err = bc.resolveReferences(ctx, input, v)
		if err != nil {
			renderServerError(c, err, "book create")
			return
		}
	}

	if !v.Valid() {
		bc.renderForm(c, http.StatusOK, gin.H{
			"Title":  "Create Book",
			"Action": "/catalog/book/create",
			"Form":   input,
			"Errors": v.Errors,
		})
		return
	}

	book := input.Book()
	book.Genres = genres
	if err := bc.books.Create(ctx, &book); err != nil {
		renderServerError(c, err, "book create")
		return
	}

	if bc.auditor != nil {
		bc.auditor.LogCreated("book", book.ID, book.Title, security.GetRequestID(c))
	}
	putFlash(c, bc.flasher, "Book created")
	c.Redirect(http.StatusFound, book.URL())
}

// UpdateForm renders the book form pre-filled with stored values.
func (bc *BooksController) UpdateForm(c *gin.Context) {
	id, ok := parseIDParam(c, "Book")
	if !ok {
		return
	}

	book, err := bc.books.GetByID(c.Request.Context(), id)
	if err != nil {
		if database.IsNotFound(err) {
			renderNotFound(c, "Book")
			return
		}
		renderServerError(c, err, "book update form")
		return
	}

	bc.renderForm(c, http.StatusOK, gin.H{
		"Title":  "Update Book",
		"Action": fmt.Sprintf("/catalog/book/%d/update", id),
		"Form":   forms.InputFromBook(book),
	})
}

// Update validates the submitted form and overwrites the stored book,
// replacing its genre associations with the submitted set.
func (bc *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "Book")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	input := forms.ParseBook(c)
	v := input.Validate()

	var genres []entities.Genre
	if v.Valid() {
		var err error
		genres, err = bc.resolveReferences(ctx, input, v)
		if err != nil {
			renderServerError(c, err, "book update")
			return
		}
	}

	if !v.Valid() {
		bc.renderForm(c, http.StatusOK, gin.H{
			"Title":  "Update Book",
			"Action": fmt.Sprintf("/catalog/book/%d/update", id),
			"Form":   input,
			"Errors": v.Errors,
		})
		return
	}

	book := input.Book()
	book.ID = id
	book.Genres = genres
	if err := bc.books.Update(ctx, &book); err != nil {
		renderServerError(c, err, "book update")
		return
	}

	if bc.auditor != nil {
		bc.auditor.LogUpdated("book", book.ID, book.Title, security.GetRequestID(c))
	}
	putFlash(c, bc.flasher, "Book updated")
	c.Redirect(http.StatusFound, book.URL())
}

// DeleteForm renders the delete confirmation page. When copies of the
// book still exist, the page lists them instead of offering the
// delete button.
func (bc *BooksController) DeleteForm(c *gin.Context) {
	id, ok := parseIDParam(c, "Book")
	if !ok {
		return
	}

	results, err := fetch.Parallel(c.Request.Context(), map[string]fetch.Op{
		"book": func(ctx context.Context) (any, error) {
			return bc.books.GetByID(ctx, id)
		},
		"instances": func(ctx context.Context) (any, error) {
			return bc.instances.GetByBook(ctx, id)
		},
	})
	if err != nil {
		if database.IsNotFound(err) {
			c.Redirect(http.StatusFound, "/catalog/books")
			return
		}
		renderServerError(c, err, "book delete form")
		return
	}

	render(c, http.StatusOK, "book_delete.html", gin.H{
		"Title":     "Delete Book",
		"Book":      fetch.Get[*entities.Book](results, "book"),
		"Instances": fetch.Get[[]entities.BookInstance](results, "instances"),
	})
}

// Delete removes the book unless copies still reference it, in which
// case the confirmation page is shown again with the blocking copies.
func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "Book")
	if !ok {
		return
	}

	results, err := fetch.Parallel(c.Request.Context(), map[string]fetch.Op{
		"book": func(ctx context.Context) (any, error) {
			return bc.books.GetByID(ctx, id)
		},
		"instances": func(ctx context.Context) (any, error) {
			return bc.instances.GetByBook(ctx, id)
		},
	})
	if err != nil {
		if database.IsNotFound(err) {
			c.Redirect(http.StatusFound, "/catalog/books")
			return
		}
		renderServerError(c, err, "book delete")
		return
	}

	book := fetch.Get[*entities.Book](results, "book")
	instances := fetch.Get[[]entities.BookInstance](results, "instances")
	if len(instances) > 0 {
		if bc.auditor != nil {
			bc.auditor.LogDeleteBlocked("book", book.ID, book.Title, security.GetRequestID(c))
		}
		render(c, http.StatusOK, "book_delete.html", gin.H{
			"Title":     "Delete Book",
			"Book":      book,
			"Instances": instances,
		})
		return
	}

	if err := bc.books.Delete(c.Request.Context(), id); err != nil {
		renderServerError(c, err, "book delete")
		return
	}

	if bc.auditor != nil {
		bc.auditor.LogDeleted("book", book.ID, book.Title, security.GetRequestID(c))
	}
	putFlash(c, bc.flasher, "Book deleted")
	c.Redirect(http.StatusFound, "/catalog/books")
}
