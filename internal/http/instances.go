package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/locallibrary/internal/database"
	"github.com/openshelf/locallibrary/internal/entities"
	"github.com/openshelf/locallibrary/internal/forms"
	"github.com/openshelf/locallibrary/internal/security"
)

// InstancesController handles the book-copy pages and forms.
type InstancesController struct {
	instances InstanceStore
	books     BookStore
	auditor   Auditor
	flasher   Flasher
}

func NewInstancesController(instances InstanceStore, books BookStore, auditor Auditor, flasher Flasher) *InstancesController {
	return &InstancesController{
		instances: instances,
		books:     books,
		auditor:   auditor,
		flasher:   flasher,
	}
}

// List renders every copy with its book, grouped by book.
func (ic *InstancesController) List(c *gin.Context) {
	instances, err := ic.instances.GetAll(c.Request.Context())
	if err != nil {
		renderServerError(c, err, "copy list")
		return
	}

	render(c, http.StatusOK, "bookinstance_list.html", gin.H{
		"Title":     "Book Instance List",
		"Instances": instances,
	})
}

// Detail renders one copy with its loan state.
func (ic *InstancesController) Detail(c *gin.Context) {
	id, ok := parseIDParam(c, "Book copy")
	if !ok {
		return
	}

	instance, err := ic.instances.GetByID(c.Request.Context(), id)
	if err != nil {
		if database.IsNotFound(err) {
			renderNotFound(c, "Book copy")
			return
		}
		renderServerError(c, err, "copy detail")
		return
	}

	render(c, http.StatusOK, "bookinstance_detail.html", gin.H{
		"Title":    "Copy: " + instance.Book.Title,
		"Instance": instance,
	})
}

// renderForm loads the book choices and renders the copy form with
// them and the status options.
func (ic *InstancesController) renderForm(c *gin.Context, status int, data gin.H) {
	books, err := ic.books.GetAll(c.Request.Context())
	if err != nil {
		renderServerError(c, err, "copy form")
		return
	}

	data["Books"] = books
	data["Statuses"] = entities.InstanceStatuses
	render(c, status, "bookinstance_form.html", data)
}

// CreateForm renders an empty copy form.
func (ic *InstancesController) CreateForm(c *gin.Context) {
	ic.renderForm(c, http.StatusOK, gin.H{
		"Title":  "Create BookInstance",
		"Action": "/catalog/bookinstance/create",
		"Form":   &forms.InstanceInput{},
	})
}

// lookupBook verifies that the submitted book exists, converting a
// missing row into a validation error on the book field.
func (ic *InstancesController) lookupBook(c *gin.Context, bookID uint, v *forms.Validator) (*entities.Book, bool) {
	book, err := ic.books.GetByID(c.Request.Context(), bookID)
	if err != nil {
		if !database.IsNotFound(err) {
			renderServerError(c, err, "copy form")
			return nil, false
		}
		v.AddError("book", "Invalid book selection.")
	}
	return book, true
}

// Create validates the submitted form and stores a new copy. An
// invalid submission re-renders the form with the entered values and
// the validation messages.
func (ic *InstancesController) Create(c *gin.Context) {
	input := forms.ParseInstance(c)
	v := input.Validate()
	instance := input.Instance()

	var book *entities.Book
	if v.Valid() {
		var ok bool
		book, ok = ic.lookupBook(c, instance.BookID, v)
		if !ok {
			return
		}
	}

	if !v.Valid() {
		ic.renderForm(c, http.StatusOK, gin.H{
			"Title":  "Create BookInstance",
			"Action": "/catalog/bookinstance/create",
			"Form":   input,
			"Errors": v.Errors,
		})
		return
	}

	if err := ic.instances.Create(c.Request.Context(), &instance); err != nil {
		renderServerError(c, err, "copy create")
		return
	}

	if ic.auditor != nil {
		ic.auditor.LogCreated("copy", instance.ID, book.Title, security.GetRequestID(c))
	}
	putFlash(c, ic.flasher, "Copy created")
	c.Redirect(http.StatusFound, instance.URL())
}

// UpdateForm renders the copy form pre-filled with stored values.
func (ic *InstancesController) UpdateForm(c *gin.Context) {
	id, ok := parseIDParam(c, "Book copy")
	if !ok {
		return
	}

	instance, err := ic.instances.GetByID(c.Request.Context(), id)
	if err != nil {
		if database.IsNotFound(err) {
			renderNotFound(c, "Book copy")
			return
		}
		renderServerError(c, err, "copy update form")
		return
	}

	ic.renderForm(c, http.StatusOK, gin.H{
		"Title":  "Update BookInstance",
		"Action": fmt.Sprintf("/catalog/bookinstance/%d/update", id),
		"Form":   forms.InputFromInstance(instance),
	})
}

// Update validates the submitted form and overwrites the stored copy.
func (ic *InstancesController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "Book copy")
	if !ok {
		return
	}

	input := forms.ParseInstance(c)
	v := input.Validate()
	instance := input.Instance()

	var book *entities.Book
	if v.Valid() {
		var ok bool
		book, ok = ic.lookupBook(c, instance.BookID, v)
		if !ok {
			return
		}
	}

	if !v.Valid() {
		ic.renderForm(c, http.StatusOK, gin.H{
			"Title":  "Update BookInstance",
			"Action": fmt.Sprintf("/catalog/bookinstance/%d/update", id),
			"Form":   input,
			"Errors": v.Errors,
		})
		return
	}

	instance.ID = id
	if err := ic.instances.Update(c.Request.Context(), &instance); err != nil {
		renderServerError(c, err, "copy update")
		return
	}

	if ic.auditor != nil {
		ic.auditor.LogUpdated("copy", instance.ID, book.Title, security.GetRequestID(c))
	}
	putFlash(c, ic.flasher, "Copy updated")
	c.Redirect(http.StatusFound, instance.URL())
}

// DeleteForm renders the delete confirmation page for a copy.
func (ic *InstancesController) DeleteForm(c *gin.Context) {
	id, ok := parseIDParam(c, "Book copy")
	if !ok {
		return
	}

	instance, err := ic.instances.GetByID(c.Request.Context(), id)
	if err != nil {
		if database.IsNotFound(err) {
			c.Redirect(http.StatusFound, "/catalog/bookinstances")
			return
		}
		renderServerError(c, err, "copy delete form")
		return
	}

	render(c, http.StatusOK, "bookinstance_delete.html", gin.H{
		"Title":    "Delete BookInstance",
		"Instance": instance,
	})
}

// Delete removes the copy. Copies reference nothing else, so the
// delete is never blocked.
func (ic *InstancesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "Book copy")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	instance, err := ic.instances.GetByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			c.Redirect(http.StatusFound, "/catalog/bookinstances")
			return
		}
		renderServerError(c, err, "copy delete")
		return
	}

	if err := ic.instances.Delete(ctx, id); err != nil {
		renderServerError(c, err, "copy delete")
		return
	}

	if ic.auditor != nil {
		ic.auditor.LogDeleted("copy", instance.ID, instance.Book.Title, security.GetRequestID(c))
	}
	putFlash(c, ic.flasher, "Copy deleted")
	c.Redirect(http.StatusFound, "/catalog/bookinstances")
}
