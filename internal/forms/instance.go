package forms

import (
	"time"

	"github.com/openshelf/locallibrary/internal/entities"
)

// InstanceInput carries the sanitized fields of a submitted book-copy form.
type InstanceInput struct {
	BookID  string
	Imprint string
	Status  string
	DueBack string
}

// ParseInstance reads and sanitizes the book-copy form fields.
func ParseInstance(r FormSource) *InstanceInput {
	return &InstanceInput{
		BookID:  Clean(r.PostForm("book")),
		Imprint: Clean(r.PostForm("imprint")),
		Status:  Clean(r.PostForm("status")),
		DueBack: Clean(r.PostForm("due_back")),
	}
}

// InputFromInstance pre-fills the form from a stored copy.
func InputFromInstance(bi *entities.BookInstance) *InstanceInput {
	return &InstanceInput{
		BookID:  formatID(bi.BookID),
		Imprint: bi.Imprint,
		Status:  string(bi.Status),
		DueBack: bi.DueBackISO(),
	}
}

// Validate runs every book-copy field check. Status is stored as
// submitted; the form only offers the known values.
func (in *InstanceInput) Validate() *Validator {
	v := &Validator{}
	v.Check(NotBlank(in.BookID), "book", "Book must be specified")
	if in.BookID != "" {
		v.Check(ReferenceID(in.BookID), "book", "Invalid book selection.")
	}
	v.Check(NotBlank(in.Imprint), "imprint", "Imprint must be specified")
	if in.DueBack != "" {
		v.Check(ISODate(in.DueBack), "due_back", "Invalid date")
	}
	return v
}

// HasBook reports whether the book id matches the submitted selection.
func (in *InstanceInput) HasBook(id uint) bool {
	return in.BookID == formatID(id)
}

// HasStatus reports whether the given status is the submitted one.
func (in *InstanceInput) HasStatus(s entities.InstanceStatus) bool {
	return in.Status == string(s)
}

// Instance builds the entity candidate from the sanitized input. A blank
// due date defaults to the creation moment, and a blank status falls back
// to Maintenance.
func (in *InstanceInput) Instance() entities.BookInstance {
	status := entities.InstanceStatus(in.Status)
	if status == "" {
		status = entities.StatusMaintenance
	}

	dueBack := time.Now()
	if t := ParseDate(in.DueBack); t != nil {
		dueBack = *t
	}

	return entities.BookInstance{
		BookID:  parseID(in.BookID),
		Imprint: in.Imprint,
		Status:  status,
		DueBack: dueBack,
	}
}
