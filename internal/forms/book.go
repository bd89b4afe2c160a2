package forms

import (
	"github.com/openshelf/locallibrary/internal/entities"
)

// BookInput carries the sanitized fields of a submitted book form. The
// reference selections stay raw strings until validation has accepted
// them, so tampered select values surface as field errors rather than
// parse failures.
type BookInput struct {
	Title    string
	AuthorID string
	Summary  string
	ISBN     string
	GenreIDs []string
}

// ParseBook reads and sanitizes the book form fields. The genre
// checkboxes normalize to a list: absent means empty, one box means one
// element.
func ParseBook(r FormSource) *BookInput {
	return &BookInput{
		Title:    Clean(r.PostForm("title")),
		AuthorID: Clean(r.PostForm("author")),
		Summary:  Clean(r.PostForm("summary")),
		ISBN:     Clean(r.PostForm("isbn")),
		GenreIDs: CleanAll(r.PostFormArray("genre")),
	}
}

// InputFromBook pre-fills the form from a stored book.
func InputFromBook(b *entities.Book) *BookInput {
	in := &BookInput{
		Title:    b.Title,
		AuthorID: formatID(b.AuthorID),
		Summary:  b.Summary,
		ISBN:     b.ISBN,
		GenreIDs: make([]string, 0, len(b.Genres)),
	}
	for _, g := range b.Genres {
		in.GenreIDs = append(in.GenreIDs, formatID(g.ID))
	}
	return in
}

// Validate runs every book field check.
func (in *BookInput) Validate() *Validator {
	v := &Validator{}
	v.Check(NotBlank(in.Title), "title", "Title must not be empty.")
	v.Check(NotBlank(in.AuthorID), "author", "Author must not be empty.")
	if in.AuthorID != "" {
		v.Check(ReferenceID(in.AuthorID), "author", "Invalid author selection.")
	}
	v.Check(NotBlank(in.Summary), "summary", "Summary must not be empty.")
	v.Check(NotBlank(in.ISBN), "isbn", "ISBN must not be empty.")
	for _, id := range in.GenreIDs {
		if !ReferenceID(id) {
			v.AddError("genre", "Invalid genre selection.")
			break
		}
	}
	return v
}

// HasAuthor reports whether the author id matches the submitted selection,
// used to mark the select option on re-render.
func (in *BookInput) HasAuthor(id uint) bool {
	return in.AuthorID == formatID(id)
}

// HasGenre reports whether the genre id is among the submitted selections,
// used to mark the checkbox on re-render.
func (in *BookInput) HasGenre(id uint) bool {
	want := formatID(id)
	for _, g := range in.GenreIDs {
		if g == want {
			return true
		}
	}
	return false
}

// AuthorIDValue converts the accepted author selection to an identifier.
func (in *BookInput) AuthorIDValue() uint {
	return parseID(in.AuthorID)
}

// GenreIDValues converts the accepted genre selections to identifiers,
// dropping any that fail to parse.
func (in *BookInput) GenreIDValues() []uint {
	ids := make([]uint, 0, len(in.GenreIDs))
	for _, raw := range in.GenreIDs {
		if id := parseID(raw); id != 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// Book builds the entity candidate from the sanitized input. Genre
// associations are attached by the caller once the referenced rows are
// loaded.
func (in *BookInput) Book() entities.Book {
	return entities.Book{
		Title:    in.Title,
		AuthorID: in.AuthorIDValue(),
		Summary:  in.Summary,
		ISBN:     in.ISBN,
	}
}
