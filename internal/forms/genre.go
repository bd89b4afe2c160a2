package forms

import (
	"github.com/openshelf/locallibrary/internal/entities"
)

// GenreInput carries the sanitized field of a submitted genre form.
type GenreInput struct {
	Name string
}

// ParseGenre reads and sanitizes the genre form field.
func ParseGenre(r FormSource) *GenreInput {
	return &GenreInput{Name: Clean(r.PostForm("name"))}
}

// InputFromGenre pre-fills the form from a stored genre.
func InputFromGenre(g *entities.Genre) *GenreInput {
	return &GenreInput{Name: g.Name}
}

// Validate applies the single genre rule: a name must be present.
func (in *GenreInput) Validate() *Validator {
	v := &Validator{}
	v.Check(NotBlank(in.Name), "name", "Genre name required")
	return v
}

// Genre builds the entity candidate from the sanitized input.
func (in *GenreInput) Genre() entities.Genre {
	return entities.Genre{Name: in.Name}
}
