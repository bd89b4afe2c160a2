package forms

import (
	"github.com/openshelf/locallibrary/internal/entities"
)

// AuthorInput carries the sanitized fields of a submitted author form.
// The date fields stay strings so a failed submission re-renders exactly
// what the user typed.
type AuthorInput struct {
	FirstName   string
	FamilyName  string
	DateOfBirth string
	DateOfDeath string
}

// ParseAuthor reads and sanitizes the author form fields.
func ParseAuthor(r FormSource) *AuthorInput {
	return &AuthorInput{
		FirstName:   Clean(r.PostForm("first_name")),
		FamilyName:  Clean(r.PostForm("family_name")),
		DateOfBirth: Clean(r.PostForm("date_of_birth")),
		DateOfDeath: Clean(r.PostForm("date_of_death")),
	}
}

// InputFromAuthor pre-fills the form from a stored author.
func InputFromAuthor(a *entities.Author) *AuthorInput {
	return &AuthorInput{
		FirstName:   a.FirstName,
		FamilyName:  a.FamilyName,
		DateOfBirth: a.DateOfBirthISO(),
		DateOfDeath: a.DateOfDeathISO(),
	}
}

// Validate runs every author field check; the name checks are independent,
// so a single field can collect more than one error.
func (in *AuthorInput) Validate() *Validator {
	v := &Validator{}
	v.Check(NotBlank(in.FirstName), "first_name", "First name must be specified.")
	v.Check(MaxChars(in.FirstName, 100), "first_name", "First name must be at most 100 characters.")
	v.Check(Alphanumeric(in.FirstName), "first_name", "First name has non-alphanumeric characters.")
	v.Check(NotBlank(in.FamilyName), "family_name", "Family name must be specified.")
	v.Check(MaxChars(in.FamilyName, 100), "family_name", "Family name must be at most 100 characters.")
	v.Check(Alphanumeric(in.FamilyName), "family_name", "Family name has non-alphanumeric characters.")
	if in.DateOfBirth != "" {
		v.Check(ISODate(in.DateOfBirth), "date_of_birth", "Invalid date of birth")
	}
	if in.DateOfDeath != "" {
		v.Check(ISODate(in.DateOfDeath), "date_of_death", "Invalid date of death")
	}
	return v
}

// Author builds the entity candidate from the sanitized input. Empty date
// fields become absent dates.
func (in *AuthorInput) Author() entities.Author {
	return entities.Author{
		FirstName:   in.FirstName,
		FamilyName:  in.FamilyName,
		DateOfBirth: ParseDate(in.DateOfBirth),
		DateOfDeath: ParseDate(in.DateOfDeath),
	}
}
