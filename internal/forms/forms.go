// Package forms reads, sanitizes, and validates submitted catalog forms.
// It is independent of the store: each input type produces a candidate
// entity only after its checks pass.
package forms

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// FieldError ties a validation message to the form field that caused it.
type FieldError struct {
	Field   string
	Message string
}

// Validator accumulates field errors in the order the checks run, so a
// re-rendered form lists them the same way every time.
type Validator struct {
	Errors []FieldError
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	v.Errors = append(v.Errors, FieldError{Field: field, Message: message})
}

// Check records message against field when ok is false.
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// HasError reports whether any recorded error is tagged with field.
func (v *Validator) HasError(field string) bool {
	for _, e := range v.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

// FormSource is the subset of request accessors needed to read submitted
// values. *gin.Context satisfies it.
type FormSource interface {
	PostForm(key string) string
	PostFormArray(key string) []string
}

var alphanumericRx = regexp.MustCompile(`^[0-9A-Za-z]+$`)

// Clean trims surrounding whitespace and escapes HTML metacharacters, so
// stored values are safe to echo back into markup.
func Clean(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// CleanAll sanitizes every value of a multi-select field. Absent fields
// come through as an empty, non-nil list.
func CleanAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, s := range values {
		out = append(out, Clean(s))
	}
	return out
}

func NotBlank(s string) bool {
	return s != ""
}

func MaxChars(s string, n int) bool {
	return utf8.RuneCountInString(s) <= n
}

func Alphanumeric(s string) bool {
	return alphanumericRx.MatchString(s)
}

// ISODate reports whether s parses as a calendar date (2006-01-02).
func ISODate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ReferenceID reports whether s looks like a store identifier submitted
// by a select control.
func ReferenceID(s string) bool {
	_, err := strconv.ParseUint(s, 10, 32)
	return err == nil
}

// ParseDate converts an ISO date string to a time, nil when s is empty
// or malformed.
func ParseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func parseID(s string) uint {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
