package forms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/locallibrary/internal/entities"
)

func TestInstanceInput_Validate(t *testing.T) {
	t.Run("valid instance passes", func(t *testing.T) {
		in := &InstanceInput{BookID: "1", Imprint: "London Gollancz, 2014.", Status: "Available"}
		assert.True(t, in.Validate().Valid())
	})

	t.Run("missing book is rejected", func(t *testing.T) {
		in := &InstanceInput{Imprint: "London Gollancz, 2014."}

		v := in.Validate()
		require.False(t, v.Valid())
		assert.Equal(t, "Book must be specified", v.Errors[0].Message)
	})

	t.Run("tampered book value is rejected", func(t *testing.T) {
		in := &InstanceInput{BookID: "zzz", Imprint: "London Gollancz, 2014."}

		v := in.Validate()
		require.Len(t, v.Errors, 1)
		assert.Equal(t, FieldError{"book", "Invalid book selection."}, v.Errors[0])
	})

	t.Run("missing imprint is rejected", func(t *testing.T) {
		in := &InstanceInput{BookID: "1"}

		v := in.Validate()
		assert.True(t, v.HasError("imprint"))
	})

	t.Run("malformed due date is rejected", func(t *testing.T) {
		in := &InstanceInput{BookID: "1", Imprint: "Imprint", DueBack: "06/06/2020"}

		v := in.Validate()
		require.Len(t, v.Errors, 1)
		assert.Equal(t, FieldError{"due_back", "Invalid date"}, v.Errors[0])
	})

	t.Run("empty due date is optional", func(t *testing.T) {
		in := &InstanceInput{BookID: "1", Imprint: "Imprint"}
		assert.True(t, in.Validate().Valid())
	})
}

func TestInstanceInput_StatusHelpers(t *testing.T) {
	in := &InstanceInput{BookID: "5", Status: "Loaned"}

	assert.True(t, in.HasBook(5))
	assert.False(t, in.HasBook(4))
	assert.True(t, in.HasStatus(entities.StatusLoaned))
	assert.False(t, in.HasStatus(entities.StatusAvailable))
}

func TestInstanceInput_Instance(t *testing.T) {
	t.Run("builds instance from fields", func(t *testing.T) {
		in := &InstanceInput{
			BookID:  "2",
			Imprint: "New York Tom Doherty Associates, 2016.",
			Status:  "Available",
			DueBack: "2026-09-01",
		}

		instance := in.Instance()
		assert.Equal(t, uint(2), instance.BookID)
		assert.Equal(t, entities.StatusAvailable, instance.Status)
		assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), instance.DueBack)
	})

	t.Run("blank status defaults to maintenance", func(t *testing.T) {
		in := &InstanceInput{BookID: "2", Imprint: "Imprint"}
		assert.Equal(t, entities.StatusMaintenance, in.Instance().Status)
	})

	t.Run("blank due date defaults to now", func(t *testing.T) {
		in := &InstanceInput{BookID: "2", Imprint: "Imprint", Status: "Available"}

		before := time.Now()
		instance := in.Instance()
		after := time.Now()

		assert.False(t, instance.DueBack.Before(before))
		assert.False(t, instance.DueBack.After(after))
	})
}

func TestInputFromInstance(t *testing.T) {
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	instance := &entities.BookInstance{
		BookID:  3,
		Imprint: "London Gollancz, 2014.",
		Status:  entities.StatusLoaned,
		DueBack: due,
	}

	in := InputFromInstance(instance)
	assert.Equal(t, "3", in.BookID)
	assert.Equal(t, "Loaned", in.Status)
	assert.Equal(t, "2026-09-01", in.DueBack)
}
