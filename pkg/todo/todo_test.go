package todo_test

import (
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timada-org/todo/pkg/todo"
)

func TestCreateInputValidate(t *testing.T) {
	t.Run("trims", func(t *testing.T) {
		in := todo.CreateInput{Title: "  Buy milk ", Description: " 2 liters\n"}
		require.NoError(t, in.Validate())
		assert.Equal(t, "Buy milk", in.Title)
		assert.Equal(t, "2 liters", in.Description)
	})

	t.Run("empty title", func(t *testing.T) {
		in := todo.CreateInput{Title: "   "}
		err := in.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.NotValid))
	})
}

func TestUpdateInput(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	base := todo.Todo{ID: "a", Title: "Buy milk", Description: "2 liters", CreatedAt: created}

	t.Run("empty", func(t *testing.T) {
		assert.True(t, todo.UpdateInput{}.Empty())
		assert.False(t, todo.UpdateInput{Completed: todo.Bool(false)}.Empty())
	})

	t.Run("completed only keeps the rest", func(t *testing.T) {
		got := todo.UpdateInput{Completed: todo.Bool(true)}.Apply(base)
		assert.Equal(t, "a", got.ID)
		assert.Equal(t, "Buy milk", got.Title)
		assert.Equal(t, "2 liters", got.Description)
		assert.Equal(t, created, got.CreatedAt)
		assert.True(t, got.Completed)
	})

	t.Run("clear description", func(t *testing.T) {
		got := todo.UpdateInput{Description: todo.String("")}.Apply(base)
		assert.Equal(t, "", got.Description)
	})

	t.Run("blank title rejected", func(t *testing.T) {
		in := todo.UpdateInput{Title: todo.String(" ")}
		assert.True(t, errors.Is(in.Validate(), errors.NotValid))
	})

	t.Run("title trimmed", func(t *testing.T) {
		in := todo.UpdateInput{Title: todo.String(" Eggs ")}
		require.NoError(t, in.Validate())
		assert.Equal(t, "Eggs", *in.Title)
	})
}
