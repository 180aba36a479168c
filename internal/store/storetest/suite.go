// Package storetest checks a todo.Store implementation against the store
// contract. Each store package runs it from its own tests.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/juju/clock"
	"github.com/juju/clock/testclock"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timada-org/todo/pkg/todo"
)

// Factory builds an empty store reading time from c.
type Factory func(t *testing.T, c clock.Clock) todo.Store

var epoch = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func Run(t *testing.T, newStore Factory) {
	ctx := context.Background()

	setup := func(t *testing.T) (todo.Store, *testclock.Clock) {
		c := testclock.NewClock(epoch)
		s := newStore(t, c)
		t.Cleanup(func() { _ = s.Close() })
		return s, c
	}

	t.Run("create assigns id and createdAt", func(t *testing.T) {
		s, _ := setup(t)

		created, err := s.Create(ctx, todo.CreateInput{Title: "Buy milk"})
		require.NoError(t, err)

		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Buy milk", created.Title)
		assert.False(t, created.Completed)
		assert.True(t, created.CreatedAt.Equal(epoch))
	})

	t.Run("create rejects empty title", func(t *testing.T) {
		s, _ := setup(t)

		_, err := s.Create(ctx, todo.CreateInput{Title: "  "})
		assert.True(t, errors.Is(err, errors.NotValid))

		todos, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, todos)
	})

	t.Run("ids are unique", func(t *testing.T) {
		s, _ := setup(t)

		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			created, err := s.Create(ctx, todo.CreateInput{Title: "same"})
			require.NoError(t, err)
			require.False(t, seen[created.ID], "duplicate id %s", created.ID)
			seen[created.ID] = true
		}

		todos, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, todos, 50)
	})

	t.Run("get", func(t *testing.T) {
		s, c := setup(t)

		created, err := s.Create(ctx, todo.CreateInput{Title: "Buy milk", Description: "2 liters"})
		require.NoError(t, err)
		c.Advance(time.Minute)

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "2 liters", got.Description)
		assert.True(t, got.CreatedAt.Equal(epoch))

		_, err = s.Get(ctx, "unknown-id")
		assert.True(t, errors.Is(err, errors.NotFound))
	})

	t.Run("update completed only preserves fields", func(t *testing.T) {
		s, c := setup(t)

		created, err := s.Create(ctx, todo.CreateInput{Title: "Buy milk", Description: "2 liters"})
		require.NoError(t, err)
		c.Advance(time.Hour)

		updated, err := s.Update(ctx, created.ID, todo.UpdateInput{Completed: todo.Bool(true)})
		require.NoError(t, err)
		assert.True(t, updated.Completed)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Buy milk", updated.Title)
		assert.Equal(t, "2 liters", updated.Description)
		assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, got.Completed)
	})

	t.Run("update title and clear description", func(t *testing.T) {
		s, _ := setup(t)

		created, err := s.Create(ctx, todo.CreateInput{Title: "Buy milk", Description: "2 liters"})
		require.NoError(t, err)

		updated, err := s.Update(ctx, created.ID, todo.UpdateInput{
			Title:       todo.String("Buy oat milk"),
			Description: todo.String(""),
		})
		require.NoError(t, err)
		assert.Equal(t, "Buy oat milk", updated.Title)
		assert.Equal(t, "", updated.Description)
	})

	t.Run("update with nothing set", func(t *testing.T) {
		s, _ := setup(t)

		created, err := s.Create(ctx, todo.CreateInput{Title: "Buy milk"})
		require.NoError(t, err)

		updated, err := s.Update(ctx, created.ID, todo.UpdateInput{})
		require.NoError(t, err)
		assert.Equal(t, created.Title, updated.Title)
	})

	t.Run("update unknown", func(t *testing.T) {
		s, _ := setup(t)

		_, err := s.Update(ctx, "unknown-id", todo.UpdateInput{Completed: todo.Bool(true)})
		assert.True(t, errors.Is(err, errors.NotFound))
	})

	t.Run("update rejects empty title", func(t *testing.T) {
		s, _ := setup(t)

		created, err := s.Create(ctx, todo.CreateInput{Title: "Buy milk"})
		require.NoError(t, err)

		_, err = s.Update(ctx, created.ID, todo.UpdateInput{Title: todo.String("")})
		assert.True(t, errors.Is(err, errors.NotValid))

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", got.Title)
	})

	t.Run("delete then get", func(t *testing.T) {
		s, _ := setup(t)

		created, err := s.Create(ctx, todo.CreateInput{Title: "Buy milk"})
		require.NoError(t, err)
		kept, err := s.Create(ctx, todo.CreateInput{Title: "Walk dog"})
		require.NoError(t, err)

		deleted, err := s.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = s.Get(ctx, created.ID)
		assert.True(t, errors.Is(err, errors.NotFound))

		deleted, err = s.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		todos, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, todos, 1)
		assert.Equal(t, kept.ID, todos[0].ID)
	})
}
