package store_test

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timada-org/todo/internal/store"
	"github.com/timada-org/todo/internal/store/memory"
	"github.com/timada-org/todo/internal/store/sqlstore"
)

func TestOpen(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		s, err := store.Open(store.DriverMemory, "", nil)
		require.NoError(t, err)
		assert.IsType(t, &memory.Store{}, s)
	})

	t.Run("sqlite", func(t *testing.T) {
		s, err := store.Open(store.DriverSQLite, ":memory:", nil)
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &sqlstore.Store{}, s)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := store.Open("redis", "", nil)
		assert.True(t, errors.Is(err, errors.NotSupported))
	})
}
