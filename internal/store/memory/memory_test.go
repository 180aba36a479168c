package memory_test

import (
	"testing"

	"github.com/juju/clock"
	"github.com/timada-org/todo/internal/store/memory"
	"github.com/timada-org/todo/internal/store/storetest"
	"github.com/timada-org/todo/pkg/todo"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T, c clock.Clock) todo.Store {
		return memory.New(c)
	})
}
