package client

import (
	"sync"

	"github.com/timada-org/todo/pkg/todo"
)

// Collection is the client's copy of the todos. It only changes through the
// reconciliation methods, each called after the matching API call succeeded.
type Collection struct {
	mux   sync.RWMutex
	todos []todo.Todo
}

func NewCollection() *Collection {
	return &Collection{}
}

// Replace swaps in the result of a list call.
func (c *Collection) Replace(todos []todo.Todo) {
	c.mux.Lock()
	defer c.mux.Unlock()

	c.todos = append([]todo.Todo(nil), todos...)
}

// Add appends a record returned by create.
func (c *Collection) Add(t todo.Todo) {
	c.mux.Lock()
	defer c.mux.Unlock()

	c.todos = append(c.todos, t)
}

// Put replaces the record with the same id by the server's version. It
// reports false when the id is not held.
func (c *Collection) Put(t todo.Todo) bool {
	c.mux.Lock()
	defer c.mux.Unlock()

	for i := range c.todos {
		if c.todos[i].ID == t.ID {
			c.todos[i] = t
			return true
		}
	}

	return false
}

func (c *Collection) Remove(id string) bool {
	c.mux.Lock()
	defer c.mux.Unlock()

	for i := range c.todos {
		if c.todos[i].ID == id {
			c.todos = append(c.todos[:i], c.todos[i+1:]...)
			return true
		}
	}

	return false
}

func (c *Collection) Find(id string) (todo.Todo, bool) {
	c.mux.RLock()
	defer c.mux.RUnlock()

	for _, t := range c.todos {
		if t.ID == id {
			return t, true
		}
	}

	return todo.Todo{}, false
}

// Snapshot returns a copy safe to hand to view.Compute.
func (c *Collection) Snapshot() []todo.Todo {
	c.mux.RLock()
	defer c.mux.RUnlock()

	return append([]todo.Todo(nil), c.todos...)
}

func (c *Collection) Len() int {
	c.mux.RLock()
	defer c.mux.RUnlock()

	return len(c.todos)
}
