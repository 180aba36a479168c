// Package memory is a process-local todo store.
package memory

import (
	"context"
	"sync"

	"github.com/juju/clock"
	"github.com/juju/errors"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/timada-org/todo/pkg/todo"
)

type Store struct {
	mux   sync.RWMutex
	clock clock.Clock
	todos map[string]todo.Todo
	// insertion order, so List is stable between calls
	ids []string
}

func New(c clock.Clock) *Store {
	if c == nil {
		c = clock.WallClock
	}

	return &Store{
		clock: c,
		todos: make(map[string]todo.Todo),
	}
}

func (s *Store) List(ctx context.Context) ([]todo.Todo, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	todos := make([]todo.Todo, 0, len(s.ids))
	for _, id := range s.ids {
		todos = append(todos, s.todos[id])
	}

	return todos, nil
}

func (s *Store) Get(ctx context.Context, id string) (*todo.Todo, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	t, ok := s.todos[id]
	if !ok {
		return nil, errors.NotFoundf("todo %q", id)
	}

	return &t, nil
}

func (s *Store) Create(ctx context.Context, input todo.CreateInput) (*todo.Todo, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, errors.Annotate(err, "generating todo id")
	}

	t := todo.Todo{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Completed:   false,
		CreatedAt:   s.clock.Now().UTC(),
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if _, ok := s.todos[id]; ok {
		return nil, errors.AlreadyExistsf("todo %q", id)
	}

	s.todos[id] = t
	s.ids = append(s.ids, id)

	return &t, nil
}

func (s *Store) Update(ctx context.Context, id string, input todo.UpdateInput) (*todo.Todo, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	t, ok := s.todos[id]
	if !ok {
		return nil, errors.NotFoundf("todo %q", id)
	}

	t = input.Apply(t)
	s.todos[id] = t

	return &t, nil
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	if _, ok := s.todos[id]; !ok {
		return false, nil
	}

	delete(s.todos, id)

	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}

	return true, nil
}

func (s *Store) Close() error {
	return nil
}
