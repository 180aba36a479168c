package events

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/timada-org/todo/pkg/todo"
)

// Store wraps a todo.Store and publishes an event after every successful
// mutation. A failed publish is logged; the mutation is already committed.
type Store struct {
	todo.Store
	publisher Publisher
	logger    *log.Logger
}

func NewStore(inner todo.Store, publisher Publisher, logger *log.Logger) *Store {
	return &Store{
		Store:     inner,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Store) Create(ctx context.Context, input todo.CreateInput) (*todo.Todo, error) {
	t, err := s.Store.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, t.ID, Created, t)

	return t, nil
}

func (s *Store) Update(ctx context.Context, id string, input todo.UpdateInput) (*todo.Todo, error) {
	t, err := s.Store.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}

	if !input.Empty() {
		s.publish(ctx, t.ID, Updated, t)
	}

	return t, nil
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.Store.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	s.publish(ctx, id, Deleted, map[string]any{"id": id})

	return true, nil
}

func (s *Store) Close() error {
	s.publisher.Close()

	return s.Store.Close()
}

func (s *Store) publish(ctx context.Context, id, name string, data any) {
	err := s.publisher.Publish(ctx, &Event{
		Topic: TopicFor(id),
		Name:  name,
		Data:  data,
	})
	if err != nil {
		s.logger.Error("publishing todo event", "topic", TopicFor(id), "name", name, "err", err)
	}
}
