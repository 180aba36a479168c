// Package todo holds the todo record and the store contract shared by the
// server and its clients.
package todo

import (
	"context"
	"strings"
	"time"

	"github.com/juju/errors"
)

type Todo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateInput struct {
	Title       string `json:"title" mapstructure:"title"`
	Description string `json:"description,omitempty" mapstructure:"description"`
}

// Validate trims the input in place and rejects an empty title.
func (in *CreateInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)

	if in.Title == "" {
		return errors.NotValidf("empty title")
	}

	return nil
}

// UpdateInput carries a partial update. Nil fields are left untouched.
type UpdateInput struct {
	Title       *string `json:"title,omitempty" mapstructure:"title"`
	Description *string `json:"description,omitempty" mapstructure:"description"`
	Completed   *bool   `json:"completed,omitempty" mapstructure:"completed"`
}

func (in *UpdateInput) Validate() error {
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return errors.NotValidf("empty title")
		}
		in.Title = &title
	}

	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		in.Description = &description
	}

	return nil
}

func (in UpdateInput) Empty() bool {
	return in.Title == nil && in.Description == nil && in.Completed == nil
}

// Apply returns a copy of t with the set fields of in applied.
func (in UpdateInput) Apply(t Todo) Todo {
	if in.Title != nil {
		t.Title = *in.Title
	}

	if in.Description != nil {
		t.Description = *in.Description
	}

	if in.Completed != nil {
		t.Completed = *in.Completed
	}

	return t
}

// Store is the persistence capability the dispatcher delegates to.
// Get and Update return an error satisfying errors.Is(err, errors.NotFound)
// for an unknown id; Delete reports the same condition as false.
type Store interface {
	List(ctx context.Context) ([]Todo, error)
	Get(ctx context.Context, id string) (*Todo, error)
	Create(ctx context.Context, input CreateInput) (*Todo, error)
	Update(ctx context.Context, id string, input UpdateInput) (*Todo, error)
	Delete(ctx context.Context, id string) (bool, error)
	Close() error
}

func Bool(v bool) *bool { return &v }

func String(v string) *string { return &v }
