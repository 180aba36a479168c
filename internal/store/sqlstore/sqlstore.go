// Package sqlstore persists todos in SQLite through gorm.
package sqlstore

import (
	"context"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/juju/clock"
	"github.com/juju/errors"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/timada-org/todo/pkg/todo"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type record struct {
	ID          string `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string
	Completed   bool      `gorm:"index"`
	CreatedAt   time.Time `gorm:"index;autoCreateTime:false"`
}

func (record) TableName() string { return "todos" }

func (r record) todo() todo.Todo {
	return todo.Todo{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

type Store struct {
	db    *gorm.DB
	clock clock.Clock
}

// Open connects to the SQLite database at dsn (":memory:" works) and migrates
// the todos table.
func Open(dsn string, c clock.Clock) (*Store, error) {
	if c == nil {
		c = clock.WallClock
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, errors.Annotatef(err, "opening sqlite %q", dsn)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Trace(err)
	}

	// One connection keeps a ":memory:" database alive for the store's lifetime.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&record{}); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Annotate(err, "migrating todos")
	}

	return &Store{db: db, clock: c}, nil
}

func (s *Store) List(ctx context.Context) ([]todo.Todo, error) {
	var records []record
	if err := s.db.WithContext(ctx).Order("created_at").Order("rowid").Find(&records).Error; err != nil {
		return nil, errors.Annotate(err, "listing todos")
	}

	todos := make([]todo.Todo, 0, len(records))
	for _, r := range records {
		todos = append(todos, r.todo())
	}

	return todos, nil
}

func (s *Store) Get(ctx context.Context, id string) (*todo.Todo, error) {
	r, err := s.find(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}

	t := r.todo()

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

	r := record{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Completed:   false,
		CreatedAt:   s.clock.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return nil, errors.Annotate(err, "inserting todo")
	}

	t := r.todo()

	return &t, nil
}

func (s *Store) Update(ctx context.Context, id string, input todo.UpdateInput) (*todo.Todo, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated todo.Todo

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := s.find(tx, id)
		if err != nil {
			return err
		}

		updated = input.Apply(r.todo())

		if input.Empty() {
			return nil
		}

		return tx.Model(&record{}).Where("id = ?", id).Updates(map[string]any{
			"title":       updated.Title,
			"description": updated.Description,
			"completed":   updated.Completed,
		}).Error
	})
	if err != nil {
		if errors.Is(err, errors.NotFound) {
			return nil, err
		}
		return nil, errors.Annotatef(err, "updating todo %q", id)
	}

	return &updated, nil
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&record{}, "id = ?", id)
	if res.Error != nil {
		return false, errors.Annotatef(res.Error, "deleting todo %q", id)
	}

	return res.RowsAffected > 0, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Trace(err)
	}

	return sqlDB.Close()
}

func (s *Store) find(db *gorm.DB, id string) (*record, error) {
	var r record
	if err := db.Where("id = ?", id).Take(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFoundf("todo %q", id)
		}
		return nil, errors.Annotatef(err, "finding todo %q", id)
	}

	return &r, nil
}
