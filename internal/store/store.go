// Package store selects the todo.Store implementation named in the config.
package store

import (
	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/timada-org/todo/internal/store/memory"
	"github.com/timada-org/todo/internal/store/sqlstore"
	"github.com/timada-org/todo/pkg/todo"
)

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/store_mock.go github.com/timada-org/todo/pkg/todo Store

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

func Open(driver, dsn string, c clock.Clock) (todo.Store, error) {
	switch driver {
	case DriverMemory, "":
		return memory.New(c), nil
	case DriverSQLite:
		s, err := sqlstore.Open(dsn, c)
		if err != nil {
			return nil, errors.Trace(err)
		}
		return s, nil
	default:
		return nil, errors.NotSupportedf("store driver %q", driver)
	}
}
