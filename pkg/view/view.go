// Package view computes the ordered subset of todos a client displays for a
// given search text, status filter and sort order.
package view

import (
	"fmt"
	"sort"
	"strings"

	"github.com/timada-org/todo/pkg/todo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Status string

const (
	StatusAll       Status = "all"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

var Statuses = []Status{StatusAll, StatusActive, StatusCompleted}

func ParseStatus(s string) (Status, error) {
	for _, status := range Statuses {
		if string(status) == s {
			return status, nil
		}
	}

	return "", fmt.Errorf("view: unknown status %q", s)
}

func (s Status) keep(t todo.Todo) bool {
	switch s {
	case StatusActive:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	default:
		return true
	}
}

type Field string

const (
	FieldCreatedAt Field = "createdAt"
	FieldTitle     Field = "title"
)

type Order string

const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

type Sort struct {
	Field Field
	Order Order
}

// Sorts lists the choices offered to users, newest first.
var Sorts = []Sort{
	{FieldCreatedAt, Descending},
	{FieldCreatedAt, Ascending},
	{FieldTitle, Ascending},
	{FieldTitle, Descending},
}

// ParseSort reads the "field_order" form, e.g. "createdAt_desc".
func ParseSort(s string) (Sort, error) {
	for _, sort := range Sorts {
		if sort.String() == s {
			return sort, nil
		}
	}

	return Sort{}, fmt.Errorf("view: unknown sort %q", s)
}

func (s Sort) String() string {
	return fmt.Sprintf("%s_%s", s.Field, s.Order)
}

type Params struct {
	Search string
	Status Status
	Sort   Sort
	// Language drives title collation; language.Und when zero.
	Language language.Tag
}

func DefaultParams() Params {
	return Params{
		Status: StatusAll,
		Sort:   Sort{FieldCreatedAt, Descending},
	}
}

// Compute filters todos by status, then by search text, then sorts them.
// The input slice is never modified. Sorting is stable, so todos with equal
// keys keep their relative input order in both directions.
func Compute(todos []todo.Todo, p Params) []todo.Todo {
	search := strings.ToLower(p.Search)

	out := make([]todo.Todo, 0, len(todos))
	for _, t := range todos {
		if !p.Status.keep(t) {
			continue
		}

		if !matches(t, search) {
			continue
		}

		out = append(out, t)
	}

	less := comparator(p)
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})

	return out
}

func matches(t todo.Todo, search string) bool {
	if search == "" {
		return true
	}

	return strings.Contains(strings.ToLower(t.Title), search) ||
		strings.Contains(strings.ToLower(t.Description), search)
}

func comparator(p Params) func(a, b todo.Todo) bool {
	var cmp func(a, b todo.Todo) int

	switch p.Sort.Field {
	case FieldTitle:
		c := collate.New(p.Language)
		cmp = func(a, b todo.Todo) int {
			return c.CompareString(a.Title, b.Title)
		}
	default:
		cmp = func(a, b todo.Todo) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}

	if p.Sort.Order == Ascending {
		return func(a, b todo.Todo) bool { return cmp(a, b) < 0 }
	}

	return func(a, b todo.Todo) bool { return cmp(b, a) < 0 }
}

// Counts returns how many todos are done and how many are still pending.
func Counts(todos []todo.Todo) (done, pending int) {
	for _, t := range todos {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}

	return
}
