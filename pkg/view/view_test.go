package view_test

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timada-org/todo/pkg/todo"
	"github.com/timada-org/todo/pkg/view"
	"golang.org/x/text/language"
)

var t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return t0.Add(time.Duration(minutes) * time.Minute)
}

func sample() []todo.Todo {
	return []todo.Todo{
		{ID: "1", Title: "Buy milk", Description: "Two liters", CreatedAt: at(1)},
		{ID: "2", Title: "walk dog", Completed: true, CreatedAt: at(3)},
		{ID: "3", Title: "Call mom", Description: "about the MILKshake", CreatedAt: at(2)},
		{ID: "4", Title: "apple pie", Completed: true, CreatedAt: at(0)},
	}
}

func ids(todos []todo.Todo) []string {
	out := make([]string, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.ID)
	}
	return out
}

func TestStatusFilter(t *testing.T) {
	p := view.DefaultParams()

	t.Run("all", func(t *testing.T) {
		p.Status = view.StatusAll
		assert.Len(t, view.Compute(sample(), p), 4)
	})

	t.Run("active", func(t *testing.T) {
		p.Status = view.StatusActive
		for _, td := range view.Compute(sample(), p) {
			assert.False(t, td.Completed)
		}
		assert.ElementsMatch(t, []string{"1", "3"}, ids(view.Compute(sample(), p)))
	})

	t.Run("completed", func(t *testing.T) {
		p.Status = view.StatusCompleted
		assert.ElementsMatch(t, []string{"2", "4"}, ids(view.Compute(sample(), p)))
	})
}

func TestSearch(t *testing.T) {
	p := view.DefaultParams()

	t.Run("empty matches everything", func(t *testing.T) {
		assert.Len(t, view.Compute(sample(), p), 4)
	})

	t.Run("title or description, case insensitive", func(t *testing.T) {
		p.Search = "MILK"
		assert.ElementsMatch(t, []string{"1", "3"}, ids(view.Compute(sample(), p)))
	})

	t.Run("combined with status", func(t *testing.T) {
		p.Search = "milk"
		p.Status = view.StatusCompleted
		assert.Empty(t, view.Compute(sample(), p))
	})

	t.Run("every result contains the search", func(t *testing.T) {
		for _, s := range []string{"a", "o", "li", "dog", "zzz", " "} {
			p := view.DefaultParams()
			p.Search = s
			got := view.Compute(sample(), p)

			for _, td := range got {
				hay := strings.ToLower(td.Title) + "\x00" + strings.ToLower(td.Description)
				assert.Contains(t, hay, strings.ToLower(s))
			}

			for _, td := range sample() {
				if !strings.Contains(strings.ToLower(td.Title), s) && !strings.Contains(strings.ToLower(td.Description), s) {
					assert.NotContains(t, ids(got), td.ID)
				}
			}
		}
	})
}

func TestSort(t *testing.T) {
	t.Run("createdAt", func(t *testing.T) {
		p := view.DefaultParams()
		assert.Equal(t, []string{"2", "3", "1", "4"}, ids(view.Compute(sample(), p)))

		p.Sort.Order = view.Ascending
		assert.Equal(t, []string{"4", "1", "3", "2"}, ids(view.Compute(sample(), p)))
	})

	t.Run("title uses collation", func(t *testing.T) {
		p := view.DefaultParams()
		p.Sort = view.Sort{Field: view.FieldTitle, Order: view.Ascending}
		assert.Equal(t, []string{"4", "1", "3", "2"}, ids(view.Compute(sample(), p)))

		accents := []todo.Todo{
			{ID: "f", Title: "fig"},
			{ID: "e", Title: "étude"},
			{ID: "a", Title: "eagle"},
		}
		p.Language = language.French
		assert.Equal(t, []string{"a", "e", "f"}, ids(view.Compute(accents, p)))
	})

	t.Run("title descending is the reverse", func(t *testing.T) {
		p := view.DefaultParams()
		p.Sort = view.Sort{Field: view.FieldTitle, Order: view.Ascending}
		asc := ids(view.Compute(sample(), p))

		p.Sort.Order = view.Descending
		desc := ids(view.Compute(sample(), p))

		for i := range asc {
			assert.Equal(t, asc[i], desc[len(desc)-1-i])
		}
	})

	t.Run("stable for equal keys", func(t *testing.T) {
		todos := []todo.Todo{
			{ID: "x1", Title: "Same", CreatedAt: at(5)},
			{ID: "y", Title: "Other", CreatedAt: at(1)},
			{ID: "x2", Title: "Same", CreatedAt: at(5)},
			{ID: "x3", Title: "Same", CreatedAt: at(5)},
		}

		for _, s := range view.Sorts {
			p := view.DefaultParams()
			p.Sort = s

			var same []string
			for _, id := range ids(view.Compute(todos, p)) {
				if strings.HasPrefix(id, "x") {
					same = append(same, id)
				}
			}
			assert.Equal(t, []string{"x1", "x2", "x3"}, same, s.String())
		}
	})

	t.Run("input untouched", func(t *testing.T) {
		todos := sample()
		rand.New(rand.NewSource(1)).Shuffle(len(todos), func(i, j int) { todos[i], todos[j] = todos[j], todos[i] })
		before := ids(todos)

		p := view.DefaultParams()
		p.Sort = view.Sort{Field: view.FieldTitle, Order: view.Descending}
		view.Compute(todos, p)

		assert.Equal(t, before, ids(todos))
	})
}

func TestParse(t *testing.T) {
	for _, s := range view.Sorts {
		got, err := view.ParseSort(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	got, err := view.ParseSort("title_asc")
	require.NoError(t, err)
	assert.Equal(t, view.Sort{Field: view.FieldTitle, Order: view.Ascending}, got)

	_, err = view.ParseSort("priority_asc")
	assert.Error(t, err)

	status, err := view.ParseStatus("active")
	require.NoError(t, err)
	assert.Equal(t, view.StatusActive, status)

	_, err = view.ParseStatus("archived")
	assert.Error(t, err)
}

func TestCounts(t *testing.T) {
	done, pending := view.Counts(sample())
	assert.Equal(t, 2, done)
	assert.Equal(t, 2, pending)
}
