// Package tui is the terminal client: a Bubble Tea program over the todo API.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/timada-org/todo/pkg/client"
	"github.com/timada-org/todo/pkg/todo"
	"github.com/timada-org/todo/pkg/view"
	"golang.org/x/text/language"
)

// API is the part of client.Client the terminal client needs.
type API interface {
	List(ctx context.Context) ([]todo.Todo, error)
	Create(ctx context.Context, input todo.CreateInput) (*todo.Todo, error)
	Update(ctx context.Context, id string, input todo.UpdateInput) (*todo.Todo, error)
	Delete(ctx context.Context, id string) error
}

type Options struct {
	Language language.Tag
	Dark     bool
}

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
	modeSearch
)

type (
	loadedMsg  struct{ todos []todo.Todo }
	createdMsg struct{ todo todo.Todo }
	updatedMsg struct{ todo todo.Todo }
	deletedMsg struct{ id string }
	errMsg     struct{ err error }
)

type item struct {
	todo todo.Todo
}

func (i item) Title() string       { return i.todo.Title }
func (i item) Description() string { return i.todo.Description }
func (i item) FilterValue() string { return i.todo.Title }

type itemDelegate struct {
	styles *styles
}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	it, ok := li.(item)
	if !ok {
		return
	}

	box := d.styles.muted.Render(boxUnchecked)
	text := it.todo.Title
	if it.todo.Completed {
		box = d.styles.success.Render(boxChecked)
		text = d.styles.done.Render(text)
	}

	line := box + " " + text
	if it.todo.Description != "" {
		line += "  " + d.styles.muted.Render(it.todo.Description)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = d.styles.selected.Render("> ")
	}

	fmt.Fprintln(w, prefix+line)
}

// form holds the title and description inputs shared by add and edit.
type form struct {
	title       textinput.Model
	description textinput.Model
	focus       int
	err         string
}

func newForm() form {
	title := textinput.New()
	title.Prompt = "> "
	title.CharLimit = 200

	description := textinput.New()
	description.Prompt = "> "
	description.CharLimit = 500

	return form{title: title, description: description}
}

func (f *form) reset(title, description string) tea.Cmd {
	f.title.SetValue(title)
	f.title.CursorEnd()
	f.description.SetValue(description)
	f.description.Blur()
	f.focus = 0
	f.err = ""

	return f.title.Focus()
}

func (f *form) next() tea.Cmd {
	if f.focus == 0 {
		f.focus = 1
		f.title.Blur()
		return f.description.Focus()
	}

	f.focus = 0
	f.description.Blur()
	return f.title.Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.focus == 0 {
		f.title, cmd = f.title.Update(msg)
	} else {
		f.description, cmd = f.description.Update(msg)
	}

	return cmd
}

func (f *form) values() (string, string) {
	return strings.TrimSpace(f.title.Value()), strings.TrimSpace(f.description.Value())
}

type Model struct {
	ctx    context.Context
	api    API
	todos  *client.Collection
	keys   keyMap
	styles *styles

	list   list.Model
	form   form
	search textinput.Model

	mode    mode
	editID  string
	params  view.Params
	dark    bool
	loading bool
	failed  bool
}

func New(ctx context.Context, api API, opts Options) Model {
	params := view.DefaultParams()
	params.Language = opts.Language
	if params.Language == language.Und {
		params.Language = Languages[0]
	}

	s := newStyles(opts.Dark)
	keys := newKeyMap()

	l := list.New(nil, itemDelegate{styles: &s}, 80, 20)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = s.title
	l.Styles.HelpStyle = s.help
	l.Styles.PaginationStyle = s.help
	l.KeyMap.Quit.SetEnabled(false)
	l.AdditionalShortHelpKeys = keys.bindings
	l.AdditionalFullHelpKeys = keys.bindings

	search := textinput.New()
	search.Prompt = "/ "
	search.CharLimit = 100

	return Model{
		ctx:     ctx,
		api:     api,
		todos:   client.NewCollection(),
		keys:    keys,
		styles:  &s,
		list:    l,
		form:    newForm(),
		search:  search,
		params:  params,
		dark:    opts.Dark,
		loading: true,
	}
}

// Run starts the program and blocks until the user quits or ctx is done.
func Run(ctx context.Context, api API, opts Options) error {
	p := tea.NewProgram(New(ctx, api, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) t(key string) string {
	return translate(m.params.Language, key)
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		todos, err := m.api.List(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return loadedMsg{todos}
	}
}

func (m Model) create(input todo.CreateInput) tea.Cmd {
	return func() tea.Msg {
		t, err := m.api.Create(m.ctx, input)
		if err != nil {
			return errMsg{err}
		}
		return createdMsg{*t}
	}
}

func (m Model) update(id string, input todo.UpdateInput) tea.Cmd {
	return func() tea.Msg {
		t, err := m.api.Update(m.ctx, id, input)
		if err != nil {
			return errMsg{err}
		}
		return updatedMsg{*t}
	}
}

func (m Model) remove(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.api.Delete(m.ctx, id); err != nil {
			return errMsg{err}
		}
		return deletedMsg{id}
	}
}

// refresh recomputes the visible list from the collection.
func (m *Model) refresh() {
	visible := view.Compute(m.todos.Snapshot(), m.params)

	items := make([]list.Item, 0, len(visible))
	for _, t := range visible {
		items = append(items, item{todo: t})
	}

	m.list.SetItems(items)
}

func (m Model) selected() (todo.Todo, bool) {
	it, ok := m.list.SelectedItem().(item)
	if !ok {
		return todo.Todo{}, false
	}

	return it.todo, true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case loadedMsg:
		m.loading = false
		m.failed = false
		m.todos.Replace(msg.todos)
		m.refresh()
		return m, nil

	case createdMsg:
		m.failed = false
		m.todos.Add(msg.todo)
		m.refresh()
		return m, nil

	case updatedMsg:
		m.failed = false
		m.todos.Put(msg.todo)
		m.refresh()
		return m, nil

	case deletedMsg:
		m.failed = false
		m.todos.Remove(msg.id)
		m.refresh()
		return m, nil

	case errMsg:
		m.loading = false
		m.failed = true
		return m, nil
	}

	switch m.mode {
	case modeAdd, modeEdit:
		return m.updateForm(msg)
	case modeSearch:
		return m.updateSearch(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.add):
			m.mode = modeAdd
			return m, m.form.reset("", "")

		case key.Matches(msg, m.keys.edit):
			t, ok := m.selected()
			if !ok {
				return m, nil
			}
			m.mode = modeEdit
			m.editID = t.ID
			return m, m.form.reset(t.Title, t.Description)

		case key.Matches(msg, m.keys.toggle):
			t, ok := m.selected()
			if !ok {
				return m, nil
			}
			return m, m.update(t.ID, todo.UpdateInput{Completed: todo.Bool(!t.Completed)})

		case key.Matches(msg, m.keys.remove):
			t, ok := m.selected()
			if !ok {
				return m, nil
			}
			return m, m.remove(t.ID)

		case key.Matches(msg, m.keys.search):
			m.mode = modeSearch
			m.search.SetValue(m.params.Search)
			m.search.CursorEnd()
			return m, m.search.Focus()

		case key.Matches(msg, m.keys.filter):
			m.params.Status = nextStatus(m.params.Status)
			m.refresh()
			return m, nil

		case key.Matches(msg, m.keys.sort):
			m.params.Sort = nextSort(m.params.Sort)
			m.refresh()
			return m, nil

		case key.Matches(msg, m.keys.language):
			m.params.Language = nextLanguage(m.params.Language)
			m.refresh()
			return m, nil

		case key.Matches(msg, m.keys.theme):
			m.dark = !m.dark
			s := newStyles(m.dark)
			m.styles = &s
			m.list.SetDelegate(itemDelegate{styles: m.styles})
			m.list.Styles.Title = s.title
			m.list.Styles.HelpStyle = s.help
			return m, nil

		case key.Matches(msg, m.keys.reload):
			m.loading = true
			return m, m.load()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			m.mode = modeBrowse
			m.editID = ""
			return m, nil

		case "tab", "shift+tab":
			return m, m.form.next()

		case "enter":
			title, description := m.form.values()
			if title == "" {
				m.form.err = m.t("form.required")
				return m, nil
			}

			var cmd tea.Cmd
			if m.mode == modeAdd {
				cmd = m.create(todo.CreateInput{Title: title, Description: description})
			} else {
				cmd = m.update(m.editID, todo.UpdateInput{
					Title:       todo.String(title),
					Description: todo.String(description),
				})
			}

			m.mode = modeBrowse
			m.editID = ""
			return m, cmd
		}
	}

	return m, m.form.update(msg)
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			m.mode = modeBrowse
			m.search.Blur()
			return m, nil

		case "esc":
			m.mode = modeBrowse
			m.search.Blur()
			m.search.SetValue("")
			m.params.Search = ""
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.params.Search = m.search.Value()
	m.refresh()

	return m, cmd
}

func nextStatus(s view.Status) view.Status {
	for i, status := range view.Statuses {
		if status == s {
			return view.Statuses[(i+1)%len(view.Statuses)]
		}
	}

	return view.StatusAll
}

func nextSort(s view.Sort) view.Sort {
	for i, sort := range view.Sorts {
		if sort == s {
			return view.Sorts[(i+1)%len(view.Sorts)]
		}
	}

	return view.DefaultParams().Sort
}

func statusKey(s view.Status) string {
	return "filter." + string(s)
}

func sortKey(s view.Sort) string {
	switch {
	case s.Field == view.FieldTitle && s.Order == view.Ascending:
		return "sort.titleAsc"
	case s.Field == view.FieldTitle:
		return "sort.titleDesc"
	case s.Order == view.Ascending:
		return "sort.oldest"
	default:
		return "sort.newest"
	}
}

func (m Model) header() string {
	done, pending := view.Counts(m.todos.Snapshot())

	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		m.styles.title.Render(m.t("todo.title")),
		m.styles.success.Render("✔"), done,
		m.styles.pending.Render("•"), pending,
		m.styles.accent.Render(m.t("todo.total")), done+pending,
	)
}

func (m Model) toolbar() string {
	theme := m.t("app.lightMode")
	if m.dark {
		theme = m.t("app.darkMode")
	}

	parts := []string{
		m.t("todo.status") + ": " + m.styles.accent.Render(m.t(statusKey(m.params.Status))),
		m.t("todo.sort") + ": " + m.styles.accent.Render(m.t(sortKey(m.params.Sort))),
		m.t("language.select") + ": " + m.styles.accent.Render(m.t(languageKey(m.params.Language))),
		theme,
	}

	if m.params.Search != "" && m.mode != modeSearch {
		parts = append(parts, m.t("todo.search")+": "+m.styles.accent.Render(m.params.Search))
	}

	return m.styles.muted.Render(strings.Join(parts, "  |  "))
}

func (m Model) View() string {
	m.list.Title = m.header()

	sections := []string{m.toolbar()}

	switch {
	case m.loading:
		sections = append(sections, m.styles.muted.Render(m.t("todo.loading")))
	case m.todos.Len() == 0:
		sections = append(sections, m.styles.muted.Render(m.t("todo.empty")))
	}

	sections = append(sections, m.list.View())

	switch m.mode {
	case modeAdd, modeEdit:
		sections = append(sections, m.formView())
	case modeSearch:
		sections = append(sections, m.styles.form.Render(m.t("todo.search")+"\n"+m.search.View()))
	}

	if m.failed {
		sections = append(sections, m.styles.err.Render("✖ "+m.t("todo.error")))
	}

	return m.styles.panel.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) formView() string {
	heading := m.t("form.add")
	if m.mode == modeEdit {
		heading = m.t("todo.edit")
	}
	if m.form.err != "" {
		heading += "  " + m.styles.err.Render(m.form.err)
	}

	lines := []string{
		heading,
		m.t("form.title"),
		m.form.title.View(),
		m.t("form.description"),
		m.form.description.View(),
		m.styles.help.Render("enter " + m.t("form.save") + " · esc " + m.t("form.cancel") + " · tab ↹"),
	}

	return m.styles.form.Render(strings.Join(lines, "\n"))
}
