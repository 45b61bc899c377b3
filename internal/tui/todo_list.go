package tui

import (
	"fmt"
	"log/slog"

	"github.com/Makepad-fr/tada-remote/internal/input"
	"github.com/Makepad-fr/tada-remote/internal/model"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// todoListPage fetches the collection, renders the create form and one row
// per todo, and re-fetches after every successful mutation.
type todoListPage struct {
	deps   Deps
	logger *slog.Logger

	loading bool
	spinner spinner.Model
	list    list.Model

	// create form
	adding  bool
	newTodo input.Input[string]
	ti      textinput.Model

	width, height int
}

func newTodoListPage(d Deps) page {
	l := list.New(nil, itemDelegate{}, 76, 18)
	l.Title = titleStyle.Render("Todos")
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetStatusBarItemName("todo", "todos")
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.AdditionalShortHelpKeys = listKeys.bindings
	l.AdditionalFullHelpKeys = listKeys.bindings

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New todo..."
	ti.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &todoListPage{
		deps:    d,
		logger:  d.logger(),
		loading: true,
		spinner: sp,
		list:    l,
		newTodo: input.New(""),
		ti:      ti,
		width:   80,
		height:  24,
	}
}

func (m *todoListPage) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetchTodos(m.deps.Todos))
}

// capturing reports whether keys are text entry right now.
func (m *todoListPage) capturing() bool {
	if m.adding {
		return true
	}
	row, ok := m.selected()
	return ok && row.editing()
}

func (m *todoListPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(listSize(m.width, m.height))
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case todosLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("fetch todos failed", slog.String("error", msg.err.Error()))
			return m, nil
		}
		m.loading = false
		return m, m.reconcile(msg.todos)

	case mutationDoneMsg:
		if msg.err != nil {
			m.logger.Warn("todo mutation failed",
				slog.String("op", msg.op),
				slog.Int("id", msg.id),
				slog.String("error", msg.err.Error()))
			return m, nil
		}
		if msg.op == "create" {
			m.newTodo.Reset()
			m.ti.SetValue(m.newTodo.Value())
		}
		return m, fetchTodos(m.deps.Todos)

	case updateTodoMsg:
		if msg.body.Todo == "" {
			return m, nil
		}
		return m, updateTodo(m.deps.Todos, msg.id, msg.body)

	case deleteTodoMsg:
		if msg.id == 0 {
			return m, nil
		}
		return m, deleteTodo(m.deps.Todos, msg.id)

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		if m.adding {
			return m.updateAdding(msg)
		}
		if row, ok := m.selected(); ok && row.editing() {
			return m.updateSelected(msg)
		}
		switch {
		case key.Matches(msg, listKeys.Add):
			m.adding = true
			m.ti.SetValue(m.newTodo.Value())
			m.ti.CursorEnd()
			return m, m.ti.Focus()
		case key.Matches(msg, listKeys.Logout):
			return m, logout(m.deps.Session, m.logger)
		case key.Matches(msg, listKeys.Toggle), key.Matches(msg, listKeys.Modify), key.Matches(msg, listKeys.Delete):
			return m.updateSelected(msg)
		}
	}

	if m.loading {
		return m, nil
	}
	var cmd tea.Cmd
	if m.adding {
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}
	if row, ok := m.selected(); ok && row.editing() {
		return m.updateSelected(msg)
	}
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// listSize leaves room for the panel border and the create form.
func listSize(width, height int) (int, int) {
	h := height - 6
	if h < 3 {
		h = 3
	}
	return width - 4, h
}

func (m *todoListPage) updateAdding(msg tea.KeyMsg) (page, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := m.newTodo.Value()
		if text == "" {
			return m, nil
		}
		return m, createTodo(m.deps.Todos, text)
	case "esc":
		m.adding = false
		m.ti.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	m.newTodo.Handle(input.ChangeEvent{Value: m.ti.Value()})
	return m, cmd
}

func (m *todoListPage) selected() (todoItem, bool) {
	it, ok := m.list.SelectedItem().(todoItem)
	return it, ok
}

func (m *todoListPage) updateSelected(msg tea.Msg) (page, tea.Cmd) {
	row, ok := m.selected()
	if !ok {
		return m, nil
	}
	row, cmd := row.Update(msg)
	m.list.SetItem(m.list.Index(), row)
	return m, cmd
}

// reconcile swaps in a fresh collection, keeping per-row state for ids that survive.
func (m *todoListPage) reconcile(todos []model.Todo) tea.Cmd {
	existing := make(map[int]todoItem, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if row, ok := it.(todoItem); ok {
			existing[row.todo.ID] = row
		}
	}
	rows := make([]list.Item, 0, len(todos))
	for _, t := range todos {
		if row, ok := existing[t.ID]; ok {
			rows = append(rows, row.setRecord(t))
			continue
		}
		rows = append(rows, newTodoItem(t))
	}
	return m.list.SetItems(rows)
}

// rows returns the current rows in display order.
func (m *todoListPage) rows() []todoItem {
	out := make([]todoItem, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if row, ok := it.(todoItem); ok {
			out = append(out, row)
		}
	}
	return out
}

func (m *todoListPage) View() string {
	if m.loading {
		return m.spinner.View() + " Loading..."
	}

	done, pending := stats(m.rows())
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), pending,
		accentStyle.Render("Total"), done+pending,
	)

	form := m.ti.View()
	if !m.adding && m.newTodo.Value() == "" {
		form = mutedStyle.Render("press a to add a todo")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		form, "  ", button("add", m.adding, m.newTodo.Value() == ""), "  ", button("log out", false, false))
	return panelString(header + "\n" + m.list.View())
}

// small list stats used for the header
func stats(rows []todoItem) (done, pending int) {
	for _, r := range rows {
		if r.completed.Value() {
			done++
		} else {
			pending++
		}
	}
	return
}
