package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/Makepad-fr/tada-remote/internal/input"
	"github.com/Makepad-fr/tada-remote/internal/model"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type itemMode int

const (
	modeViewing itemMode = iota
	modeEditing
)

// todoItem is one row of the list: the fetched record plus local mirrors of
// its completed flag and text. Rows never touch the list page; they emit
// updateTodoMsg and deleteTodoMsg instead.
type todoItem struct {
	todo      model.Todo
	completed input.Input[bool]
	edit      input.Input[string]
	mode      itemMode
	ti        textinput.Model
}

func newTodoItem(t model.Todo) todoItem {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 200
	return todoItem{
		todo:      t,
		completed: input.New(t.IsCompleted),
		edit:      input.New(t.Todo),
		ti:        ti,
	}
}

// Implement list.Item interface
func (i todoItem) FilterValue() string { return i.todo.Todo }

func (i todoItem) editing() bool { return i.mode == modeEditing }

// setRecord hands the row a freshly fetched record. Mirrors re-sync only
// when the record's values differ from what they were seeded with.
func (i todoItem) setRecord(t model.Todo) todoItem {
	i.todo = t
	i.completed.Sync(t.IsCompleted)
	if i.edit.Sync(t.Todo) {
		i.ti.SetValue(i.edit.Value())
	}
	return i
}

func (i todoItem) Update(msg tea.Msg) (todoItem, tea.Cmd) {
	km, isKey := msg.(tea.KeyMsg)
	if !isKey {
		if i.editing() {
			var cmd tea.Cmd
			i.ti, cmd = i.ti.Update(msg)
			return i, cmd
		}
		return i, nil
	}

	if i.editing() {
		switch {
		case key.Matches(km, editKeys.Submit):
			return i.submit()
		case key.Matches(km, editKeys.LineBreak):
			return i, nil
		case key.Matches(km, editKeys.Cancel):
			return i.cancel(), nil
		case key.Matches(km, editKeys.Toggle):
			return i.toggleCompleted()
		}
		var cmd tea.Cmd
		i.ti, cmd = i.ti.Update(msg)
		i.edit.Handle(input.ChangeEvent{Value: i.ti.Value()})
		return i, cmd
	}

	switch {
	case key.Matches(km, listKeys.Toggle):
		return i.toggleCompleted()
	case key.Matches(km, listKeys.Modify):
		return i.modify()
	case key.Matches(km, listKeys.Delete):
		return i, emit(deleteTodoMsg{id: i.todo.ID})
	}
	return i, nil
}

// toggleCompleted flips the local mirror and always reports it, together with
// the current (possibly unsaved) edit buffer.
func (i todoItem) toggleCompleted() (todoItem, tea.Cmd) {
	next := !i.completed.Value()
	i.completed.Handle(input.ChangeEvent{Checked: next})
	return i, emit(updateTodoMsg{
		id:   i.todo.ID,
		body: model.UpdateTodo{IsCompleted: next, Todo: i.edit.Value()},
	})
}

func (i todoItem) modify() (todoItem, tea.Cmd) {
	i.mode = modeEditing
	i.ti.SetValue(i.edit.Value())
	i.ti.CursorEnd()
	return i, i.ti.Focus()
}

// submit commits a non-empty edit buffer and returns to viewing. The row keeps
// showing the fetched text until a re-fetch hands it a new record.
func (i todoItem) submit() (todoItem, tea.Cmd) {
	if i.edit.Value() == "" {
		return i, nil
	}
	body := model.UpdateTodo{IsCompleted: i.completed.Value(), Todo: i.edit.Value()}
	i.mode = modeViewing
	i.ti.Blur()
	return i, emit(updateTodoMsg{id: i.todo.ID, body: body})
}

func (i todoItem) cancel() todoItem {
	i.mode = modeViewing
	i.edit.Reset()
	i.ti.SetValue(i.edit.Value())
	i.ti.Blur()
	return i
}

func (i todoItem) render(selected bool) string {
	boxStyled := mutedStyle.Render(checkbox(false))
	if i.completed.Value() {
		boxStyled = successStyle.Render(checkbox(true))
	}

	var body, actions string
	if i.editing() {
		body = i.ti.View()
		actions = button("submit", false, i.edit.Value() == "") + button("cancel", false, false)
	} else {
		body = i.todo.Todo
		if i.completed.Value() {
			body = doneStyle.Render(body)
		}
		actions = button("modify", false, false) + button("delete", false, false)
	}
	if !selected {
		actions = ""
	}

	line := fmt.Sprintf("%s %s", boxStyled, body)
	prefix := "  "
	if selected {
		prefix = selectedStyle.Render("> ")
	}
	return strings.TrimRight(prefix+line+"  "+actions, " ")
}

// Custom delegate to control how rows render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(todoItem)
	if !ok {
		return
	}
	fmt.Fprintln(w, it.render(index == m.Index()))
}
