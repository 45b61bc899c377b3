package tui

import (
	"context"
	"errors"
	"sync"

	"github.com/Makepad-fr/tada-remote/internal/api"
	"github.com/Makepad-fr/tada-remote/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

var errBoom = errors.New("boom")

type updateCall struct {
	id   int
	body model.UpdateTodo
}

type fakeTodos struct {
	mu      sync.Mutex
	todos   []model.Todo
	lists   int
	creates []model.CreateTodo
	updates []updateCall
	deletes []int
	err     error
}

func (f *fakeTodos) ListTodos(ctx context.Context) ([]model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	out := make([]model.Todo, len(f.todos))
	copy(out, f.todos)
	return out, nil
}

func (f *fakeTodos) CreateTodo(ctx context.Context, body model.CreateTodo) (model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, body)
	if f.err != nil {
		return model.Todo{}, f.err
	}
	t := model.Todo{ID: len(f.todos) + 1, Todo: body.Todo}
	f.todos = append(f.todos, t)
	return t, nil
}

func (f *fakeTodos) UpdateTodo(ctx context.Context, id int, body model.UpdateTodo) (model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, updateCall{id: id, body: body})
	if f.err != nil {
		return model.Todo{}, f.err
	}
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.todos[i].Todo = body.Todo
			f.todos[i].IsCompleted = body.IsCompleted
			return f.todos[i], nil
		}
	}
	return model.Todo{}, api.ErrNotFound
}

func (f *fakeTodos) DeleteTodo(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	if f.err != nil {
		return f.err
	}
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return nil
		}
	}
	return api.ErrNotFound
}

type fakeAuth struct {
	signups      []model.Credentials
	signupResult api.SignupResult
	signupErr    error

	token     string
	signinErr error
}

func (f *fakeAuth) Signup(ctx context.Context, cred model.Credentials) (api.SignupResult, error) {
	f.signups = append(f.signups, cred)
	return f.signupResult, f.signupErr
}

func (f *fakeAuth) Signin(ctx context.Context, cred model.Credentials) (string, error) {
	if f.signinErr != nil {
		return "", f.signinErr
	}
	return f.token, nil
}

type fakeSession struct {
	token string
}

func (f *fakeSession) LoggedIn() bool { return f.token != "" }

func (f *fakeSession) Login(token, email string) error {
	f.token = token
	return nil
}

func (f *fakeSession) Logout() error {
	f.token = ""
	return nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyAltEnter = tea.KeyMsg{Type: tea.KeyEnter, Alt: true}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keySpace    = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyClear    = tea.KeyMsg{Type: tea.KeyCtrlU}
	keyCtrlT    = tea.KeyMsg{Type: tea.KeyCtrlT}
	keyCtrlN    = tea.KeyMsg{Type: tea.KeyCtrlN}
	keyDown     = tea.KeyMsg{Type: tea.KeyDown}
)

// exec runs cmd and returns its message, or nil for a nil cmd.
func exec(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
