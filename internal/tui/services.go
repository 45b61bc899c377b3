package tui

import (
	"context"
	"log/slog"

	"github.com/Makepad-fr/tada-remote/internal/api"
	"github.com/Makepad-fr/tada-remote/internal/model"
)

// TodoService is the remote todo collection.
type TodoService interface {
	ListTodos(ctx context.Context) ([]model.Todo, error)
	CreateTodo(ctx context.Context, body model.CreateTodo) (model.Todo, error)
	UpdateTodo(ctx context.Context, id int, body model.UpdateTodo) (model.Todo, error)
	DeleteTodo(ctx context.Context, id int) error
}

// AuthService is the remote account API.
type AuthService interface {
	Signup(ctx context.Context, cred model.Credentials) (api.SignupResult, error)
	Signin(ctx context.Context, cred model.Credentials) (string, error)
}

// Session is the process-wide auth flag. Views read LoggedIn; only the
// commands in this package call Login and Logout.
type Session interface {
	LoggedIn() bool
	Login(token, email string) error
	Logout() error
}

// Deps are the collaborators every page is built from.
type Deps struct {
	Todos   TodoService
	Auth    AuthService
	Session Session
	Logger  *slog.Logger
}

func (d Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}
