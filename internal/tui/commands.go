package tui

import (
	"context"
	"log/slog"

	"github.com/Makepad-fr/tada-remote/internal/api"
	"github.com/Makepad-fr/tada-remote/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// Messages produced by network commands.
type (
	todosLoadedMsg struct {
		todos []model.Todo
		err   error
	}

	// mutationDoneMsg reports a create, update or delete.
	mutationDoneMsg struct {
		op  string
		id  int
		err error
	}

	signupDoneMsg struct {
		result api.SignupResult
		err    error
	}

	signinDoneMsg struct {
		email string
		err   error
	}

	// authChangedMsg carries the new value of the auth flag.
	authChangedMsg struct {
		loggedIn bool
	}

	// navigateMsg asks the app to move to another route.
	navigateMsg struct {
		to route
	}
)

// Messages emitted by todo rows: the callbacks the list page reacts to.
type (
	updateTodoMsg struct {
		id   int
		body model.UpdateTodo
	}

	deleteTodoMsg struct {
		id int
	}
)

func navigate(to route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func fetchTodos(svc TodoService) tea.Cmd {
	return func() tea.Msg {
		todos, err := svc.ListTodos(context.Background())
		return todosLoadedMsg{todos: todos, err: err}
	}
}

func createTodo(svc TodoService, text string) tea.Cmd {
	return func() tea.Msg {
		_, err := svc.CreateTodo(context.Background(), model.CreateTodo{Todo: text})
		return mutationDoneMsg{op: "create", err: err}
	}
}

func updateTodo(svc TodoService, id int, body model.UpdateTodo) tea.Cmd {
	return func() tea.Msg {
		_, err := svc.UpdateTodo(context.Background(), id, body)
		return mutationDoneMsg{op: "update", id: id, err: err}
	}
}

func deleteTodo(svc TodoService, id int) tea.Cmd {
	return func() tea.Msg {
		err := svc.DeleteTodo(context.Background(), id)
		return mutationDoneMsg{op: "delete", id: id, err: err}
	}
}

func signup(svc AuthService, cred model.Credentials) tea.Cmd {
	return func() tea.Msg {
		res, err := svc.Signup(context.Background(), cred)
		return signupDoneMsg{result: res, err: err}
	}
}

// signin exchanges credentials for a token and stores it in the session.
func signin(svc AuthService, sess Session, cred model.Credentials) tea.Cmd {
	return func() tea.Msg {
		token, err := svc.Signin(context.Background(), cred)
		if err == nil {
			err = sess.Login(token, cred.Email)
		}
		return signinDoneMsg{email: cred.Email, err: err}
	}
}

func logout(sess Session, logger *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		if err := sess.Logout(); err != nil {
			logger.Warn("logout failed", slog.String("error", err.Error()))
		}
		return authChangedMsg{loggedIn: sess.LoggedIn()}
	}
}
