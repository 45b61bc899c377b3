package tui

import (
	"errors"
	"log/slog"

	"github.com/Makepad-fr/tada-remote/internal/api"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const errBadCredentials = "invalid email or password"

type signinPage struct {
	deps   Deps
	logger *slog.Logger
	form   credentialsForm
}

func newSigninPage(d Deps) page {
	return &signinPage{deps: d, logger: d.logger(), form: newCredentialsForm()}
}

func (m *signinPage) Init() tea.Cmd { return m.form.setFocus(focusEmail) }

func (m *signinPage) capturing() bool { return m.form.focus != focusSubmit }

func (m *signinPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case signinDoneMsg:
		if msg.err != nil {
			var se *api.StatusError
			if errors.As(msg.err, &se) {
				m.form.emailErr = errBadCredentials
				return m, nil
			}
			m.logger.Warn("signin failed", slog.String("error", msg.err.Error()))
			return m, nil
		}
		m.logger.Info("signed in", slog.String("email", msg.email))
		m.form.reset()
		return m, emit(authChangedMsg{loggedIn: m.deps.Session.LoggedIn()})

	case tea.KeyMsg:
		if key.Matches(msg, formKeys.Switch) {
			return m, navigate(routeSignup)
		}
	}

	form, cmd, submit := m.form.update(msg)
	m.form = form
	if submit {
		return m, signin(m.deps.Auth, m.deps.Session, m.form.credentials())
	}
	return m, cmd
}

func (m *signinPage) View() string {
	return m.form.view("Sign in", "sign in", "ctrl+n: go to sign up")
}
