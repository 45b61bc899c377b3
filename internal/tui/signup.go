package tui

import (
	"log/slog"
	"net/http"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// errEmailInUse is shown under the email field when sign-up answers 400.
const errEmailInUse = "already in use"

type signupPage struct {
	deps   Deps
	logger *slog.Logger
	form   credentialsForm
}

func newSignupPage(d Deps) page {
	return &signupPage{deps: d, logger: d.logger(), form: newCredentialsForm()}
}

func (m *signupPage) Init() tea.Cmd { return m.form.setFocus(focusEmail) }

func (m *signupPage) capturing() bool { return m.form.focus != focusSubmit }

func (m *signupPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case signupDoneMsg:
		if msg.err != nil {
			m.logger.Warn("signup failed", slog.String("error", msg.err.Error()))
			return m, nil
		}
		if msg.result.StatusCode == http.StatusBadRequest {
			m.form.emailErr = errEmailInUse
			m.form.passwordErr = ""
			return m, nil
		}
		m.form.reset()
		return m, navigate(routeSignin)

	case tea.KeyMsg:
		if key.Matches(msg, formKeys.Switch) {
			return m, navigate(routeSignin)
		}
	}

	form, cmd, submit := m.form.update(msg)
	m.form = form
	if submit {
		return m, signup(m.deps.Auth, m.form.credentials())
	}
	return m, cmd
}

func (m *signupPage) View() string {
	return m.form.view("Sign up", "sign up", "ctrl+n: go to sign in")
}
