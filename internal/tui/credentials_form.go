package tui

import (
	"regexp"
	"strings"

	"github.com/Makepad-fr/tada-remote/internal/input"
	"github.com/Makepad-fr/tada-remote/internal/model"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	emailPattern    = regexp.MustCompile(`[a-z0-9]+@`)
	passwordPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]{8,}`)
)

// ValidEmail reports whether s has a lowercase alphanumeric run right before an '@'.
func ValidEmail(s string) bool { return emailPattern.MatchString(s) }

// ValidPassword reports whether s holds 8+ characters from letters, digits and ._%+-
func ValidPassword(s string) bool { return passwordPattern.MatchString(s) }

const (
	focusEmail = iota
	focusPassword
	focusSubmit
	focusCount
)

// credentialsForm is the email/password form shared by sign-up and sign-in.
type credentialsForm struct {
	email    input.Input[string]
	password input.Input[string]

	emailTI    textinput.Model
	passwordTI textinput.Model
	focus      int

	emailErr    string
	passwordErr string
}

func newCredentialsForm() credentialsForm {
	e := textinput.New()
	e.Prompt = ""
	e.Placeholder = "you@example.com"
	e.CharLimit = 254

	p := textinput.New()
	p.Prompt = ""
	p.Placeholder = "8+ characters"
	p.EchoMode = textinput.EchoPassword
	p.EchoCharacter = '•'
	p.CharLimit = 128

	f := credentialsForm{
		email:      input.New(""),
		password:   input.New(""),
		emailTI:    e,
		passwordTI: p,
	}
	f.setFocus(focusEmail)
	return f
}

func (f credentialsForm) valid() bool {
	return ValidEmail(f.email.Value()) && ValidPassword(f.password.Value())
}

func (f credentialsForm) credentials() model.Credentials {
	return model.Credentials{Email: f.email.Value(), Password: f.password.Value()}
}

func (f *credentialsForm) setFocus(i int) tea.Cmd {
	f.focus = (i + focusCount) % focusCount
	f.emailTI.Blur()
	f.passwordTI.Blur()
	switch f.focus {
	case focusEmail:
		return f.emailTI.Focus()
	case focusPassword:
		return f.passwordTI.Focus()
	}
	return nil
}

// reset empties both fields and clears errors.
func (f *credentialsForm) reset() {
	f.email.Reset()
	f.password.Reset()
	f.emailTI.SetValue(f.email.Value())
	f.passwordTI.SetValue(f.password.Value())
	f.emailErr, f.passwordErr = "", ""
	f.setFocus(focusEmail)
}

// update handles navigation and typing. submit is true when the user asked to
// submit a valid form.
func (f credentialsForm) update(msg tea.Msg) (credentialsForm, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(km, formKeys.Next):
			return f, f.setFocus(f.focus + 1), false
		case key.Matches(km, formKeys.Prev):
			return f, f.setFocus(f.focus - 1), false
		case key.Matches(km, formKeys.Submit):
			if f.valid() {
				return f, nil, true
			}
			if f.focus != focusSubmit {
				return f, f.setFocus(f.focus + 1), false
			}
			return f, nil, false
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case focusEmail:
		f.emailTI, cmd = f.emailTI.Update(msg)
		if v := f.emailTI.Value(); v != f.email.Value() {
			f.email.Handle(input.ChangeEvent{Value: v})
			f.emailErr = ""
		}
	case focusPassword:
		f.passwordTI, cmd = f.passwordTI.Update(msg)
		if v := f.passwordTI.Value(); v != f.password.Value() {
			f.password.Handle(input.ChangeEvent{Value: v})
			f.passwordErr = ""
		}
	}
	return f, cmd, false
}

func (f credentialsForm) view(title, submitLabel, switchHint string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(switchHint))
	b.WriteString("\n\n")

	b.WriteString(fieldLabel("email", f.focus == focusEmail))
	b.WriteString("\n")
	b.WriteString(f.emailTI.View())
	b.WriteString("\n\n")
	b.WriteString(fieldLabel("password", f.focus == focusPassword))
	b.WriteString("\n")
	b.WriteString(f.passwordTI.View())
	if f.passwordErr != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(f.passwordErr))
	}
	b.WriteString("\n\n")

	b.WriteString(button(submitLabel, f.focus == focusSubmit, !f.valid()))
	if f.emailErr != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(f.emailErr))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab next • enter submit • ctrl+n switch • ctrl+c quit"))
	return panelString(b.String())
}

func fieldLabel(label string, focused bool) string {
	if focused {
		return accentStyle.Render(label)
	}
	return mutedStyle.Render(label)
}
