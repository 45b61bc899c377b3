// Package tui is the interactive client: sign-in and sign-up forms and the
// todo list, routed through auth gates.
package tui

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// App is the root Bubble Tea model. It owns the current route and page and
// re-applies the gates whenever the auth flag changes.
type App struct {
	deps   Deps
	logger *slog.Logger

	route  route
	page   page
	authed bool

	size *tea.WindowSizeMsg
}

// NewApp builds the app on the route the gates admit for the current session.
func NewApp(d Deps) App {
	a := App{deps: d, logger: d.logger(), authed: d.Session.LoggedIn()}
	a.route = resolve(routeTodos, a.authed)
	a.page = routes[a.route].render(d)
	return a
}

func (a App) Init() tea.Cmd { return a.page.Init() }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q", "esc":
			if !a.page.capturing() {
				return a, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		a.size = &msg

	case navigateMsg:
		return a.navigate(msg.to)

	case authChangedMsg:
		a.authed = msg.loggedIn
		if resolve(a.route, a.authed) != a.route {
			return a.navigate(a.route)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.page, cmd = a.page.Update(msg)
	return a, cmd
}

// navigate mounts the page for to, or for wherever its gate redirects.
func (a App) navigate(to route) (tea.Model, tea.Cmd) {
	target := resolve(to, a.authed)
	if target != to {
		a.logger.Debug("gate redirect", slog.String("from", to.String()), slog.String("to", target.String()))
	}
	a.route = target
	a.page = routes[target].render(a.deps)

	cmds := []tea.Cmd{a.page.Init()}
	if a.size != nil {
		var cmd tea.Cmd
		a.page, cmd = a.page.Update(*a.size)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a App) View() string { return a.page.View() }

// Run starts the TUI. changes, when non-nil, delivers auth flag flips made by
// other processes.
func Run(ctx context.Context, d Deps, changes <-chan bool) error {
	applyColorProfile()
	p := tea.NewProgram(NewApp(d), tea.WithAltScreen(), tea.WithContext(ctx))
	if changes != nil {
		go func() {
			for v := range changes {
				p.Send(authChangedMsg{loggedIn: v})
			}
		}()
	}
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
