package tui

import tea "github.com/charmbracelet/bubbletea"

type route int

const (
	routeSignin route = iota
	routeSignup
	routeTodos
)

func (r route) String() string {
	switch r {
	case routeSignin:
		return "/signin"
	case routeSignup:
		return "/signup"
	default:
		return "/"
	}
}

// page is a routed screen.
type page interface {
	Init() tea.Cmd
	Update(tea.Msg) (page, tea.Cmd)
	View() string
	// capturing is true while keystrokes are text entry, so q must not quit
	capturing() bool
}

// gate decides, from the auth flag alone, whether a page may render.
type gate func(authenticated bool) (ok bool, redirect route)

// withLoggedIn renders only for an authenticated session; everyone else goes to sign-in.
func withLoggedIn(authenticated bool) (bool, route) {
	if authenticated {
		return true, routeTodos
	}
	return false, routeSignin
}

// withNotLoggedIn renders only for anonymous users; a signed-in user goes to the list.
func withNotLoggedIn(authenticated bool) (bool, route) {
	if !authenticated {
		return true, routeSignin
	}
	return false, routeTodos
}

type routeDef struct {
	gate   gate
	render func(Deps) page
}

var routes = map[route]routeDef{
	routeSignin: {gate: withNotLoggedIn, render: newSigninPage},
	routeSignup: {gate: withNotLoggedIn, render: newSignupPage},
	routeTodos:  {gate: withLoggedIn, render: newTodoListPage},
}

// resolve follows gate redirects from r until a route admits the session.
func resolve(r route, authenticated bool) route {
	for n := len(routes); n > 0; n-- {
		ok, redirect := routes[r].gate(authenticated)
		if ok {
			return r
		}
		r = redirect
	}
	return r
}
