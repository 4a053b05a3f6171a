package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Well-known view names.
const (
	LoginView         = "login"
	HomeView          = "home"
	CreateProfileView = "create-profile"
)

// View is a renderable screen. Protected views require an authenticated
// session at the moment of navigation.
type View struct {
	Name      string
	Protected bool
	Render    func(ctx context.Context) error
}

// Navigator routes between views, consulting the Guard on every navigation.
// A blocked navigation renders the login view instead; the protected view's
// renderer is never invoked.
type Navigator struct {
	guard *Guard
	views map[string]View
	log   zerolog.Logger
}

func NewNavigator(guard *Guard, log zerolog.Logger) *Navigator {
	return &Navigator{guard: guard, views: make(map[string]View), log: log}
}

// Register adds a view. Registering the same name twice replaces it.
func (n *Navigator) Register(v View) {
	n.views[v.Name] = v
}

// Go navigates to the named view and returns the name of the view actually
// rendered, which is the login view when the guard blocks access.
func (n *Navigator) Go(ctx context.Context, name string) (string, error) {
	view, ok := n.views[name]
	if !ok {
		return "", fmt.Errorf("unknown view %q", name)
	}

	if view.Protected && !n.guard.Allow() {
		n.log.Debug().Str("view", name).Msg("navigation blocked, redirecting to login")
		login, ok := n.views[LoginView]
		if !ok {
			return "", fmt.Errorf("login view not registered")
		}
		if login.Render != nil {
			if err := login.Render(ctx); err != nil {
				return LoginView, err
			}
		}
		return LoginView, nil
	}

	if view.Render != nil {
		if err := view.Render(ctx); err != nil {
			return view.Name, err
		}
	}
	return view.Name, nil
}
