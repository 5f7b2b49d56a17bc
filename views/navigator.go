package views

import (
	"log"

	"syncode/guard"
	"syncode/session"
	"syncode/types"
)

// Navigator owns the view tree and evaluates the route guard on every
// navigation. Controllers never navigate directly; they return the view they
// want and the client asks the navigator for it.
type Navigator struct {
	Session *session.Manager

	Welcome   *WelcomeView
	Login     *LoginView
	Signup    *SignupView
	Dashboard *DashboardView
	Profile   *ProfileView
	Admin     *AdminPanelView
	Chatbot   *ChatbotView

	current guard.View
}

func NewNavigator(sess *session.Manager) *Navigator {
	return &Navigator{
		Session: sess,
		current: guard.ViewWelcome,
	}
}

// Navigate requests a view and returns the one that actually renders after
// the guard has had its say.
func (n *Navigator) Navigate(view guard.View) guard.View {
	sess, err := n.Session.Get()
	if err != nil {
		log.Println("Error reading session:", err)
		sess = types.Session{}
	}

	n.current = guard.Resolve(sess, view)
	return n.current
}

func (n *Navigator) Current() guard.View {
	return n.current
}

// Reload resets to a fresh unauthenticated load. Wired to session.OnClear so
// logging out anywhere drops the whole view tree.
func (n *Navigator) Reload() {
	n.current = guard.ViewWelcome
}
