package guard

import "syncode/types"

// View names every navigable screen of the client.
type View string

const (
	ViewWelcome   View = "welcome"
	ViewLogin     View = "login"
	ViewSignup    View = "signup"
	ViewDashboard View = "dashboard"
	ViewProfile   View = "profile"
	ViewAdmin     View = "admin"
	ViewChatbot   View = "chatbot"
)

// Decision is the outcome of evaluating a navigation request.
type Decision int

const (
	// Allow lets the requested view render.
	Allow Decision = iota
	// RedirectEntry sends an anonymous visitor back to the entry view.
	RedirectEntry
	// RedirectDefault sends a logged-in user whose role does not match to
	// their own landing view, never to an error page.
	RedirectDefault
)

// requiredRoles maps each gated view to the role it demands. Views missing
// from the table are open to everyone.
var requiredRoles = map[View]string{
	ViewDashboard: types.RoleUser,
	ViewProfile:   types.RoleUser,
	ViewChatbot:   types.RoleUser,
	ViewAdmin:     types.RoleAdmin,
}

func RequiredRole(view View) string {
	return requiredRoles[view]
}

// Evaluate is a pure function of (session, requested view). It performs no
// I/O and runs on every navigation.
func Evaluate(sess types.Session, view View) Decision {
	required := RequiredRole(view)
	if required == "" {
		return Allow
	}
	if !sess.Present() {
		return RedirectEntry
	}
	if sess.Role != required {
		return RedirectDefault
	}
	return Allow
}

// DefaultLanding is the authenticated landing view for a role: the admin
// panel for admins, the dashboard for everyone else.
func DefaultLanding(role string) View {
	if role == types.RoleAdmin {
		return ViewAdmin
	}
	return ViewDashboard
}

// Resolve turns a navigation request into the view that will actually render.
func Resolve(sess types.Session, view View) View {
	switch Evaluate(sess, view) {
	case RedirectEntry:
		return ViewWelcome
	case RedirectDefault:
		return DefaultLanding(sess.Role)
	default:
		return view
	}
}
