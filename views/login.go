package views

import (
	"fmt"

	"syncode/gateway"
	"syncode/guard"
	"syncode/session"
)

// LoginView holds the login form state and exchanges credentials for a
// session via the gateway.
type LoginView struct {
	Gateway *gateway.Client
	Session *session.Manager

	Email    string
	Password string
}

// Submit logs in, stores the identity fields and returns the landing view for
// the response's role: admins go to the admin panel, everyone else to the
// dashboard.
func (v *LoginView) Submit() (guard.View, error) {
	s, err := v.Gateway.Login(v.Email, v.Password)
	if err != nil {
		return guard.ViewLogin, fmt.Errorf("Login failed. Check your credentials.")
	}

	if err := v.Session.Set(s); err != nil {
		return guard.ViewLogin, fmt.Errorf("failed to store session: %w", err)
	}

	v.Password = ""
	return guard.DefaultLanding(s.Role), nil
}
