package views

import (
	"fmt"

	"syncode/gateway"
	"syncode/guard"
	"syncode/session"
)

// SignupView creates an account and immediately logs in with the same
// credentials.
type SignupView struct {
	Gateway *gateway.Client
	Session *session.Manager

	Username string
	Email    string
	Password string
}

func (v *SignupView) Submit() (guard.View, error) {
	if err := v.Gateway.Signup(v.Username, v.Email, v.Password); err != nil {
		return guard.ViewSignup, fmt.Errorf("Error creating account or logging in.")
	}

	// Auto-login after signup.
	s, err := v.Gateway.Login(v.Email, v.Password)
	if err != nil {
		return guard.ViewSignup, fmt.Errorf("Error creating account or logging in.")
	}
	if err := v.Session.Set(s); err != nil {
		return guard.ViewSignup, fmt.Errorf("failed to store session: %w", err)
	}

	v.Password = ""
	return guard.DefaultLanding(s.Role), nil
}
