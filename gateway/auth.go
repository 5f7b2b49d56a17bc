package gateway

import "syncode/types"

// Login exchanges credentials for the identity fields the session store keeps.
func (c *Client) Login(email, password string) (types.Session, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}

	var resp struct {
		UserID   string `json:"userId"`
		Username string `json:"username"`
		Token    string `json:"token"`
		Role     string `json:"role"`
	}
	if err := c.post("/login", payload, &resp); err != nil {
		return types.Session{}, err
	}

	return types.Session{
		UserID:   resp.UserID,
		Username: resp.Username,
		Token:    resp.Token,
		Role:     resp.Role,
	}, nil
}

// Signup creates an account. It does not log in; callers chain Login with the
// same credentials.
func (c *Client) Signup(username, email, password string) error {
	payload := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}
	return c.post("/signup", payload, nil)
}
