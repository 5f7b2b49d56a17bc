package gateway

import "syncode/types"

// Admin endpoints. The backend enforces role=admin on these; the client only
// gates navigation.

func (c *Client) ListUsers() ([]types.AdminUser, error) {
	var users []types.AdminUser
	if err := c.get("/admin/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListAllSnippets returns every user's snippets.
func (c *Client) ListAllSnippets() ([]types.Snippet, error) {
	var snippets []types.Snippet
	if err := c.get("/snippets", &snippets); err != nil {
		return nil, err
	}
	return snippets, nil
}
