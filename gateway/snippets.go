package gateway

import "syncode/types"

// SaveSnippet persists the current editor contents. Ownership is fixed by the
// backend from the bearer token.
func (c *Client) SaveSnippet(language, code string) (types.Snippet, error) {
	payload := map[string]string{
		"language": language,
		"code":     code,
	}

	var saved types.Snippet
	if err := c.post("/save", payload, &saved); err != nil {
		return types.Snippet{}, err
	}
	return saved, nil
}

// ListSnippets returns the user's snippets in backend-reported order. The
// pinned-first partition is applied by the views, not here.
func (c *Client) ListSnippets(userID string) ([]types.Snippet, error) {
	var snippets []types.Snippet
	if err := c.get("/snippets/"+userID, &snippets); err != nil {
		return nil, err
	}
	return snippets, nil
}

// UpdateSnippet replaces the full record; pin toggling goes through here.
func (c *Client) UpdateSnippet(id string, sn types.Snippet) (types.Snippet, error) {
	var updated types.Snippet
	if err := c.put("/snippets/"+id, sn, &updated); err != nil {
		return types.Snippet{}, err
	}
	return updated, nil
}

func (c *Client) DeleteSnippet(id string) error {
	return c.delete("/snippets/" + id)
}
