package gateway

// AddSnippetEmbedding registers a freshly saved snippet with the chat
// assistant backend. Save-then-embed is at-least-attempt: a failure here does
// not roll the save back, callers just surface the error.
func (c *Client) AddSnippetEmbedding(snippetID, code string) error {
	payload := map[string]string{
		"snippetId": snippetID,
		"code":      code,
	}
	return c.post("/chatbot/addSnippet", payload, nil)
}
