package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"syncode/session"
)

// Client is the single HTTP channel to the backend. Every call is fire-once:
// no retry, no backoff, no client-side timeout. A bearer token is attached
// whenever the session store holds one.
type Client struct {
	BaseURL string
	Session *session.Manager

	httpClient *http.Client
}

func New(baseURL string, sess *session.Manager) *Client {
	return &Client{
		BaseURL:    baseURL,
		Session:    sess,
		httpClient: &http.Client{},
	}
}

// GatewayError is a non-2xx response from the backend.
type GatewayError struct {
	Status  int
	Message string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway: %d %s", e.Status, e.Message)
}

// doJSON makes a request with an optional JSON payload and decodes the JSON
// response into out (when out is non-nil).
func (c *Client) doJSON(method, path string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.send(req, out)
}

// send attaches the bearer token, fires the request once and decodes the
// response. Non-2xx responses become a *GatewayError.
func (c *Client) send(req *http.Request, out interface{}) error {
	if c.Session != nil {
		s, err := c.Session.Get()
		if err != nil {
			return fmt.Errorf("failed to read session: %w", err)
		}
		if s.Present() {
			req.Header.Set("Authorization", "Bearer "+s.Token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &GatewayError{Status: resp.StatusCode, Message: errorMessage(resp)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// errorMessage pulls the backend's {"error": "..."} body, falling back to the
// HTTP status text.
func errorMessage(resp *http.Response) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return http.StatusText(resp.StatusCode)
}

func (c *Client) get(path string, out interface{}) error {
	return c.doJSON(http.MethodGet, path, nil, out)
}

func (c *Client) post(path string, payload, out interface{}) error {
	return c.doJSON(http.MethodPost, path, payload, out)
}

func (c *Client) put(path string, payload, out interface{}) error {
	return c.doJSON(http.MethodPut, path, payload, out)
}

func (c *Client) delete(path string) error {
	return c.doJSON(http.MethodDelete, path, nil, nil)
}
