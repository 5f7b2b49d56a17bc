package gateway

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"syncode/types"
)

func (c *Client) GetProfile(userID string) (types.Profile, error) {
	var profile types.Profile
	if err := c.get("/users/"+userID, &profile); err != nil {
		return types.Profile{}, err
	}
	return profile, nil
}

// UpdateProfile sends the profile fields as multipart form data, the one
// gateway operation that is not JSON-encoded. avatar may be nil when the user
// keeps their current picture.
func (c *Client) UpdateProfile(userID, username, email string, avatarName string, avatar io.Reader) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("username", username); err != nil {
		return fmt.Errorf("failed to write username field: %w", err)
	}
	if err := writer.WriteField("email", email); err != nil {
		return fmt.Errorf("failed to write email field: %w", err)
	}
	if avatar != nil {
		part, err := writer.CreateFormFile("avatar", avatarName)
		if err != nil {
			return fmt.Errorf("failed to create avatar part: %w", err)
		}
		if _, err := io.Copy(part, avatar); err != nil {
			return fmt.Errorf("failed to copy avatar data: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPut, c.BaseURL+"/users/"+userID, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req, nil)
}
