package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/su-perfume/storefront/internal/core/port"
)

var _ port.ImageUploader = (*Client)(nil)

// UploadImage posts the image as a multipart form to the upload endpoint
// and returns the hosted image URL.
func (c *Client) UploadImage(
	ctx context.Context, token, filename string, data []byte,
) (string, error) {
	const op = "restapi.UploadImage"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if _, err := fw.Write(data); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/upload", &buf,
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("%s: %w", op, apiError(resp))
	}

	var up UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&up); err != nil {
		return "", fmt.Errorf("%s: failed to parse response: %w", op, err)
	}
	return up.ImageURL, nil
}
