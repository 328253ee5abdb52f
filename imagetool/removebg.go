// Package imagetool wraps the background-removal collaborator. The service
// is a black box: it takes an image and returns a background-removed PNG, or
// fails.
package imagetool

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Client calls the remove.bg HTTP API.
type Client struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

func NewClient(apiKey, endpoint string) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: endpoint,
		http:     &http.Client{Timeout: 2 * time.Minute},
	}
}

// RemoveBackground sends the image to the API and returns the processed PNG.
func (c *Client) RemoveBackground(ctx context.Context, image io.Reader, filename string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("REMOVEBG_API_KEY is not set")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image_file", filename)
	if err != nil {
		return nil, fmt.Errorf("build request body: %v", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("copy image into request: %v", err)
	}
	if err := writer.WriteField("size", "auto"); err != nil {
		return nil, fmt.Errorf("build request body: %v", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize request body: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call background removal service: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("background removal service returned %d: %s", resp.StatusCode, snippet)
	}
	return io.ReadAll(resp.Body)
}
