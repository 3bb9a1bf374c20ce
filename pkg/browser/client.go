// Package browser talks to the external headless-browser service that turns
// an assembled markup document into a raster image.
package browser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/tidwall/gjson"
)

var UserAgent = "chatshot/0.1"

type Client struct {
	URL string

	httpClient *http.Client
}

// Options are forwarded to the service verbatim; zero values are omitted and
// left to the service's own defaults.
type Options struct {
	Width  int
	Height int
}

func NewClient(url string) *Client {
	return &Client{
		URL: url,
		httpClient: &http.Client{
			Transport: &http.Transport{
				ForceAttemptHTTP2:   true,
				MaxConnsPerHost:     0,
				MaxIdleConns:        0,
				MaxIdleConnsPerHost: 256,
			},
		},
	}
}

type renderRequest struct {
	HTML   string `json:"html"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Render posts the document and returns the image bytes plus the sniffed file
// extension ("png", "jpg", ...). Service failures are surfaced with the
// service's own reason; there is no retry, that policy belongs to the caller.
func (c *Client) Render(ctx context.Context, html string, opts Options) ([]byte, string, error) {
	payload, err := json.Marshal(renderRequest{HTML: html, Width: opts.Width, Height: opts.Height})
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode render request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, "", fmt.Errorf("failed to build render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("render service unreachable: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read render response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		reason := gjson.GetBytes(body, "error").String()
		if reason == "" {
			reason = http.StatusText(resp.StatusCode)
		}
		return nil, "", fmt.Errorf("render service failed: %s", reason)
	}

	mime := mimetype.Detect(body)
	if !strings.HasPrefix(mime.String(), "image/") {
		return nil, "", fmt.Errorf("render service returned %s, not an image", mime.String())
	}

	return body, strings.TrimPrefix(mime.Extension(), "."), nil
}
