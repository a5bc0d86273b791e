// Package imagehost uploads event images to the external image host and
// returns their public URLs.
package imagehost

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/timeouts"
)

// maxImageBytes caps uploads at 8 MiB.
const maxImageBytes = 8 << 20

// Client posts images to the host's upload endpoint.
type Client struct {
	uploadURL string
	apiKey    string
	http      *http.Client
	log       *zap.Logger
}

func New(uploadURL, apiKey string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		uploadURL: uploadURL,
		apiKey:    apiKey,
		http:      &http.Client{Timeout: timeouts.Outbound()},
		log:       log,
	}
}

// Upload sends one image as a multipart form and returns its public URL.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if err := w.WriteField("key", c.apiKey); err != nil {
		return "", err
	}
	part, err := w.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	n, err := io.Copy(part, io.LimitReader(r, maxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if n > maxImageBytes {
		return "", fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warn("image host rejected upload",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", msg))
		return "", fmt.Errorf("image host returned status %d", resp.StatusCode)
	}

	var payload struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode image host response: %w", err)
	}
	if payload.Data.URL == "" {
		return "", fmt.Errorf("image host returned no URL")
	}
	return payload.Data.URL, nil
}
