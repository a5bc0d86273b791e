// Package categorizer notifies the external categorization service that a
// new event needs categories assigned. The service categorizes the event
// and writes the result back through this API.
package categorizer

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/timeouts"
)

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func New(baseURL string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeouts.Outbound()},
		log:     log,
	}
}

// Categorize requests categorization of one event.
func (c *Client) Categorize(ctx context.Context, eventID string) error {
	u := fmt.Sprintf("%s/categorize/%s", c.baseURL, url.PathEscape(eventID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("categorize request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("categorizer returned status %d", resp.StatusCode)
	}
	return nil
}

// CategorizeAsync fires Categorize on a fresh goroutine with its own
// timeout, detached from the request that created the event. Failures are
// logged only; the event stays in its pre-categorized state until a later
// pass picks it up.
func (c *Client) CategorizeAsync(eventID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeouts.Outbound())
		defer cancel()
		if err := c.Categorize(ctx, eventID); err != nil {
			c.log.Warn("event categorization failed",
				zap.String("event_id", eventID),
				zap.Error(err))
		}
	}()
}
