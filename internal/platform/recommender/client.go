// Package recommender calls the external recommendation scorer and
// normalizes its responses for the API's feed endpoint.
package recommender

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/timeouts"
)

var (
	// ErrUserUnknown is returned when the scorer has no data for the user.
	ErrUserUnknown = errors.New("recommender: unknown user")
	// ErrUnavailable is returned when the scorer is down, too slow, or the
	// circuit breaker is open.
	ErrUnavailable = errors.New("recommender: service unavailable")
)

// Client is an HTTP client for the scorer with a circuit breaker so a dead
// scorer fails fast instead of tying up request handlers.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]Recommendation]
	log     *zap.Logger
}

func New(baseURL string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeouts.Outbound()},
		log:     log,
	}
	c.breaker = gobreaker.NewCircuitBreaker[[]Recommendation](gobreaker.Settings{
		Name:        "recommender",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     20 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("recommender circuit breaker state change",
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
		IsSuccessful: func(err error) bool {
			// An unknown user is a healthy answer, not a scorer failure.
			return err == nil || errors.Is(err, ErrUserUnknown)
		},
	})
	return c
}

// Query carries the per-request scoring inputs.
type Query struct {
	Email string
	Limit int // zero means the scorer's default

	// Latitude/Longitude feed the scorer's proximity factor when set.
	Latitude  *float64
	Longitude *float64
}

// Recommendations fetches the scored feed for a user.
func (c *Client) Recommendations(ctx context.Context, userID string, query Query) ([]Recommendation, error) {
	recs, err := c.breaker.Execute(func() ([]Recommendation, error) {
		return c.fetch(ctx, userID, query)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit open", ErrUnavailable)
		}
		return nil, err
	}
	return recs, nil
}

func (c *Client) fetch(ctx context.Context, userID string, query Query) ([]Recommendation, error) {
	u := fmt.Sprintf("%s/recommendations/%s", c.baseURL, url.PathEscape(userID))
	q := url.Values{}
	if query.Email != "" {
		q.Set("user_email", query.Email)
	}
	if query.Limit > 0 {
		q.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Latitude != nil && query.Longitude != nil {
		q.Set("latitude", strconv.FormatFloat(*query.Latitude, 'f', -1, 64))
		q.Set("longitude", strconv.FormatFloat(*query.Longitude, 'f', -1, 64))
	}
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrUserUnknown
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warn("recommender returned an error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var payload struct {
		Recommendations []rawRecommendation `json:"recommendations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	recs := make([]Recommendation, 0, len(payload.Recommendations))
	for _, raw := range payload.Recommendations {
		recs = append(recs, shape(raw))
	}
	return recs, nil
}
