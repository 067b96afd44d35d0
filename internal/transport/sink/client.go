package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/reshetovitsme/offer-listener/internal/modules/offer/domain"
	"github.com/reshetovitsme/offer-listener/internal/shared/errors"
	"github.com/samber/oops"
)

const maxErrorBody = 1 << 10

// Client posts offers to the ingest endpoint, one request per offer and no retries.
type Client struct {
	url        string
	token      string
	httpClient *http.Client
}

// New creates a new ingest endpoint client
func New(url, token string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Submit(ctx context.Context, offer *domain.Offer) error {
	body, err := json.Marshal(offer)
	if err != nil {
		return oops.With("url", offer.URL, "context", "failed to marshal offer").Wrap(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return oops.With("endpoint", c.url, "context", "failed to build request").Wrap(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return oops.With("endpoint", c.url, "context", "request failed").Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return oops.
			With("endpoint", c.url, "status", resp.StatusCode, "response", string(bytes.TrimSpace(detail))).
			Wrapf(errors.ErrUnexpectedStatus, "ingest endpoint returned %d", resp.StatusCode)
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// LogSink stands in for the endpoint when none is configured: offers are
// logged and dropped.
type LogSink struct{}

func (LogSink) Submit(_ context.Context, offer *domain.Offer) error {
	slog.Warn("Ingest URL not configured, offer only logged", "url", offer.URL, "source", offer.SourceChannel)
	return nil
}
