// internal/infra/practicum/client.go
package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

// Client implements homework.Source on top of the homework statuses REST API.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	logger   *logrus.Entry
}

// NewClient creates a client with a bounded per-request timeout.
func NewClient(endpoint, token string, timeout time.Duration, logger *logrus.Entry) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		http:     &http.Client{Timeout: timeout},
		logger:   logger.WithField("component", "practicum_client"),
	}
}

// FetchStatuses requests homework statuses changed since fromDate and returns the
// decoded body without interpreting it.
func (c *Client) FetchStatuses(ctx context.Context, fromDate int64) (any, error) {
	endpoint, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, &homework.TransportError{Cause: fmt.Errorf("invalid endpoint: %w", err)}
	}
	q := endpoint.Query()
	q.Set("from_date", strconv.FormatInt(fromDate, 10))
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, &homework.TransportError{Cause: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	logCtx := c.logger.WithField("from_date", fromDate)
	resp, err := c.http.Do(req)
	if err != nil {
		logCtx.WithError(err).Error("Request to the API failed")
		return nil, &homework.TransportError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		logCtx.WithField("status_code", resp.StatusCode).Error("API answered with a non-OK status")
		return nil, &homework.TransportError{StatusCode: resp.StatusCode}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var body any
	if err := dec.Decode(&body); err != nil {
		logCtx.WithError(err).Error("Could not decode API response")
		return nil, &homework.TransportError{Cause: fmt.Errorf("decode response: %w", err)}
	}

	logCtx.Info("API answer: OK")
	return body, nil
}
