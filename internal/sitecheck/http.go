package sitecheck

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aikyam/site/pkg/logger"
)

// HTTPClient wraps http.Client with the site's base URL.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// getJSON performs a GET request and decodes a 200 response into v.
func (c *HTTPClient) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	if v == nil {
		_, err = io.Copy(io.Discard, resp.Body)
		return err
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// postJSON performs a POST request with a JSON body and returns the status
// and raw response.
func (c *HTTPClient) postJSON(ctx context.Context, path string, body any) (int, []byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	return resp.StatusCode, raw, err
}

// firstEvent reads the first server-sent event from path.
func (c *HTTPClient) firstEvent(ctx context.Context, path string) (string, string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return "", "", err
	}
	// The client timeout would cut the stream; ctx bounds it instead.
	stream := &http.Client{Transport: c.client.Transport}
	resp, err := stream.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		return "", "", fmt.Errorf("GET %s: content type %q", path, ct)
	}

	var event string
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		line := sc.Text()
		if name, ok := strings.CutPrefix(line, "event: "); ok {
			event = name
		}
		if data, ok := strings.CutPrefix(line, "data: "); ok {
			return event, data, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", "", err
	}
	return "", "", fmt.Errorf("GET %s: stream ended before an event", path)
}

// submitDonations posts donations from config.Workers goroutines.
func submitDonations(ctx context.Context, config *Config, client *HTTPClient, donations []Donation, stats *Stats) error {
	log := logger.Get()
	log.Info(ctx, "submitting donations",
		logger.Int("count", len(donations)),
		logger.Int("workers", config.Workers))

	var accepted, duplicate, rejected, failed, submitted atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(config.Workers, 1))
	for _, d := range donations {
		g.Go(func() error {
			outcome := submitSingleDonation(gctx, client, d)
			n := submitted.Add(1)
			switch outcome {
			case outcomeAccepted:
				accepted.Add(1)
			case outcomeDuplicate:
				duplicate.Add(1)
			case outcomeRejected:
				rejected.Add(1)
			default:
				failed.Add(1)
			}
			if config.Verbose && n%100 == 0 {
				log.Debug(gctx, "progress",
					logger.Int("submitted", int(n)),
					logger.Int("total", len(donations)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	stats.Submitted = int(submitted.Load())
	stats.Accepted = int(accepted.Load())
	stats.Duplicate = int(duplicate.Load())
	stats.Rejected = int(rejected.Load())
	stats.Failed = int(failed.Load())

	log.Info(ctx, "donation submission completed",
		logger.Int("accepted", stats.Accepted),
		logger.Int("duplicate", stats.Duplicate),
		logger.Int("rejected", stats.Rejected),
		logger.Int("failed", stats.Failed))
	return ctx.Err()
}

// submitSingleDonation posts one donation and classifies the response.
func submitSingleDonation(ctx context.Context, client *HTTPClient, d Donation) string {
	status, body, err := client.postJSON(ctx, "/api/donations", d)
	if err != nil {
		return outcomeFailed
	}
	switch status {
	case http.StatusAccepted:
		return outcomeAccepted
	case http.StatusOK:
		var ack Ack
		if err := json.Unmarshal(body, &ack); err == nil && ack.Duplicate {
			return outcomeDuplicate
		}
		return outcomeFailed
	case http.StatusBadRequest:
		return outcomeRejected
	default:
		return outcomeFailed
	}
}
