package sensors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rileyhilliard/sensordash/internal/errors"
	"github.com/rileyhilliard/sensordash/internal/logger"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 1 << 20

// RequestIDHeader carries a per-request UUID so server and dashboard logs line up.
const RequestIDHeader = "X-Request-ID"

// Source produces readings. *Client is the HTTP implementation; tests use fakes.
type Source interface {
	Fetch(ctx context.Context) (*Readings, error)
}

// ServerError is returned when the server answers with a non-2xx status.
type ServerError struct {
	StatusCode int
	Status     string
	RequestID  string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server responded %s (request %s)", e.Status, e.RequestID)
}

// Client fetches readings from a sensor server over HTTP.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	log       logger.Logger
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for per-request diagnostics.
func WithLogger(l logger.Logger) ClientOption {
	return func(c *Client) { c.log = l }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a client for the server at baseURL (e.g. http://pi:5000).
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{},
		userAgent: "sensordash",
		log:       logger.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the full readings endpoint URL.
func (c *Client) URL() string {
	return c.baseURL + Endpoint
}

// Fetch performs GET /api/data and decodes the body. Transport failures,
// non-2xx statuses and undecodable bodies all come back as ErrFetch errors;
// a status failure additionally unwraps to *ServerError.
func (c *Client) Fetch(ctx context.Context) (*Readings, error) {
	reqID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(), nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFetch,
			"Couldn't build request for "+c.URL(),
			"Check server.url in your config")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	c.log.Debug("GET %s request=%s", c.URL(), reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFetch,
			"Couldn't reach the sensor server",
			"Is the server running and reachable at "+c.baseURL+"?")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, errors.WrapWithCode(&ServerError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			RequestID:  reqID,
		}, errors.ErrFetch,
			"Server Error",
			"Check the sensor server logs for request "+reqID)
	}

	var readings Readings
	if err := decodeReadings(io.LimitReader(resp.Body, maxBodyBytes), &readings); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFetch,
			"Server sent a response that isn't readings JSON",
			`Expected {"temperature": [...], "humidity": [...]}`)
	}

	c.log.Debug("GET %s request=%s status=%d samples=%d/%d took=%s",
		c.URL(), reqID, resp.StatusCode, len(readings.Temperature), len(readings.Humidity),
		time.Since(start).Round(time.Millisecond))

	return &readings, nil
}

// decodeReadings decodes exactly one JSON value; anything after it other
// than whitespace is an error.
func decodeReadings(r io.Reader, readings *Readings) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(readings); err != nil {
		return err
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		return fmt.Errorf("unexpected data after the readings object")
	}
	return nil
}
