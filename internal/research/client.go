package research

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muurk/research-agent/internal/logging"
	"github.com/muurk/research-agent/internal/version"
)

const (
	// DefaultBaseURL is where the research service listens out of the box.
	DefaultBaseURL = "http://localhost:8000"

	// ResearchPath is the research endpoint, relative to the base URL.
	ResearchPath = "/api/research"

	// RequestIDHeader carries a per-request identifier for correlating logs.
	RequestIDHeader = "X-Request-ID"

	// maxResponseSize bounds how much of a response body is read.
	maxResponseSize = 16 << 20
)

// Client talks to a research service over HTTP.
//
// A research run generates personas, interviews each of them and then
// synthesizes the answers, which routinely takes minutes. The client
// therefore sets no timeout of its own and never retries: a retry would start
// a second, billable run. Callers bound a request through its context or with
// SetTimeout.
type Client struct {
	// BaseURL is the base URL of the service (e.g., "http://localhost:8000")
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client
}

// NewClient creates a new research client for baseURL. An empty baseURL
// selects DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
	}
}

// SetTimeout sets the HTTP request timeout. Zero means no timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// Endpoint returns the full research endpoint URL.
func (c *Client) Endpoint() string {
	return c.BaseURL + ResearchPath
}

// Ping performs a simple health check on the service.
// Returns nil if the service is reachable and answers 200.
func (c *Client) Ping(ctx context.Context) error {
	url := c.BaseURL + "/"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return NewNetworkError("failed to create ping request", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		classified := ClassifyNetworkError(err, url)
		classified.Message = "service unreachable"
		return classified
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))

	if resp.StatusCode != http.StatusOK {
		return NewHTTPError(resp.StatusCode, "")
	}

	return nil
}

// Research sends one research request and decodes the reply.
//
// A 2xx reply is returned as a Response even when it reports Success false;
// that is an application failure and the caller reads FailureReason. Every
// other outcome, including non-2xx statuses, is returned as an *Error.
func (c *Client) Research(ctx context.Context, params RequestParameters) (*Response, error) {
	body, err := NewRequestBody(params).Encode()
	if err != nil {
		return nil, NewParseError("failed to encode research request", err)
	}

	endpoint := c.Endpoint()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, NewNetworkError("failed to create research request", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("User-Agent", version.UserAgent())

	logging.LogHTTPRequest(requestID, req.Method, endpoint, len(body))
	logging.Debug("Research parameters",
		zap.String("request_id", requestID),
		zap.String("topic", params.Topic),
		zap.String("target_demographic", params.TargetDemographic),
		zap.Stringer("sample_size", params.SampleSize),
		zap.Stringer("num_questions", params.QuestionsPerInterview),
		logging.Credential("api_key", params.Credential),
	)

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		classified := ClassifyNetworkError(err, endpoint)
		logging.Warn("Research request failed",
			zap.String("request_id", requestID),
			zap.String("type", classified.Type.String()),
			zap.Error(err),
		)
		return nil, classified
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		classified := ClassifyNetworkError(err, endpoint)
		classified.Message = "failed to read research response"
		return nil, classified
	}

	logging.LogHTTPResponse(requestID, resp.StatusCode, data)
	logging.Debug("Research round trip",
		zap.String("request_id", requestID),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := NewHTTPError(resp.StatusCode, extractDetail(data))
		httpErr.Endpoint = endpoint
		return nil, httpErr
	}

	decoded, err := DecodeResponse(data)
	if err != nil {
		parseErr := NewParseError(fmt.Sprintf("invalid response from %s", endpoint), err)
		parseErr.Endpoint = endpoint
		return nil, parseErr
	}

	return decoded, nil
}
