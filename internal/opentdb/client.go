package opentdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Fetcher defines the interface for retrieving trivia questions.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	FetchQuestions(ctx context.Context, query Query) (Response, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the Open Trivia DB HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	// DefaultBaseURL is the public Open Trivia DB endpoint.
	DefaultBaseURL   = "https://opentdb.com"
	defaultUserAgent = "opentrivia/0.1"
	requestTimeout   = 10 * time.Second

	// errorHostPrefix and errorHostSuffix wrap the real host when error
	// injection is on. The .invalid TLD is reserved and never resolves.
	errorHostPrefix = "garbage"
	errorHostSuffix = ".invalid"
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized endpoint the client talks to.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// Query configures /api.php requests.
type Query struct {
	Amount     int
	CauseError bool
	RequestID  string
}

// FetchQuestions retrieves a batch of trivia questions.
func (c *Client) FetchQuestions(ctx context.Context, query Query) (Response, error) {
	if c == nil {
		return Response{}, fmt.Errorf("client is nil")
	}
	reqURL := c.QuestionsURL(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Response{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if id := strings.TrimSpace(query.RequestID); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{}, &StatusError{Code: resp.StatusCode, Text: http.StatusText(resp.StatusCode)}
	}

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Response{}, fmt.Errorf("decode response: %w", err)
	}
	return payload, nil
}

// QuestionsURL builds the request URL for query, corrupting the host when
// error injection is requested.
func (c *Client) QuestionsURL(query Query) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/api.php"
	values := url.Values{}
	values.Set("amount", strconv.Itoa(query.Amount))
	u.RawQuery = values.Encode()
	if query.CauseError {
		host := errorHostPrefix + u.Hostname() + errorHostSuffix
		if port := u.Port(); port != "" {
			host = net.JoinHostPort(host, port)
		}
		u.Host = host
	}
	return u.String()
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Code int
	Text string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api returned status %d %s", e.Code, e.Text)
}

// Reason returns the HTTP reason phrase, falling back to the code.
func (e *StatusError) Reason() string {
	if text := strings.TrimSpace(e.Text); text != "" {
		return text
	}
	return "status " + strconv.Itoa(e.Code)
}

// Reason condenses a fetch error into the short text shown after
// "ERROR - " in the status line.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Reason()
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "lookup " + dnsErr.Name + ": " + dnsErr.Err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	if errors.Is(err, context.Canceled) {
		return "request cancelled"
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return "request timed out"
		}
		return urlErr.Err.Error()
	}
	return err.Error()
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
