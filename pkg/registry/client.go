package registry

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the ClinicalTrials.gov v2 API endpoint.
	DefaultBaseURL = "https://clinicaltrials.gov/api/v2"

	defaultUserAgent = "ClinicalTrials-MCP-Server/1.0 (https://github.com/aafjes/clinicaltrials-mcp-server)"
	requestTimeout   = 30 * time.Second
)

var (
	newHTTPClientFunc = func() *http.Client {
		t := &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			// MaxIdleConnsPerHost does not work as expected
			// https://github.com/golang/go/issues/13801
			// Improve connection re-use
			MaxIdleConns:          256,
			MaxIdleConnsPerHost:   128,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
		}
		return &http.Client{Transport: t, Timeout: requestTimeout}
	}
)

// Client talks to the ClinicalTrials.gov v2 API. One instance is created at startup
// and shared by all invocations; the underlying connection pool is safe for
// concurrent use.
type Client struct {
	baseURL   string
	userAgent string
	cl        *http.Client
}

// ClientOption configures the registry client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// NewClient creates a registry client with a shared connection-pooled transport.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: defaultUserAgent,
		cl:        newHTTPClientFunc(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchStudies queries /studies with the encoded search parameters.
func (c *Client) SearchStudies(ctx context.Context, req *SearchRequest) (Document, error) {
	return c.get(ctx, "/studies", req.Values())
}

// GetStudy fetches a single study record from /studies/{id}.
func (c *Client) GetStudy(ctx context.Context, req *StudyRequest) (Document, error) {
	return c.get(ctx, "/studies/"+url.PathEscape(req.NCTID), req.Values())
}

// GetStatistics fetches the aggregate statistics document from /stats.
func (c *Client) GetStatistics(ctx context.Context, req *StatsRequest) (Document, error) {
	return c.get(ctx, "/stats", req.Values())
}

// Close releases the client's idle connections. Call once at process shutdown.
func (c *Client) Close() {
	c.cl.CloseIdleConnections()
}

// get issues a single GET against the given resource path. 2xx responses decode into
// a Document; non-2xx responses become a StatusError carrying the raw body; transport
// faults become an UnavailableError. No retries at this layer.
func (c *Client) get(ctx context.Context, path string, query url.Values) (Document, error) {
	reqURL, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("failed to build request URL for %s: %w", path, err)
	}
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", path, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.cl.Do(req)
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode body into json for url %s: %w", req.URL.RequestURI(), err)
	}
	return doc, nil
}
