package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/companieshouse/paypal.api.ch.gov.uk/config"
)

// HTTPClient is the default Client, backed by go-retryablehttp
type HTTPClient struct {
	client *retryablehttp.Client
}

// NewHTTPClient creates an HTTPClient using the retry count and timeout from
// cfg. A zero retry count sends every request exactly once.
func NewHTTPClient(cfg *config.Config) *HTTPClient {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.TransportRetryMax
	rc.HTTPClient.Timeout = time.Duration(cfg.TransportTimeoutSec) * time.Second
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = leveledLogger{}

	return &HTTPClient{client: rc}
}

// Get sends a GET request
func (c *HTTPClient) Get(ctx context.Context, url string, opts RequestOptions) (*Response, error) {
	return c.send(ctx, http.MethodGet, url, nil, opts)
}

// Post sends a POST request with the given body
func (c *HTTPClient) Post(ctx context.Context, url string, body []byte, opts RequestOptions) (*Response, error) {
	return c.send(ctx, http.MethodPost, url, body, opts)
}

// Delete sends a DELETE request
func (c *HTTPClient) Delete(ctx context.Context, url string, opts RequestOptions) (*Response, error) {
	return c.send(ctx, http.MethodDelete, url, nil, opts)
}

func (c *HTTPClient) send(ctx context.Context, method, url string, body []byte, opts RequestOptions) (*Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("error creating %s request: [%w]", method, err)
	}

	if opts.ContentType != "" {
		req.Header.Set("Content-Type", opts.ContentType)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	if opts.Auth != nil {
		opts.Auth.Apply(req.Request)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending %s request: [%w]", method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: [%w]", err)
	}

	headers := make(map[string]string)
	for k, v := range resp.Header {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		Headers:    headers,
	}, nil
}
