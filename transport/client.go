package transport

import (
	"context"
	"net/http"
)

// Response is a completed HTTP exchange. Error statuses are still responses.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

// Authenticator applies credentials to an outgoing request
type Authenticator interface {
	Apply(req *http.Request)
}

// BasicAuth sends HTTP basic credentials
type BasicAuth struct {
	Username string
	Password string
}

// Apply sets the basic authorization header
func (a BasicAuth) Apply(req *http.Request) {
	req.SetBasicAuth(a.Username, a.Password)
}

// BearerAuth sends an OAuth access token
type BearerAuth struct {
	Type  string
	Token string
}

// Apply sets the bearer authorization header
func (a BearerAuth) Apply(req *http.Request) {
	tokenType := a.Type
	if tokenType == "" {
		tokenType = "Bearer"
	}
	req.Header.Set("Authorization", tokenType+" "+a.Token)
}

// RequestOptions holds the per request headers and credentials
type RequestOptions struct {
	Headers     map[string]string
	ContentType string
	Auth        Authenticator
}

// Client sends requests to PayPal. Connectivity problems are returned as
// errors, while HTTP error statuses are returned as responses so that the
// body can be inspected.
type Client interface {
	Get(ctx context.Context, url string, opts RequestOptions) (*Response, error)
	Post(ctx context.Context, url string, body []byte, opts RequestOptions) (*Response, error)
	Delete(ctx context.Context, url string, opts RequestOptions) (*Response, error)
}
