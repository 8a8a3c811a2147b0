package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/companieshouse/chs.go/log"
	jsoniter "github.com/json-iterator/go"
	"github.com/patrickmn/go-cache"
	"github.com/plutov/paypal/v4"

	"github.com/companieshouse/paypal.api.ch.gov.uk/config"
	"github.com/companieshouse/paypal.api.ch.gov.uk/metrics"
	"github.com/companieshouse/paypal.api.ch.gov.uk/models"
	"github.com/companieshouse/paypal.api.ch.gov.uk/transport"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	formContentType = "application/x-www-form-urlencoded"
	jsonContentType = "application/json"

	tokenCacheKey = "access_token"

	// tokens are dropped from the cache this long before PayPal expires them
	tokenExpiryMargin = time.Minute
)

// TokenProvider obtains an OAuth access token for the REST API
type TokenProvider interface {
	AccessToken(ctx context.Context) (*paypal.TokenResponse, error)
}

// ClientCredentialsTokenProvider requests a new token with the client
// credentials grant every time it is asked
type ClientCredentialsTokenProvider struct {
	Config    config.Config
	Transport transport.Client
}

// AccessToken requests a token from the REST token endpoint
func (p *ClientCredentialsTokenProvider) AccessToken(ctx context.Context) (*paypal.TokenResponse, error) {
	resp, err := p.Transport.Post(ctx, p.Config.RestURL(config.OAuthTokenPath), []byte("grant_type=client_credentials"), transport.RequestOptions{
		ContentType: formContentType,
		Headers:     map[string]string{"Accept": jsonContentType},
		Auth:        transport.BasicAuth{Username: p.Config.OAuthClientID, Password: p.Config.OAuthSecret},
	})
	if err != nil {
		return nil, models.NewTransportError(oauthErrorMessage, fmt.Errorf("error requesting oauth token: [%w]", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, models.NewTransportError(oauthErrorMessage, fmt.Errorf("oauth token request returned status [%d]", resp.StatusCode))
	}

	var token paypal.TokenResponse
	if err = json.Unmarshal(resp.Body, &token); err != nil {
		return nil, models.NewTransportError(oauthErrorMessage, fmt.Errorf("error parsing oauth token response: [%w]", err))
	}

	if token.Token == "" || token.Type == "" {
		return nil, models.NewTransportError(oauthErrorMessage, fmt.Errorf("oauth token response is missing the access token or token type"))
	}

	return &token, nil
}

// CachedTokenProvider reuses tokens from another provider until shortly
// before they expire
type CachedTokenProvider struct {
	Provider TokenProvider
	cache    *cache.Cache
}

// NewCachedTokenProvider wraps provider with an in memory token cache
func NewCachedTokenProvider(provider TokenProvider) *CachedTokenProvider {
	return &CachedTokenProvider{
		Provider: provider,
		cache:    cache.New(cache.NoExpiration, 10*time.Minute),
	}
}

// AccessToken returns the cached token or fetches a new one
func (p *CachedTokenProvider) AccessToken(ctx context.Context) (*paypal.TokenResponse, error) {
	if cached, found := p.cache.Get(tokenCacheKey); found {
		metrics.RecordTokenCache(true)
		return cached.(*paypal.TokenResponse), nil
	}
	metrics.RecordTokenCache(false)

	token, err := p.Provider.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(token.ExpiresIn)*time.Second - tokenExpiryMargin
	if ttl > 0 {
		p.cache.Set(tokenCacheKey, token, ttl)
	} else {
		log.Debug("oauth token expires too soon to cache", log.Data{"expires_in": int64(token.ExpiresIn)})
	}

	return token, nil
}

// Flush drops any cached token
func (p *CachedTokenProvider) Flush() {
	p.cache.Flush()
}
