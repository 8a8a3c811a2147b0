// Package config defines the environment variable and command-line flags
// supported by the PayPal client and includes default values for particular
// fields.
package config

import (
	"strings"
	"sync"

	"github.com/companieshouse/gofigure"
	"github.com/go-playground/validator/v10"
	"github.com/plutov/paypal/v4"

	"github.com/companieshouse/paypal.api.ch.gov.uk/models"
)

var cfg *Config
var mtx sync.Mutex

// Config defines the configuration options for the PayPal client.
type Config struct {
	NVPUsername     string `env:"PAYPAL_NVP_USERNAME"      flag:"paypal-nvp-username"      flagDesc:"Classic API username"          validate:"required"`
	NVPPassword     string `env:"PAYPAL_NVP_PASSWORD"      flag:"paypal-nvp-password"      flagDesc:"Classic API password"          validate:"required"`
	NVPSignature    string `env:"PAYPAL_NVP_SIGNATURE"     flag:"paypal-nvp-signature"     flagDesc:"Classic API signature"         validate:"required"`
	AdaptiveAppID   string `env:"PAYPAL_ADAPTIVE_APP_ID"   flag:"paypal-adaptive-app-id"   flagDesc:"Adaptive Accounts application ID"`
	AdaptiveUserID  string `env:"PAYPAL_ADAPTIVE_USER_ID"  flag:"paypal-adaptive-user-id"  flagDesc:"Adaptive Accounts user ID"`
	OAuthClientID   string `env:"PAYPAL_CLIENT_ID"         flag:"paypal-client-id"         flagDesc:"REST API OAuth client ID"      validate:"required"`
	OAuthSecret     string `env:"PAYPAL_SECRET"            flag:"paypal-secret"            flagDesc:"REST API OAuth client secret"  validate:"required"`
	ClassicVersion  string `env:"PAYPAL_CLASSIC_VERSION"   flag:"paypal-classic-version"   flagDesc:"Classic API version"           validate:"required"`
	SandboxMode     bool   `env:"PAYPAL_SANDBOX_MODE"      flag:"paypal-sandbox-mode"      flagDesc:"Use the PayPal sandbox"`
	DefaultCurrency string `env:"PAYPAL_DEFAULT_CURRENCY"  flag:"paypal-default-currency"  flagDesc:"Currency used when none is supplied" validate:"required,len=3"`
	// RedirectErrors is a comma separated list of Classic error codes that
	// require the buyer to be sent back to PayPal.
	RedirectErrors string `env:"PAYPAL_REDIRECT_ERRORS" flag:"paypal-redirect-errors" flagDesc:"Classic error codes that require a redirect back to PayPal"`

	SandboxClassicEndpoint          string `env:"PAYPAL_SANDBOX_CLASSIC_ENDPOINT"           flag:"paypal-sandbox-classic-endpoint"           flagDesc:"Sandbox Classic NVP endpoint"        validate:"required,url"`
	LiveClassicEndpoint             string `env:"PAYPAL_LIVE_CLASSIC_ENDPOINT"              flag:"paypal-live-classic-endpoint"              flagDesc:"Live Classic NVP endpoint"           validate:"required,url"`
	SandboxAdaptiveAccountsEndpoint string `env:"PAYPAL_SANDBOX_ADAPTIVE_ACCOUNTS_ENDPOINT" flag:"paypal-sandbox-adaptive-accounts-endpoint" flagDesc:"Sandbox Adaptive Accounts endpoint"  validate:"required,url"`
	LiveAdaptiveAccountsEndpoint    string `env:"PAYPAL_LIVE_ADAPTIVE_ACCOUNTS_ENDPOINT"    flag:"paypal-live-adaptive-accounts-endpoint"    flagDesc:"Live Adaptive Accounts endpoint"     validate:"required,url"`
	SandboxRestEndpoint             string `env:"PAYPAL_SANDBOX_REST_ENDPOINT"              flag:"paypal-sandbox-rest-endpoint"              flagDesc:"Sandbox REST API base URL"           validate:"required,url"`
	LiveRestEndpoint                string `env:"PAYPAL_LIVE_REST_ENDPOINT"                 flag:"paypal-live-rest-endpoint"                 flagDesc:"Live REST API base URL"              validate:"required,url"`
	SandboxLoginURI                 string `env:"PAYPAL_SANDBOX_LOGIN_URI"                  flag:"paypal-sandbox-login-uri"                  flagDesc:"Sandbox login URI for Express Checkout" validate:"required,url"`
	LiveLoginURI                    string `env:"PAYPAL_LIVE_LOGIN_URI"                     flag:"paypal-live-login-uri"                     flagDesc:"Live login URI for Express Checkout"    validate:"required,url"`

	OAuthTokenCache     bool `env:"PAYPAL_OAUTH_TOKEN_CACHE"     flag:"paypal-oauth-token-cache"     flagDesc:"Reuse OAuth access tokens until they expire"`
	TransportRetryMax   int  `env:"PAYPAL_TRANSPORT_RETRY_MAX"   flag:"paypal-transport-retry-max"   flagDesc:"Retries performed by the HTTP transport" validate:"min=0"`
	TransportTimeoutSec int  `env:"PAYPAL_TRANSPORT_TIMEOUT_SEC" flag:"paypal-transport-timeout-sec" flagDesc:"HTTP transport timeout in seconds"      validate:"min=0"`
}

// DefaultConfig returns a pointer to a Config instance that has been populated
// with default values.
func DefaultConfig() *Config {
	return &Config{
		ClassicVersion:  "104.0",
		SandboxMode:     true,
		DefaultCurrency: "GBP",
		RedirectErrors:  "10486",

		SandboxClassicEndpoint:          "https://api-3t.sandbox.paypal.com/nvp",
		LiveClassicEndpoint:             "https://api-3t.paypal.com/nvp",
		SandboxAdaptiveAccountsEndpoint: "https://svcs.sandbox.paypal.com/AdaptiveAccounts/",
		LiveAdaptiveAccountsEndpoint:    "https://svcs.paypal.com/AdaptiveAccounts/",
		SandboxRestEndpoint:             paypal.APIBaseSandBox,
		LiveRestEndpoint:                paypal.APIBaseLive,
		SandboxLoginURI:                 "https://www.sandbox.paypal.com/cgi-bin/webscr",
		LiveLoginURI:                    "https://www.paypal.com/cgi-bin/webscr",

		TransportTimeoutSec: 30,
	}
}

// Get returns a pointer to a Config instance that has been populated with
// values provided by the environment or command-line flags, or with default
// values if none are provided.
func Get() (*Config, error) {
	mtx.Lock()
	defer mtx.Unlock()

	if cfg != nil {
		return cfg, nil
	}

	cfg = DefaultConfig()

	err := gofigure.Gofigure(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every credential and endpoint the client relies on is
// present. The returned error is a *models.ConfigurationError naming each
// offending field.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return &models.ConfigurationError{Fields: []string{"config"}}
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, fe.Field())
	}
	return &models.ConfigurationError{Fields: fields}
}

// RedirectErrorCodes returns the configured redirect error codes as a set.
func (c *Config) RedirectErrorCodes() map[string]struct{} {
	codes := make(map[string]struct{})
	for _, code := range strings.Split(c.RedirectErrors, ",") {
		code = strings.TrimSpace(code)
		if code != "" {
			codes[code] = struct{}{}
		}
	}
	return codes
}
