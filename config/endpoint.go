package config

import (
	"fmt"
	"strings"
)

// Family identifies one of the PayPal API families the client talks to.
type Family int

const (
	// Classic is the Classic NVP API
	Classic Family = iota

	// AdaptiveAccounts is the Adaptive Accounts API
	AdaptiveAccounts

	// REST is the REST API
	REST

	// Login is the PayPal login page used by Express Checkout
	Login
)

var familyNames = [...]string{
	"classic",
	"adaptive-accounts",
	"rest",
	"login",
}

// String representation of `Family`
func (f Family) String() string {
	if f < 0 || int(f) >= len(familyNames) {
		return fmt.Sprintf("family(%d)", int(f))
	}
	return familyNames[f]
}

// REST API paths, relative to the REST base URL.
const (
	OAuthTokenPath      = "/v1/oauth2/token"
	PaymentPath         = "/v1/payments/payment"
	VaultCreditCardPath = "/v1/vault/credit-card"
)

// Resolve returns the base URL for the given family in sandbox or live mode.
func (c *Config) Resolve(family Family, sandbox bool) string {
	switch family {
	case Classic:
		if sandbox {
			return c.SandboxClassicEndpoint
		}
		return c.LiveClassicEndpoint
	case AdaptiveAccounts:
		if sandbox {
			return c.SandboxAdaptiveAccountsEndpoint
		}
		return c.LiveAdaptiveAccountsEndpoint
	case REST:
		if sandbox {
			return c.SandboxRestEndpoint
		}
		return c.LiveRestEndpoint
	case Login:
		if sandbox {
			return c.SandboxLoginURI
		}
		return c.LiveLoginURI
	}
	return ""
}

// Endpoint returns the base URL for the given family using the configured
// sandbox mode.
func (c *Config) Endpoint(family Family) string {
	return c.Resolve(family, c.SandboxMode)
}

// RestURL joins a REST API path onto the REST base URL.
func (c *Config) RestURL(path string) string {
	return strings.TrimRight(c.Endpoint(REST), "/") + path
}

// AdaptiveAccountsURL appends an Adaptive Accounts operation name to its
// endpoint.
func (c *Config) AdaptiveAccountsURL(operation string) string {
	return c.Endpoint(AdaptiveAccounts) + operation
}

// ExpressCheckoutURL builds the login URL a buyer is redirected to for an
// Express Checkout token.
func (c *Config) ExpressCheckoutURL(token string) string {
	return fmt.Sprintf("%s?cmd=_express-checkout&token=%s", c.Endpoint(Login), token)
}
