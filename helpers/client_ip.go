package helpers

import (
	"context"
	"net"
	"net/http"
	"strings"
)

// ClientIPResolver supplies the IP address of the buyer making a payment
type ClientIPResolver interface {
	ClientIP(ctx context.Context) string
}

// StaticClientIP always resolves to the same address
type StaticClientIP string

// ClientIP returns the fixed address
func (s StaticClientIP) ClientIP(_ context.Context) string {
	return string(s)
}

// ContextClientIP resolves the address stored in the context by WithClientIP,
// falling back to Fallback when none is present.
type ContextClientIP struct {
	Fallback ClientIPResolver
}

// ClientIP returns the context address or the fallback
func (c ContextClientIP) ClientIP(ctx context.Context) string {
	if ip, ok := ClientIPFromContext(ctx); ok {
		return ip
	}
	if c.Fallback != nil {
		return c.Fallback.ClientIP(ctx)
	}
	return ""
}

// RequestClientIP works out the buyer's address from an inbound request:
// the first X-Forwarded-For hop, then X-Real-IP, then the remote address.
func RequestClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
