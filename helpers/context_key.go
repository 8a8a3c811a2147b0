package helpers

import "context"

// ContextKey is a type for creating context keys
type ContextKey string

// ContextKeyClientIP is a specific key for identifying the buyer's "client_ip" in a request context
var ContextKeyClientIP = ContextKey("client_ip")

// WithClientIP returns a copy of ctx carrying the buyer's IP address
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ContextKeyClientIP, ip)
}

// ClientIPFromContext returns the IP address stored by WithClientIP
func ClientIPFromContext(ctx context.Context) (string, bool) {
	ip, ok := ctx.Value(ContextKeyClientIP).(string)
	return ip, ok && ip != ""
}
