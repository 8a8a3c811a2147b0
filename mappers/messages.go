package mappers

// ErrorMessage returns the override for code when one exists, otherwise
// PayPal's own long message.
func ErrorMessage(code, longMessage string, overrides map[string]string) string {
	if msg, ok := overrides[code]; ok && msg != "" {
		return msg
	}
	return longMessage
}
