package models

// Result is a normalized PayPal response. Fields is populated for Classic
// responses and Body for JSON responses.
type Result struct {
	Type    ResponseType
	Fields  *NVP
	Body    map[string]interface{}
	Code    string
	Message string
	Token   string
	// RedirectURL is set for REST payments awaiting buyer approval.
	RedirectURL string
	Cause       error
}

// Err converts a non-successful Result into the matching error kind.
// transportMessage replaces the generic message of a TransportFailure.
func (r *Result) Err(transportMessage string) error {
	switch r.Type {
	case Success:
		return nil
	case BusinessFailure:
		return &BusinessError{Code: r.Code, Message: r.Message}
	case RedirectRequired:
		return &RedirectError{
			BusinessError: BusinessError{Code: r.Code, Message: r.Message},
			Token:         r.Token,
			RedirectURL:   r.RedirectURL,
		}
	}
	message := transportMessage
	if message == "" {
		message = r.Message
	}
	return NewTransportError(message, r.Cause)
}
