package models

// ResponseType classifies a normalized PayPal response
type ResponseType int

const (
	// Success response
	Success ResponseType = iota

	// BusinessFailure response, PayPal reported a diagnosable failure
	BusinessFailure

	// RedirectRequired response, the buyer must return to PayPal
	RedirectRequired

	// TransportFailure response, PayPal was unreachable or the reply was unrecognised
	TransportFailure
)

var vals = [...]string{
	"success",
	"business-failure",
	"redirect-required",
	"transport-failure",
}

// String representation of `ResponseType`
func (a ResponseType) String() string {
	return vals[a]
}
