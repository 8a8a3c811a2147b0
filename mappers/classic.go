package mappers

import (
	"fmt"

	"github.com/companieshouse/paypal.api.ch.gov.uk/models"
)

// GenericErrorMessage is reported when PayPal's reply has no recognisable shape
const GenericErrorMessage = "There was an error while connecting to Paypal"

// Classic ACK values
const (
	AckSuccess            = "Success"
	AckSuccessWithWarning = "SuccessWithWarning"
	AckFailure            = "Failure"
)

// MapClassicResponse parses a URL encoded Classic API response body and
// classifies it. A failure whose code is in redirectCodes and which carries a
// TOKEN sends the buyer back to PayPal.
func MapClassicResponse(body string, redirectCodes map[string]struct{}, overrides map[string]string) *models.Result {
	fields, err := models.ParseNVP(body)
	if err != nil {
		return transportFailure(fmt.Errorf("error parsing classic response: [%w]", err))
	}

	result := &models.Result{Fields: fields, Token: fields.Value("TOKEN")}

	ack := fields.Value("ACK")
	code, hasCode := fields.Get("L_ERRORCODE0")
	longMessage, hasMessage := fields.Get("L_LONGMESSAGE0")

	switch {
	case ack == AckSuccess || ack == AckSuccessWithWarning:
		result.Type = models.Success
	case ack == AckFailure && (hasCode || hasMessage):
		result.Type = models.BusinessFailure
		if longMessage == "" {
			longMessage = fields.Value("L_SHORTMESSAGE0")
		}
		result.Code = code
		result.Message = ErrorMessage(code, longMessage, overrides)
		if _, redirect := redirectCodes[code]; redirect && result.Token != "" {
			result.Type = models.RedirectRequired
		}
	default:
		result.Type = models.TransportFailure
		result.Message = GenericErrorMessage
		result.Cause = fmt.Errorf("unrecognised classic response with ACK [%s]", ack)
	}
	return result
}
