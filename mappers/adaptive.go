package mappers

import (
	"fmt"

	"github.com/companieshouse/paypal.api.ch.gov.uk/models"
)

type adaptiveResponse struct {
	ResponseEnvelope struct {
		Ack string `json:"ack"`
	} `json:"responseEnvelope"`
	Error []struct {
		ErrorID string `json:"errorId"`
		Message string `json:"message"`
	} `json:"error"`
}

// MapAdaptiveResponse parses an Adaptive Accounts JSON response body and
// classifies it by responseEnvelope.ack.
func MapAdaptiveResponse(body []byte, overrides map[string]string) *models.Result {
	var envelope adaptiveResponse
	var fields map[string]interface{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return transportFailure(fmt.Errorf("error parsing adaptive accounts response: [%w]", err))
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		return transportFailure(fmt.Errorf("error parsing adaptive accounts response: [%w]", err))
	}

	result := &models.Result{Body: fields}

	ack := envelope.ResponseEnvelope.Ack
	switch {
	case ack == AckSuccess || ack == AckSuccessWithWarning:
		result.Type = models.Success
	case ack == AckFailure && len(envelope.Error) > 0:
		result.Type = models.BusinessFailure
		result.Code = envelope.Error[0].ErrorID
		result.Message = ErrorMessage(result.Code, envelope.Error[0].Message, overrides)
	default:
		result.Type = models.TransportFailure
		result.Message = GenericErrorMessage
		result.Cause = fmt.Errorf("unrecognised adaptive accounts response with ack [%s]", ack)
	}
	return result
}

func transportFailure(cause error) *models.Result {
	return &models.Result{
		Type:    models.TransportFailure,
		Message: GenericErrorMessage,
		Cause:   cause,
	}
}
