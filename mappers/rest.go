package mappers

import (
	"fmt"
	"net/url"

	jsoniter "github.com/json-iterator/go"
	"github.com/plutov/paypal/v4"
	"github.com/samber/lo"

	"github.com/companieshouse/paypal.api.ch.gov.uk/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// REST resource states
const (
	StateOK       = "ok"
	StateApproved = "approved"
	StateCreated  = "created"
)

type restResponse struct {
	State   string        `json:"state"`
	Name    string        `json:"name"`
	Message string        `json:"message"`
	Links   []paypal.Link `json:"links"`
}

// MapRestResponse parses a REST API JSON response body and classifies it.
// A created payment with an approval link means the buyer must approve it
// on PayPal first.
func MapRestResponse(body []byte) *models.Result {
	var envelope restResponse
	var fields map[string]interface{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return transportFailure(fmt.Errorf("error parsing rest response: [%w]", err))
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		return transportFailure(fmt.Errorf("error parsing rest response: [%w]", err))
	}

	result := &models.Result{Body: fields}

	approval, hasApproval := lo.Find(envelope.Links, func(link paypal.Link) bool {
		return link.Rel == "approval_url"
	})

	switch {
	case envelope.State == StateOK || envelope.State == StateApproved:
		result.Type = models.Success
	case envelope.State == StateCreated && hasApproval:
		result.Type = models.RedirectRequired
		result.Message = "The payment must be approved on PayPal"
		result.RedirectURL = approval.Href
		if u, err := url.Parse(approval.Href); err == nil {
			result.Token = u.Query().Get("token")
		}
	case envelope.Name != "" && envelope.Message != "":
		result.Type = models.BusinessFailure
		result.Code = envelope.Name
		result.Message = envelope.Message
	default:
		result.Type = models.TransportFailure
		result.Message = GenericErrorMessage
		result.Cause = fmt.Errorf("unrecognised rest response with state [%s]", envelope.State)
	}
	return result
}
