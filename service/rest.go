package service

import (
	"context"
	"net/http"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/oklog/ulid/v2"
	"github.com/plutov/paypal/v4"

	"github.com/companieshouse/paypal.api.ch.gov.uk/config"
	"github.com/companieshouse/paypal.api.ch.gov.uk/mappers"
	"github.com/companieshouse/paypal.api.ch.gov.uk/models"
	"github.com/companieshouse/paypal.api.ch.gov.uk/transport"
)

const requestIDHeader = "PayPal-Request-Id"

// DoPayment creates a REST payment. Payments paid with a PayPal account
// return a *models.RedirectError carrying the approval URL.
func (s *PayPalService) DoPayment(ctx context.Context, payment *models.RestPayment) (map[string]interface{}, error) {
	started := time.Now()

	object, err := s.rest.BuildPayment(payment)
	if err != nil {
		return nil, s.rejected(doPaymentOp, started, err)
	}

	return s.postRest(ctx, doPaymentOp, started, s.Config.RestURL(config.PaymentPath), object)
}

// DoCreditCardPayment charges a card immediately through the REST API
func (s *PayPalService) DoCreditCardPayment(ctx context.Context, payment *models.RestPayment) (map[string]interface{}, error) {
	return s.doCardPayment(ctx, payment, models.IntentSale)
}

// DoAuthorizeCreditCardPayment authorizes a card payment to be captured later
func (s *PayPalService) DoAuthorizeCreditCardPayment(ctx context.Context, payment *models.RestPayment) (map[string]interface{}, error) {
	return s.doCardPayment(ctx, payment, models.IntentAuthorize)
}

func (s *PayPalService) doCardPayment(ctx context.Context, payment *models.RestPayment, intent string) (map[string]interface{}, error) {
	if payment == nil {
		return nil, s.rejected(doPaymentOp, time.Now(), models.NewValidationError("payment", "Valid payment must be provided"))
	}

	p := *payment
	payer := models.Payer{}
	if payment.Payer != nil {
		payer = *payment.Payer
	}
	payer.PaymentMethod = models.PaymentMethodCreditCard
	p.Payer = &payer
	p.Intent = intent

	return s.DoPayment(ctx, &p)
}

// StoreCreditCard stores a card in the PayPal vault
func (s *PayPalService) StoreCreditCard(ctx context.Context, card *models.CreditCard) (map[string]interface{}, error) {
	started := time.Now()

	object, err := s.rest.BuildCreditCard(card)
	if err != nil {
		return nil, s.rejected(storeCreditCardOp, started, err)
	}

	return s.postRest(ctx, storeCreditCardOp, started, s.Config.RestURL(config.VaultCreditCardPath), object)
}

// HateoasCreditCard follows a link returned for a vaulted card. Only GET and
// DELETE links are supported.
func (s *PayPalService) HateoasCreditCard(ctx context.Context, link paypal.Link) (map[string]interface{}, error) {
	started := time.Now()
	op := hateoasCreditCardOp

	if link.Href == "" {
		return nil, s.rejected(op, started, models.NewValidationError("href", "A valid link must be provided"))
	}
	if link.Method != http.MethodGet && link.Method != http.MethodDelete {
		return nil, s.rejected(op, started, models.NewValidationError("method", "There was an error using the credit card, method not found."))
	}

	opts, err := s.restOptions(ctx)
	if err != nil {
		return nil, s.rejected(op, started, err)
	}

	var resp *transport.Response
	if link.Method == http.MethodGet {
		resp, err = s.Transport.Get(ctx, link.Href, opts)
	} else {
		resp, err = s.Transport.Delete(ctx, link.Href, opts)
	}
	if err != nil {
		return nil, s.unreachable(op, started, err)
	}

	// deleting a card replies with an empty body
	if link.Method == http.MethodDelete && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		result := &models.Result{Type: models.Success, Body: map[string]interface{}{}}
		return result.Body, s.finish(op, started, result)
	}

	result := mappers.MapRestResponse(resp.Body)
	if err = s.finish(op, started, result); err != nil {
		return nil, err
	}
	return result.Body, nil
}

// postRest sends object to a REST endpoint with a fresh access token
func (s *PayPalService) postRest(ctx context.Context, op operation, started time.Time, url string, object interface{}) (map[string]interface{}, error) {
	body, err := s.rest.Encode(object)
	if err != nil {
		return nil, s.rejected(op, started, err)
	}

	opts, err := s.restOptions(ctx)
	if err != nil {
		return nil, s.rejected(op, started, err)
	}
	opts.ContentType = jsonContentType
	opts.Headers[requestIDHeader] = ulid.Make().String()

	log.Trace("sending rest request", log.Data{"operation": op.name, "request_id": opts.Headers[requestIDHeader]})

	resp, err := s.Transport.Post(ctx, url, body, opts)
	if err != nil {
		return nil, s.unreachable(op, started, err)
	}

	result := mappers.MapRestResponse(resp.Body)
	if err = s.finish(op, started, result); err != nil {
		return nil, err
	}
	return result.Body, nil
}

// restOptions acquires an access token for a single REST call
func (s *PayPalService) restOptions(ctx context.Context) (transport.RequestOptions, error) {
	token, err := s.TokenProvider.AccessToken(ctx)
	if err != nil {
		return transport.RequestOptions{}, err
	}

	return transport.RequestOptions{
		Headers: map[string]string{"Accept": jsonContentType},
		Auth:    transport.BearerAuth{Type: token.Type, Token: token.Token},
	}, nil
}
