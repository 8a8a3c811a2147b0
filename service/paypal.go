package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/companieshouse/chs.go/log"

	"github.com/companieshouse/paypal.api.ch.gov.uk/config"
	"github.com/companieshouse/paypal.api.ch.gov.uk/helpers"
	"github.com/companieshouse/paypal.api.ch.gov.uk/mappers"
	"github.com/companieshouse/paypal.api.ch.gov.uk/metrics"
	"github.com/companieshouse/paypal.api.ch.gov.uk/models"
	"github.com/companieshouse/paypal.api.ch.gov.uk/transformers"
	"github.com/companieshouse/paypal.api.ch.gov.uk/transport"
)

// outcome label recorded for requests rejected before reaching PayPal
const validationOutcome = "validation-error"

// PayPalService sends Classic, Adaptive Accounts and REST requests to PayPal
// and normalizes the replies
type PayPalService struct {
	Config        config.Config
	Transport     transport.Client
	IPResolver    helpers.ClientIPResolver
	TokenProvider TokenProvider

	nvp           transformers.NVPTransformer
	rest          transformers.RestTransformer
	redirectCodes map[string]struct{}
	overrides     map[string]string
}

// Option customises a PayPalService
type Option func(*PayPalService)

// WithMessageOverrides adds to or replaces the default buyer facing messages,
// keyed by PayPal error code
func WithMessageOverrides(overrides map[string]string) Option {
	return func(s *PayPalService) {
		for code, message := range overrides {
			s.overrides[code] = message
		}
	}
}

// WithTokenProvider replaces the OAuth token provider
func WithTokenProvider(provider TokenProvider) Option {
	return func(s *PayPalService) {
		s.TokenProvider = provider
	}
}

// NewPayPalService validates cfg and creates a PayPalService. The service
// keeps its own copy of the configuration. A nil ipResolver reads the client
// IP from the request context.
func NewPayPalService(cfg *config.Config, client transport.Client, ipResolver helpers.ClientIPResolver, opts ...Option) (*PayPalService, error) {
	if cfg == nil {
		return nil, &models.ConfigurationError{Fields: []string{"config"}}
	}
	if err := cfg.Validate(); err != nil {
		log.Error(fmt.Errorf("error validating paypal config: [%w]", err))
		return nil, err
	}
	if client == nil {
		return nil, &models.ConfigurationError{Fields: []string{"transport"}}
	}
	if ipResolver == nil {
		ipResolver = helpers.ContextClientIP{}
	}

	s := &PayPalService{
		Config:        *cfg,
		Transport:     client,
		IPResolver:    ipResolver,
		nvp:           transformers.NVPTransformer{Config: *cfg},
		redirectCodes: cfg.RedirectErrorCodes(),
		overrides:     make(map[string]string, len(models.DefaultMessageOverrides)),
	}
	for code, message := range models.DefaultMessageOverrides {
		s.overrides[code] = message
	}

	var provider TokenProvider = &ClientCredentialsTokenProvider{Config: *cfg, Transport: client}
	if cfg.OAuthTokenCache {
		provider = NewCachedTokenProvider(provider)
	}
	s.TokenProvider = provider

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// ExpressCheckoutURL returns the PayPal login URL for an Express Checkout token
func (s *PayPalService) ExpressCheckoutURL(token string) string {
	return s.Config.ExpressCheckoutURL(token)
}

// SetExpressCheckout starts an Express Checkout and returns the URL the buyer
// should be redirected to
func (s *PayPalService) SetExpressCheckout(ctx context.Context, order *models.Order) (string, error) {
	started := time.Now()

	nvps, err := s.nvp.BuildExpressCheckout(order)
	if err != nil {
		return "", s.rejected(setExpressCheckoutOp, started, err)
	}

	fields, err := s.callClassic(ctx, setExpressCheckoutOp, started, nvps, false)
	if err != nil {
		return "", err
	}

	return s.ExpressCheckoutURL(fields.Value("TOKEN")), nil
}

// GetExpressCheckoutDetails returns the buyer and transaction details for an
// Express Checkout token
func (s *PayPalService) GetExpressCheckoutDetails(ctx context.Context, token string) (*models.NVP, error) {
	started := time.Now()

	nvps, err := s.nvp.BuildExpressCheckoutDetails(token)
	if err != nil {
		return nil, s.rejected(getExpressCheckoutDetailsOp, started, err)
	}

	return s.callClassic(ctx, getExpressCheckoutDetailsOp, started, nvps, false)
}

// DoExpressCheckoutPayment completes an Express Checkout. A
// *models.RedirectError is returned when the buyer must go back to PayPal to
// choose another funding source.
func (s *PayPalService) DoExpressCheckoutPayment(ctx context.Context, order *models.Order, token, payerID string) (*models.NVP, error) {
	started := time.Now()

	nvps, err := s.nvp.BuildDoExpressCheckoutPayment(order, token, payerID)
	if err != nil {
		return nil, s.rejected(doExpressCheckoutPaymentOp, started, err)
	}

	return s.callClassic(ctx, doExpressCheckoutPaymentOp, started, nvps, true)
}

// DoDirectPayment charges a card through the Classic API
func (s *PayPalService) DoDirectPayment(ctx context.Context, payment *models.DirectPayment) (*models.NVP, error) {
	started := time.Now()

	nvps, err := s.nvp.BuildDirectPayment(payment, s.IPResolver.ClientIP(ctx))
	if err != nil {
		return nil, s.rejected(doDirectPaymentOp, started, err)
	}

	return s.callClassic(ctx, doDirectPaymentOp, started, nvps, false)
}

// RefundTransaction refunds all or part of a Classic transaction
func (s *PayPalService) RefundTransaction(ctx context.Context, refund *models.Refund) (*models.NVP, error) {
	started := time.Now()

	nvps, err := s.nvp.BuildRefund(refund)
	if err != nil {
		return nil, s.rejected(refundTransactionOp, started, err)
	}

	return s.callClassic(ctx, refundTransactionOp, started, nvps, false)
}

// GetVerifiedStatus looks up whether the PayPal account for email is verified
func (s *PayPalService) GetVerifiedStatus(ctx context.Context, email string) (map[string]interface{}, error) {
	started := time.Now()
	op := getVerifiedStatusOp

	nvps, err := s.nvp.BuildVerifiedStatus(email)
	if err != nil {
		return nil, s.rejected(op, started, err)
	}

	resp, err := s.Transport.Post(ctx, s.Config.AdaptiveAccountsURL(transformers.MethodGetVerifiedStatus), []byte(nvps.Encode()), transport.RequestOptions{
		ContentType: formContentType,
		Headers:     s.nvp.VerifiedStatusHeaders(),
	})
	if err != nil {
		return nil, s.unreachable(op, started, err)
	}

	result := mappers.MapAdaptiveResponse(resp.Body, s.overrides)
	if err = s.finish(op, started, result); err != nil {
		return nil, err
	}
	return result.Body, nil
}

// callClassic posts nvps to the Classic endpoint. Redirect outcomes are only
// reported when allowRedirect is set, otherwise they are business failures.
func (s *PayPalService) callClassic(ctx context.Context, op operation, started time.Time, nvps *models.NVP, allowRedirect bool) (*models.NVP, error) {
	log.Trace("sending classic request", log.Data{"operation": op.name, "method": nvps.Value("METHOD")})

	resp, err := s.Transport.Post(ctx, s.Config.Endpoint(config.Classic), []byte(nvps.Encode()), transport.RequestOptions{
		ContentType: formContentType,
	})
	if err != nil {
		return nil, s.unreachable(op, started, err)
	}

	var redirectCodes map[string]struct{}
	if allowRedirect {
		redirectCodes = s.redirectCodes
	}

	result := mappers.MapClassicResponse(string(resp.Body), redirectCodes, s.overrides)
	if result.Type == models.RedirectRequired {
		result.RedirectURL = s.ExpressCheckoutURL(result.Token)
	}

	if result.Type == models.Success && op.requiresToken && result.Token == "" {
		result.Type = models.TransportFailure
		result.Cause = fmt.Errorf("%s response did not include a token", op.name)
	}

	if err = s.finish(op, started, result); err != nil {
		return nil, err
	}
	return result.Fields, nil
}

// finish records the outcome of a call that reached PayPal and converts any
// failure into an error
func (s *PayPalService) finish(op operation, started time.Time, result *models.Result) error {
	metrics.RecordOutcome(op.name, result.Type.String(), started)

	logData := log.Data{
		"operation": op.name,
		"outcome":   result.Type.String(),
		"duration":  time.Since(started).String(),
	}

	switch result.Type {
	case models.Success:
		log.Info("paypal request succeeded", logData)
		return nil
	case models.TransportFailure:
		err := result.Err(op.responseMessage)
		log.Error(errors.Wrapf(result.Cause, "unrecognised paypal response for %s", op.name), logData)
		return err
	}

	logData["code"] = result.Code
	log.Info("paypal reported a failure", logData)
	return result.Err("")
}

// unreachable records a connectivity failure
func (s *PayPalService) unreachable(op operation, started time.Time, cause error) error {
	metrics.RecordOutcome(op.name, models.TransportFailure.String(), started)
	log.Error(fmt.Errorf("error calling paypal for %s: [%w]", op.name, cause), log.Data{"operation": op.name})
	return models.NewTransportError(op.connectMessage, cause)
}

// rejected records a request that failed before any call to PayPal
func (s *PayPalService) rejected(op operation, started time.Time, err error) error {
	outcome := validationOutcome
	if errors.Is(err, models.ErrTransport) {
		outcome = models.TransportFailure.String()
	}
	metrics.RecordOutcome(op.name, outcome, started)

	data := log.Data{"operation": op.name}
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		data["field"] = validationErr.Field
	}
	log.Error(fmt.Errorf("error preparing paypal request: [%w]", err), data)
	return err
}
