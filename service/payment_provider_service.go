package service

import (
	"context"

	"github.com/plutov/paypal/v4"

	"github.com/companieshouse/paypal.api.ch.gov.uk/models"
)

// PaymentProviderService is an Interface for all the requests made to PayPal
type PaymentProviderService interface {
	SetExpressCheckout(ctx context.Context, order *models.Order) (string, error)
	GetExpressCheckoutDetails(ctx context.Context, token string) (*models.NVP, error)
	DoExpressCheckoutPayment(ctx context.Context, order *models.Order, token, payerID string) (*models.NVP, error)
	DoDirectPayment(ctx context.Context, payment *models.DirectPayment) (*models.NVP, error)
	RefundTransaction(ctx context.Context, refund *models.Refund) (*models.NVP, error)
	GetVerifiedStatus(ctx context.Context, email string) (map[string]interface{}, error)
	DoPayment(ctx context.Context, payment *models.RestPayment) (map[string]interface{}, error)
	DoCreditCardPayment(ctx context.Context, payment *models.RestPayment) (map[string]interface{}, error)
	DoAuthorizeCreditCardPayment(ctx context.Context, payment *models.RestPayment) (map[string]interface{}, error)
	StoreCreditCard(ctx context.Context, card *models.CreditCard) (map[string]interface{}, error)
	HateoasCreditCard(ctx context.Context, link paypal.Link) (map[string]interface{}, error)
	ExpressCheckoutURL(token string) string
}

var _ PaymentProviderService = (*PayPalService)(nil)
