package fixtures

import (
	"fmt"

	"github.com/companieshouse/paypal.api.ch.gov.uk/config"
	"github.com/companieshouse/paypal.api.ch.gov.uk/models"
)

// Canned PayPal response bodies
const (
	ClassicCheckoutSuccess  = "TOKEN=EC%2d123&TIMESTAMP=2013%2d07%2d04T10%3a00%3a00Z&CORRELATIONID=abc123&ACK=Success&VERSION=104%2e0&BUILD=6680107"
	ClassicPaymentSuccess   = "ACK=Success&TRANSACTIONID=8JS21354KK1234567&AMT=10%2e00&CURRENCYCODE=GBP"
	ClassicRedirectFailure  = "TOKEN=EC%2d123&ACK=Failure&L_ERRORCODE0=10486&L_SHORTMESSAGE0=Transaction%20cannot%20complete&L_LONGMESSAGE0=This%20transaction%20couldn%27t%20be%20completed%2e"
	ClassicFailureNoToken   = "ACK=Failure&L_ERRORCODE0=10486&L_LONGMESSAGE0=x"
	ClassicSecurityFailure  = "ACK=Failure&L_ERRORCODE0=10002&L_SHORTMESSAGE0=Security%20error&L_LONGMESSAGE0=Security%20header%20is%20not%20valid"
	ClassicWarning          = "ACK=SuccessWithWarning&TOKEN=EC%2d456&L_ERRORCODE0=11452&L_LONGMESSAGE0=Merchant%20not%20enabled"
	ClassicUnrecognised     = "<html><body>Service Unavailable</body></html>"
	AdaptiveVerifiedSuccess = `{"responseEnvelope":{"ack":"Success","timestamp":"2013-07-04T10:00:00.000-07:00"},"accountStatus":"VERIFIED","userInfo":{"emailAddress":"buyer@example.com"}}`
	AdaptiveVerifiedFailure = `{"responseEnvelope":{"ack":"Failure"},"error":[{"errorId":"580023","message":"Cannot determine PayPal Account status"}]}`
	RestPaymentApproved     = `{"id":"PAY-17S8410768582940NKEE66EQ","state":"approved","intent":"sale"}`
	RestCreditCardStored    = `{"id":"CARD-5BT058015C739554AKE2GCEI","state":"ok","type":"visa","number":"xxxxxxxxxxxx0331"}`
	RestValidationError     = `{"name":"VALIDATION_ERROR","message":"Invalid request","debug_id":"1234"}`
	RestPaymentCreated      = `{"id":"PAY-1","state":"created","links":[{"href":"https://api.sandbox.paypal.com/v1/payments/payment/PAY-1","rel":"self","method":"GET"},{"href":"https://www.sandbox.paypal.com/cgi-bin/webscr?cmd=_express-checkout&token=EC-60U79048BN7719609","rel":"approval_url","method":"REDIRECT"}]}`
	RestOAuthToken          = `{"scope":"https://api.paypal.com/v1/payments/.*","access_token":"A015QQ","token_type":"Bearer","app_id":"APP-80W284485P519543T","expires_in":28800}`
)

// GetConfig returns a valid sandbox configuration with test credentials
func GetConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.NVPUsername = "api-user"
	cfg.NVPPassword = "api-password"
	cfg.NVPSignature = "api-signature"
	cfg.AdaptiveAppID = "APP-80W284485P519543T"
	cfg.OAuthClientID = "client-id"
	cfg.OAuthSecret = "client-secret"
	return cfg
}

// GetOrder returns a valid order with itemCount line items of 5.00 each,
// with 1.00 tax and 0.50 shipping
func GetOrder(itemCount int) *models.Order {
	order := &models.Order{
		ReturnURL:   "https://www.example.com/return",
		CancelURL:   "https://www.example.com/cancel",
		Currency:    "GBP",
		Description: "Late filing penalty",
		Custom:      "payment-session-1",
	}
	for i := 0; i < itemCount; i++ {
		order.Items = append(order.Items, models.OrderItem{
			Name:        fmt.Sprintf("Item %d", i),
			Description: fmt.Sprintf("Description %d", i),
			Subtotal:    "5.00",
			Tax:         "1.00",
			Shipping:    "0.50",
		})
	}
	return order
}

// GetDirectPayment returns a valid card payment
func GetDirectPayment() *models.DirectPayment {
	return &models.DirectPayment{
		Card:   "4008 0687 0641 8697",
		CVV:    " 123 ",
		Amount: "10.00",
		Expiry: &models.Expiry{Month: 5, Year: 2015},
	}
}

// GetRefund returns a refund of the given type
func GetRefund(refundType string) *models.Refund {
	return &models.Refund{
		TransactionID: " 8JS21354KK1234567 ",
		Amount:        "4.50",
		Type:          refundType,
		Reference:     "OR04238448",
		Note:          "Refund for duplicate payment",
	}
}

// GetCreditCard returns a valid card for the REST API
func GetCreditCard() *models.CreditCard {
	return &models.CreditCard{
		Number:      "4417119669820331",
		Type:        "visa",
		ExpireMonth: "11",
		ExpireYear:  "2018",
		CVV2:        "874",
		FirstName:   "Betsy",
		LastName:    "Buyer",
	}
}

// GetRestPayment returns a valid REST payment for paymentMethod
func GetRestPayment(paymentMethod string) *models.RestPayment {
	payment := &models.RestPayment{
		Intent: models.IntentSale,
		Payer: &models.Payer{
			PaymentMethod: paymentMethod,
		},
		Transactions: []models.Transaction{
			{
				Amount:      &models.Amount{Total: "7.47", Currency: "GBP"},
				Description: "This is the payment transaction description.",
				ItemList: []models.Item{
					{Quantity: "1", Name: "item", Price: "7.47", Currency: "GBP", SKU: "item-1"},
				},
			},
		},
	}
	if paymentMethod == models.PaymentMethodCreditCard {
		payment.Payer.FundingInstruments = []models.FundingInstrument{
			{CreditCard: GetCreditCard()},
		}
	}
	return payment
}

// GetRedirectURLs returns return and cancel urls
func GetRedirectURLs() *models.RedirectURLs {
	return &models.RedirectURLs{
		ReturnURL: "https://www.example.com/return",
		CancelURL: "https://www.example.com/cancel",
	}
}
