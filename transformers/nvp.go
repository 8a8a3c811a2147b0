package transformers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/companieshouse/paypal.api.ch.gov.uk/config"
	"github.com/companieshouse/paypal.api.ch.gov.uk/models"
)

// Classic API methods
const (
	MethodSetExpressCheckout        = "SetExpressCheckout"
	MethodGetExpressCheckoutDetails = "GetExpressCheckoutDetails"
	MethodDoExpressCheckoutPayment  = "DoExpressCheckoutPayment"
	MethodDoDirectPayment           = "DoDirectPayment"
	MethodRefundTransaction         = "RefundTransaction"
	MethodGetVerifiedStatus         = "GetVerifiedStatus"
)

// maxLineItems is the most line items PayPal accepts per payment request.
// Larger orders are sent as aggregate amounts only.
const maxLineItems = 10

// NVPTransformer builds Classic API name-value pairs from caller descriptors
type NVPTransformer struct {
	Config config.Config
}

// BuildExpressCheckout transforms an order into SetExpressCheckout NVPs
func (t NVPTransformer) BuildExpressCheckout(order *models.Order) (*models.NVP, error) {
	nvps, err := t.checkoutNVPs(order)
	if err != nil {
		return nil, err
	}
	return t.withCredentials(nvps, MethodSetExpressCheckout), nil
}

// BuildDoExpressCheckoutPayment transforms an order, plus the token and payer
// returned by PayPal, into DoExpressCheckoutPayment NVPs
func (t NVPTransformer) BuildDoExpressCheckoutPayment(order *models.Order, token, payerID string) (*models.NVP, error) {
	nvps, err := t.checkoutNVPs(order)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, models.NewValidationError("token", "A valid express checkout token must be provided")
	}
	if payerID == "" {
		return nil, models.NewValidationError("payerId", "A valid payer ID must be provided")
	}

	nvps.Set("TOKEN", token)
	nvps.Set("PAYERID", payerID)
	return t.withCredentials(nvps, MethodDoExpressCheckoutPayment), nil
}

// BuildExpressCheckoutDetails builds GetExpressCheckoutDetails NVPs for token
func (t NVPTransformer) BuildExpressCheckoutDetails(token string) (*models.NVP, error) {
	if token == "" {
		return nil, models.NewValidationError("token", "A valid express checkout token must be provided")
	}
	nvps := models.NewNVP()
	nvps.Set("TOKEN", token)
	return t.withCredentials(nvps, MethodGetExpressCheckoutDetails), nil
}

func (t NVPTransformer) checkoutNVPs(order *models.Order) (*models.NVP, error) {
	if order == nil {
		return nil, models.NewValidationError("order", "You must pass a valid order")
	}
	if err := validateStruct(order); err != nil {
		return nil, err
	}

	nvps := models.NewNVP()
	nvps.Set("PAYMENTREQUEST_0_PAYMENTACTION", "Sale")
	nvps.Set("RETURNURL", order.ReturnURL)
	nvps.Set("CANCELURL", order.CancelURL)
	nvps.Set("PAYMENTREQUEST_0_CURRENCYCODE", order.Currency)
	nvps.Set("PAYMENTREQUEST_0_DESC", order.Description)

	if order.Custom != "" {
		nvps.Set("PAYMENTREQUEST_0_CUSTOM", order.Custom)
	}
	if order.NotifyURL != "" {
		nvps.Set("PAYMENTREQUEST_0_NOTIFYURL", order.NotifyURL)
	}

	if len(order.Items) == 0 {
		if order.Amount != "" {
			amount, err := parseAmount("amount", order.Amount)
			if err != nil {
				return nil, err
			}
			nvps.Set("PAYMENTREQUEST_0_AMT", formatAmount(amount))
		}
		return nvps, nil
	}

	var subtotal, shipping, tax decimal.Decimal
	lines := make([][3]decimal.Decimal, len(order.Items))
	for i, item := range order.Items {
		itemSubtotal, err := parseAmount(fmt.Sprintf("items[%d].subtotal", i), item.Subtotal)
		if err != nil {
			return nil, err
		}
		itemShipping, err := parseAmount(fmt.Sprintf("items[%d].shipping", i), item.Shipping)
		if err != nil {
			return nil, err
		}
		itemTax, err := parseAmount(fmt.Sprintf("items[%d].tax", i), item.Tax)
		if err != nil {
			return nil, err
		}
		subtotal = subtotal.Add(itemSubtotal)
		shipping = shipping.Add(itemShipping)
		tax = tax.Add(itemTax)
		lines[i] = [3]decimal.Decimal{itemSubtotal, itemShipping, itemTax}
	}

	nvps.Set("PAYMENTREQUEST_0_ITEMAMT", formatAmount(subtotal))
	nvps.Set("PAYMENTREQUEST_0_SHIPPINGAMT", formatAmount(shipping))
	nvps.Set("PAYMENTREQUEST_0_TAXAMT", formatAmount(tax))
	nvps.Set("PAYMENTREQUEST_0_AMT", formatAmount(subtotal.Add(shipping).Add(tax)))

	if len(order.Items) > maxLineItems {
		return nvps, nil
	}

	for i, item := range order.Items {
		n := strconv.Itoa(i)
		nvps.Set("L_PAYMENTREQUEST_0_NAME"+n, item.Name)
		nvps.Set("L_PAYMENTREQUEST_0_DESC"+n, item.Description)
		nvps.Set("L_PAYMENTREQUEST_0_TAXAMT"+n, formatAmount(lines[i][2]))
		nvps.Set("L_PAYMENTREQUEST_0_AMT"+n, formatAmount(lines[i][0]))
		nvps.Set("L_PAYMENTREQUEST_0_QTY"+n, "1")
	}
	return nvps, nil
}

// BuildDirectPayment transforms a card payment into DoDirectPayment NVPs.
// clientIP is the buyer's IP address and is required by PayPal.
func (t NVPTransformer) BuildDirectPayment(payment *models.DirectPayment, clientIP string) (*models.NVP, error) {
	if clientIP == "" {
		return nil, models.NewValidationError("ipAddress", "Could not detect client IP address")
	}
	if payment == nil {
		return nil, models.NewValidationError("payment", "Valid payment must be provided")
	}

	p := *payment
	p.Card = stripWhitespace(p.Card)
	p.CVV = stripWhitespace(p.CVV)
	if err := validateStruct(&p); err != nil {
		return nil, err
	}

	currency := t.Config.DefaultCurrency
	if p.Currency != "" {
		currency = strings.ToUpper(p.Currency)
	}

	nvps := models.NewNVP()
	nvps.Set("IPADDRESS", clientIP)
	nvps.Set("AMT", p.Amount)
	nvps.Set("CURRENCYCODE", currency)
	nvps.Set("RECURRING", "N")
	nvps.Set("ACCT", p.Card)
	nvps.Set("EXPDATE", FormatExpiry(*p.Expiry))
	nvps.Set("CVV2", p.CVV)
	for _, key := range []string{"FIRSTNAME", "LASTNAME", "STREET", "CITY", "STATE", "COUNTRYCODE", "ZIP"} {
		nvps.Set(key, "")
	}
	return t.withCredentials(nvps, MethodDoDirectPayment), nil
}

// FormatExpiry concatenates month and year without zero padding, so May
// 2015 becomes "52015".
func FormatExpiry(expiry models.Expiry) string {
	return fmt.Sprintf("%d%d", expiry.Month, expiry.Year)
}

// BuildRefund transforms a refund into RefundTransaction NVPs. AMT is only
// sent for refunds that are not Full.
func (t NVPTransformer) BuildRefund(refund *models.Refund) (*models.NVP, error) {
	if refund == nil {
		return nil, models.NewValidationError("refund", "Valid refund must be provided")
	}

	r := *refund
	r.TransactionID = stripWhitespace(r.TransactionID)
	if err := validateStruct(&r); err != nil {
		return nil, err
	}

	currency := t.Config.DefaultCurrency
	if r.Currency != "" {
		currency = r.Currency
	}
	source := "any"
	if r.Source != "" {
		source = r.Source
	}

	nvps := models.NewNVP()
	nvps.Set("TRANSACTIONID", r.TransactionID)
	nvps.Set("INVOICEID", r.Reference)
	nvps.Set("REFUNDTYPE", r.Type)
	nvps.Set("CURRENCYCODE", currency)
	nvps.Set("NOTE", r.Note)
	nvps.Set("REFUNDSOURCE", source)

	if r.Type != models.RefundFull {
		if _, err := parseAmount("amount", r.Amount); err != nil {
			return nil, err
		}
		nvps.Set("AMT", r.Amount)
	}
	return t.withCredentials(nvps, MethodRefundTransaction), nil
}

// BuildVerifiedStatus builds the Adaptive Accounts GetVerifiedStatus body.
// Adaptive Accounts authenticates through headers, see VerifiedStatusHeaders.
func (t NVPTransformer) BuildVerifiedStatus(email string) (*models.NVP, error) {
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, models.NewValidationError("email", "A valid email address must be provided")
	}

	nvps := models.NewNVP()
	nvps.Set("accountIdentifier.emailAddress", email)
	nvps.Set("matchCriteria", "NONE")
	nvps.Set("requestEnvelope.errorLanguage", "en_GB")
	return nvps, nil
}

// VerifiedStatusHeaders returns the Adaptive Accounts security headers
func (t NVPTransformer) VerifiedStatusHeaders() map[string]string {
	userID := t.Config.AdaptiveUserID
	if userID == "" {
		userID = t.Config.NVPUsername
	}

	headers := map[string]string{
		"X-PAYPAL-SECURITY-USERID":      userID,
		"X-PAYPAL-SECURITY-PASSWORD":    t.Config.NVPPassword,
		"X-PAYPAL-SECURITY-SIGNATURE":   t.Config.NVPSignature,
		"X-PAYPAL-APPLICATION-ID":       t.Config.AdaptiveAppID,
		"X-PAYPAL-REQUEST-DATA-FORMAT":  "NV",
		"X-PAYPAL-RESPONSE-DATA-FORMAT": "JSON",
	}
	if t.Config.SandboxMode {
		headers["X-PAYPAL-SANDBOX-EMAIL-ADDRESS"] = t.Config.NVPUsername
	}
	return headers
}

// withCredentials appends the method and API credentials last so no caller
// supplied field can shadow them.
func (t NVPTransformer) withCredentials(nvps *models.NVP, method string) *models.NVP {
	nvps.Append("METHOD", method)
	nvps.Append("VERSION", t.Config.ClassicVersion)
	nvps.Append("USER", t.Config.NVPUsername)
	nvps.Append("PWD", t.Config.NVPPassword)
	nvps.Append("SIGNATURE", t.Config.NVPSignature)
	return nvps
}

func parseAmount(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, models.NewValidationError(field, fmt.Sprintf("%s is not a valid amount: [%s]", field, value))
	}
	return amount, nil
}

func formatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
