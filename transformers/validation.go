package transformers

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/companieshouse/paypal.api.ch.gov.uk/models"
)

var validate = newValidator()

// fieldMessages are the messages reported for a failed field, keyed by the
// struct namespace of the field.
var fieldMessages = map[string]string{
	"Order.ReturnURL":              `Valid "return" and "cancel" urls must be provided`,
	"Order.CancelURL":              `Valid "return" and "cancel" urls must be provided`,
	"Order.Currency":               "You must provide a currency code",
	"Order.Description":            "You must provide a description",
	"DirectPayment.Card":           "Not a valid credit card number",
	"DirectPayment.CVV":            "You must include the 3 digit security number",
	"DirectPayment.Amount":         `Must specify an "amount" to charge`,
	"DirectPayment.Expiry":         "Must specify an expiry date",
	"Refund.TransactionID":         "Original PayPal Transaction ID is required",
	"Refund.Amount":                `Must specify an "amount" to refund`,
	"Refund.Type":                  "You must specify a refund type, such as Full or Partial",
	"CreditCard.Number":            "Valid credit card number must be provided",
	"CreditCard.Type":              "Valid credit card type must be provided",
	"CreditCard.ExpireMonth":       "Valid expire month/year card type must be provided",
	"CreditCard.ExpireYear":        "Valid expire month/year card type must be provided",
	"CreditCardToken.CreditCardID": "Valid credit card id must be provided",
	"Amount.Total":                 "Transaction amount total must be provided",
	"Amount.Currency":              "Transaction amount currency must be provided",
	"Item.Quantity":                "Item quantity must be provided",
	"Item.Name":                    "Item name must be provided",
	"Item.Price":                   "Item price must be provided",
	"Item.Currency":                "Item currency must be provided",
	"RedirectURLs.ReturnURL":       "Valid redirect urls must be provided",
	"RedirectURLs.CancelURL":       "Valid redirect urls must be provided",
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateStruct validates s against its struct tags and converts the
// first failure, in field declaration order, into a ValidationError.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return models.NewValidationError("", fmt.Sprintf("invalid request: [%v]", err))
	}
	return toValidationError(validationErrors[0])
}

func toValidationError(fe validator.FieldError) *models.ValidationError {
	namespace := fe.StructNamespace()
	if i := strings.LastIndex(namespace, "."); i >= 0 {
		// nested fields are looked up by their own struct
		parent := namespace[:i]
		if j := strings.LastIndex(parent, "."); j >= 0 {
			parent = parent[j+1:]
		}
		parent = strings.SplitN(parent, "[", 2)[0]
		namespace = parent + namespace[i:]
	}

	message, ok := fieldMessages[namespace]
	if !ok || fe.Tag() != "required" && fe.Tag() != "required_unless" {
		message = fmt.Sprintf("%s failed the [%s] check", fe.Namespace(), fe.Tag())
	}
	return models.NewValidationError(fe.Field(), message)
}
