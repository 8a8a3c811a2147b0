package models

// DefaultMessageOverrides replaces PayPal long messages that are not
// suitable to show to buyers, keyed by Classic error code.
var DefaultMessageOverrides = map[string]string{
	"10417": "The transaction could not be completed using your chosen payment method. Please choose another payment method.",
	"10422": "Your PayPal account does not have a usable funding source. Please choose another payment method.",
	"10486": "The transaction could not be completed. Please return to PayPal to choose another payment method.",
	"10527": "The card number you entered is not valid.",
	"10535": "The card number you entered is not valid.",
	"10536": "This order has already been paid.",
	"10748": "You must include the 3 digit security number on the back of your card.",
	"10759": "Your card could not be authorised. Please check your details and try again.",
	"15005": "Your card was declined by the issuing bank.",
	"15006": "Your card was declined by the issuing bank.",
	"15007": "Your card has expired.",
}
