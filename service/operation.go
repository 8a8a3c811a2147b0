package service

// operation names a public operation and the generic messages reported when
// PayPal cannot be reached or replies with an unrecognised shape
type operation struct {
	name            string
	connectMessage  string
	responseMessage string
	// requiresToken treats a successful reply without a TOKEN as unrecognised
	requiresToken bool
}

const oauthErrorMessage = "There was an error getting the oAuth credentials"

var (
	setExpressCheckoutOp = operation{
		name:            "SetExpressCheckout",
		connectMessage:  "There was a problem initiating the transaction, please try again.",
		responseMessage: "There was an error while connecting to Paypal",
		requiresToken:   true,
	}
	getExpressCheckoutDetailsOp = operation{
		name:            "GetExpressCheckoutDetails",
		connectMessage:  "There was a problem getting your details, please try again.",
		responseMessage: "There was an error while connecting to Paypal",
		requiresToken:   true,
	}
	doExpressCheckoutPaymentOp = operation{
		name:            "DoExpressCheckoutPayment",
		connectMessage:  "There was a problem processing the transaction, please try again.",
		responseMessage: "There was an error completing the payment",
		requiresToken:   true,
	}
	doDirectPaymentOp = operation{
		name:            "DoDirectPayment",
		connectMessage:  "There was a problem processing your card, please try again.",
		responseMessage: "There was an error processing the card payment",
	}
	refundTransactionOp = operation{
		name:            "RefundTransaction",
		connectMessage:  "A problem occurred during the refund process, please try again.",
		responseMessage: "There was an error processing the refund",
	}
	getVerifiedStatusOp = operation{
		name:            "GetVerifiedStatus",
		connectMessage:  "An error occurred while getting the status of your account.",
		responseMessage: "An error occurred while getting the status of your account.",
	}
	doPaymentOp = operation{
		name:            "DoPayment",
		connectMessage:  "A problem occurred during the payment process, please try again.",
		responseMessage: "There was an error doing a payment.",
	}
	storeCreditCardOp = operation{
		name:            "StoreCreditCard",
		connectMessage:  "A problem occurred during the store credit card process, please try again.",
		responseMessage: "There was an error storing the credit card.",
	}
	hateoasCreditCardOp = operation{
		name:            "HateoasCreditCard",
		connectMessage:  "A problem occurred while using the credit card, please try again.",
		responseMessage: "There was an error using the credit card.",
	}
)
