package models

// Intents accepted by the REST payments API
const (
	IntentSale      = "sale"
	IntentAuthorize = "authorize"
)

// Payment methods accepted by the REST payments API
const (
	PaymentMethodPayPal     = "paypal"
	PaymentMethodCreditCard = "credit_card"
)

// RestPayment describes a payment created through the REST API.
type RestPayment struct {
	Intent       string        `json:"intent"`
	Payer        *Payer        `json:"payer"`
	Transactions []Transaction `json:"transactions"`
	RedirectURLs *RedirectURLs `json:"redirectUrls,omitempty"`
}

// Payer is the source of funds for a RestPayment.
type Payer struct {
	PaymentMethod      string              `json:"paymentMethod"`
	FundingInstruments []FundingInstrument `json:"fundingInstruments,omitempty"`
	PayerInfo          *PayerInfo          `json:"payerInfo,omitempty"`
}

// FundingInstrument is either an inline credit card or a vaulted card token.
type FundingInstrument struct {
	CreditCard      *CreditCard      `json:"creditCard,omitempty"`
	CreditCardToken *CreditCardToken `json:"creditCardToken,omitempty"`
}

// CreditCard is a card used inline or stored in the vault.
type CreditCard struct {
	Number      string `json:"number"      validate:"required"`
	Type        string `json:"type"        validate:"required"`
	ExpireMonth string `json:"expireMonth" validate:"required"`
	ExpireYear  string `json:"expireYear"  validate:"required"`
	CVV2        string `json:"cvv2,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	PayerID     string `json:"payerId,omitempty"`
}

// CreditCardToken references a card previously stored in the vault.
type CreditCardToken struct {
	CreditCardID string `json:"creditCardId" validate:"required"`
	PayerID      string `json:"payerId,omitempty"`
	Last4        string `json:"last4,omitempty"`
	Type         string `json:"type,omitempty"`
	ExpireMonth  string `json:"expireMonth,omitempty"`
	ExpireYear   string `json:"expireYear,omitempty"`
}

// PayerInfo is stored information about the payer.
type PayerInfo struct {
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	PayerID   string `json:"payerId,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Transaction is a single purchase within a RestPayment.
type Transaction struct {
	Amount      *Amount `json:"amount"`
	Description string  `json:"description,omitempty"`
	ItemList    []Item  `json:"itemList,omitempty"`
}

// Amount is a transaction total.
type Amount struct {
	Total    string `json:"total"    validate:"required"`
	Currency string `json:"currency" validate:"required"`
}

// Item is a single line of a transaction item list.
type Item struct {
	Quantity string `json:"quantity" validate:"required"`
	Name     string `json:"name"     validate:"required"`
	Price    string `json:"price"    validate:"required"`
	Currency string `json:"currency" validate:"required"`
	SKU      string `json:"sku,omitempty"`
}

// RedirectURLs are where PayPal sends the buyer after approving or
// cancelling a paypal payment.
type RedirectURLs struct {
	ReturnURL string `json:"returnUrl" validate:"required"`
	CancelURL string `json:"cancelUrl" validate:"required"`
}
