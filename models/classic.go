package models

// Order describes an Express Checkout purchase.
type Order struct {
	ReturnURL   string      `json:"return"      validate:"required"`
	CancelURL   string      `json:"cancel"      validate:"required"`
	Currency    string      `json:"currency"    validate:"required"`
	Description string      `json:"description" validate:"required"`
	Amount      string      `json:"amount,omitempty" validate:"omitempty,numeric"`
	Custom      string      `json:"custom,omitempty"`
	NotifyURL   string      `json:"notifyUrl,omitempty"`
	Items       []OrderItem `json:"items,omitempty" validate:"dive"`
}

// OrderItem is a single line of an Order. Amounts are decimal strings.
type OrderItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Tax         string `json:"tax"      validate:"omitempty,numeric"`
	Subtotal    string `json:"subtotal" validate:"omitempty,numeric"`
	Shipping    string `json:"shipping" validate:"omitempty,numeric"`
}

// DirectPayment describes a card payment processed through DoDirectPayment.
type DirectPayment struct {
	Card     string  `json:"card"   validate:"required"`
	CVV      string  `json:"cvv"    validate:"required"`
	Amount   string  `json:"amount" validate:"required,numeric"`
	Expiry   *Expiry `json:"expiry" validate:"required"`
	Currency string  `json:"currency,omitempty"`
}

// Expiry is a card expiry date.
type Expiry struct {
	Month int `json:"M" validate:"required,min=1,max=12"`
	Year  int `json:"Y" validate:"required,min=1"`
}

// Refund types accepted by RefundTransaction.
const (
	RefundFull    = "Full"
	RefundPartial = "Partial"
)

// Refund describes a RefundTransaction request. Amount is only required and
// only sent for non Full refunds.
type Refund struct {
	TransactionID string `json:"transactionId" validate:"required"`
	Amount        string `json:"amount"        validate:"required_unless=Type Full"`
	Type          string `json:"type"          validate:"required,oneof=Full Partial ExternalDispute Other"`
	Reference     string `json:"reference,omitempty"`
	Note          string `json:"note,omitempty"`
	Currency      string `json:"currency,omitempty"`
	Source        string `json:"source,omitempty"`
}
