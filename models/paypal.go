package models

// PaymentObject is the request sent to the REST payments API
type PaymentObject struct {
	Intent       string              `json:"intent"`
	Payer        PayerObject         `json:"payer"`
	Transactions []TransactionObject `json:"transactions"`
	RedirectURLs *RedirectURLsObject `json:"redirect_urls,omitempty"`
}

// PayerObject describes who pays and with what
type PayerObject struct {
	PaymentMethod      string                    `json:"payment_method"`
	FundingInstruments []FundingInstrumentObject `json:"funding_instruments,omitempty"`
	PayerInfo          *PayerInfoObject          `json:"payer_info,omitempty"`
}

// FundingInstrumentObject holds exactly one of a card or a card token
type FundingInstrumentObject struct {
	CreditCard      *CreditCardObject      `json:"credit_card,omitempty"`
	CreditCardToken *CreditCardTokenObject `json:"credit_card_token,omitempty"`
}

// CreditCardObject is also the request body for storing a card in the vault
type CreditCardObject struct {
	Number      string `json:"number"`
	Type        string `json:"type"`
	ExpireMonth string `json:"expire_month"`
	ExpireYear  string `json:"expire_year"`
	CVV2        string `json:"cvv2"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PayerID     string `json:"payer_id,omitempty"`
}

// CreditCardTokenObject references a vaulted card
type CreditCardTokenObject struct {
	CreditCardID string `json:"credit_card_id"`
	PayerID      string `json:"payer_id,omitempty"`
	Last4        string `json:"last4"`
	Type         string `json:"type"`
	ExpireYear   string `json:"expire_year"`
	ExpireMonth  string `json:"expire_month"`
}

// PayerInfoObject is the stored payer information
type PayerInfoObject struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	PayerID   string `json:"payer_id,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// TransactionObject is a purchase within a payment
type TransactionObject struct {
	Amount      AmountObject    `json:"amount"`
	Description string          `json:"description"`
	ItemList    *ItemListObject `json:"item_list,omitempty"`
}

// AmountObject is the amount object for a transaction
type AmountObject struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// ItemListObject wraps the items of a transaction
type ItemListObject struct {
	Items []ItemObject `json:"items"`
}

// ItemObject is a line item
type ItemObject struct {
	Quantity string `json:"quantity"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Currency string `json:"currency"`
	SKU      string `json:"sku"`
}

// RedirectURLsObject is needed to supply PayPal with return and cancel urls
type RedirectURLsObject struct {
	ReturnURL string `json:"return_url"`
	CancelURL string `json:"cancel_url"`
}
