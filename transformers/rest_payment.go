package transformers

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"github.com/companieshouse/paypal.api.ch.gov.uk/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RestTransformer builds REST API request objects from caller descriptors
type RestTransformer struct{}

// BuildPayment transforms a payment descriptor into the REST payment
// object. Checks run in a fixed order: intent, payer, transactions and
// then redirect urls.
func (t RestTransformer) BuildPayment(payment *models.RestPayment) (*models.PaymentObject, error) {
	if payment == nil {
		return nil, models.NewValidationError("payment", "Valid payment must be provided")
	}

	if payment.Intent == "" {
		return nil, models.NewValidationError("intent", "Valid intent field must be provided")
	}
	if payment.Intent != models.IntentSale && payment.Intent != models.IntentAuthorize {
		return nil, models.NewValidationError("intent", "Intent provided is not correct (must be sale or authorize)")
	}

	payer, err := t.buildPayer(payment.Payer)
	if err != nil {
		return nil, err
	}

	transactions, err := t.buildTransactions(payment.Transactions)
	if err != nil {
		return nil, err
	}

	object := &models.PaymentObject{
		Intent:       payment.Intent,
		Payer:        *payer,
		Transactions: transactions,
	}

	if payer.PaymentMethod == models.PaymentMethodPayPal {
		if payment.RedirectURLs == nil {
			return nil, models.NewValidationError("redirectUrls", "Valid redirect urls must be provided")
		}
		if err := validateStruct(payment.RedirectURLs); err != nil {
			return nil, err
		}
		object.RedirectURLs = &models.RedirectURLsObject{
			ReturnURL: payment.RedirectURLs.ReturnURL,
			CancelURL: payment.RedirectURLs.CancelURL,
		}
	}
	return object, nil
}

// BuildCreditCard transforms a card into the object used inline as a
// funding instrument or stored in the vault
func (t RestTransformer) BuildCreditCard(card *models.CreditCard) (*models.CreditCardObject, error) {
	if card == nil {
		return nil, models.NewValidationError("creditCard", "You must pass a valid credit card")
	}
	if err := validateStruct(card); err != nil {
		return nil, err
	}

	return &models.CreditCardObject{
		Number:      stripWhitespace(card.Number),
		Type:        card.Type,
		ExpireMonth: card.ExpireMonth,
		ExpireYear:  card.ExpireYear,
		CVV2:        card.CVV2,
		FirstName:   card.FirstName,
		LastName:    card.LastName,
		PayerID:     card.PayerID,
	}, nil
}

// Encode serializes a REST request object. Struct field order makes the
// output deterministic.
func (t RestTransformer) Encode(object interface{}) ([]byte, error) {
	body, err := json.Marshal(object)
	if err != nil {
		return nil, fmt.Errorf("error encoding paypal request: [%w]", err)
	}
	return body, nil
}

func (t RestTransformer) buildPayer(payer *models.Payer) (*models.PayerObject, error) {
	if payer == nil {
		return nil, models.NewValidationError("payer", "Valid payer must be provided")
	}
	if payer.PaymentMethod == "" {
		return nil, models.NewValidationError("paymentMethod", "Payment method must be provided")
	}
	if payer.PaymentMethod != models.PaymentMethodPayPal && payer.PaymentMethod != models.PaymentMethodCreditCard {
		return nil, models.NewValidationError("paymentMethod", "Payment method provided is not correct (must be paypal or credit_card)")
	}

	object := &models.PayerObject{PaymentMethod: payer.PaymentMethod}

	for _, instrument := range payer.FundingInstruments {
		built, err := t.buildFundingInstrument(instrument)
		if err != nil {
			return nil, err
		}
		object.FundingInstruments = append(object.FundingInstruments, *built)
	}

	if payer.PayerInfo != nil {
		if err := validateStruct(payer.PayerInfo); err != nil {
			return nil, err
		}
		object.PayerInfo = &models.PayerInfoObject{
			Email:     payer.PayerInfo.Email,
			FirstName: payer.PayerInfo.FirstName,
			LastName:  payer.PayerInfo.LastName,
			PayerID:   payer.PayerInfo.PayerID,
			Phone:     payer.PayerInfo.Phone,
		}
	}
	return object, nil
}

func (t RestTransformer) buildFundingInstrument(instrument models.FundingInstrument) (*models.FundingInstrumentObject, error) {
	if instrument.CreditCard == nil && instrument.CreditCardToken == nil {
		return nil, models.NewValidationError("fundingInstruments", "Valid credit card must be provided if credit card token is not provided")
	}

	if instrument.CreditCard != nil {
		card, err := t.BuildCreditCard(instrument.CreditCard)
		if err != nil {
			return nil, err
		}
		return &models.FundingInstrumentObject{CreditCard: card}, nil
	}

	token := instrument.CreditCardToken
	if err := validateStruct(token); err != nil {
		return nil, err
	}
	return &models.FundingInstrumentObject{
		CreditCardToken: &models.CreditCardTokenObject{
			CreditCardID: token.CreditCardID,
			PayerID:      token.PayerID,
			Last4:        token.Last4,
			Type:         token.Type,
			ExpireYear:   token.ExpireYear,
			ExpireMonth:  token.ExpireMonth,
		},
	}, nil
}

func (t RestTransformer) buildTransactions(transactions []models.Transaction) ([]models.TransactionObject, error) {
	if len(transactions) == 0 {
		return nil, models.NewValidationError("transactions", "Valid transactions must be provided")
	}

	objects := make([]models.TransactionObject, 0, len(transactions))
	for _, transaction := range transactions {
		if transaction.Amount == nil {
			return nil, models.NewValidationError("amount", "Transaction amount must be provided")
		}
		if err := validateStruct(transaction.Amount); err != nil {
			return nil, err
		}

		object := models.TransactionObject{
			Amount: models.AmountObject{
				Total:    transaction.Amount.Total,
				Currency: transaction.Amount.Currency,
			},
			Description: transaction.Description,
		}

		if len(transaction.ItemList) > 0 {
			for _, item := range transaction.ItemList {
				if err := validateStruct(&item); err != nil {
					return nil, err
				}
			}
			object.ItemList = &models.ItemListObject{
				Items: lo.Map(transaction.ItemList, func(item models.Item, _ int) models.ItemObject {
					return models.ItemObject{
						Quantity: item.Quantity,
						Name:     item.Name,
						Price:    item.Price,
						Currency: item.Currency,
						SKU:      item.SKU,
					}
				}),
			}
		}
		objects = append(objects, object)
	}
	return objects, nil
}
