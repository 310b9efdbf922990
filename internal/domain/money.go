package domain

import (
	"github.com/shopspring/decimal"

	"payment-gateway/internal/errors"
)

// Money holds an amount in minor units (paise, cents).
// Example: INR 25.00 is stored as 2500.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func NewMoney(amount int64, currency string) Money {
	return Money{
		Amount:   amount,
		Currency: currency,
	}
}

// Add returns the sum of two Money values of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, errors.NewAppErrorf(errors.CurrencyMismatch, "cannot add %s to %s", other.Currency, m.Currency)
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

// Sub returns the difference of two Money values of the same currency.
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, errors.NewAppErrorf(errors.CurrencyMismatch, "cannot subtract %s from %s", other.Currency, m.Currency)
	}
	return Money{Amount: m.Amount - other.Amount, Currency: m.Currency}, nil
}

func (m Money) IsZero() bool {
	return m.Amount == 0 && m.Currency == ""
}

// String renders the amount in major units, e.g. "INR 25.00".
func (m Money) String() string {
	return m.Currency + " " + decimal.New(m.Amount, -2).StringFixed(2)
}
