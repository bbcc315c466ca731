package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrCurrencyMismatch indicates arithmetic between two different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")
	// ErrPrecisionExceeded indicates an amount carries more decimal places than its currency allows.
	ErrPrecisionExceeded = errors.New("amount precision exceeds currency decimal places")
	// ErrDivisionByZero indicates a division of a monetary amount by zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrUnknownCurrency indicates a currency code outside the supported set.
	ErrUnknownCurrency = errors.New("unknown currency code")
)

// Currency describes a supported currency and its rounding precision.
type Currency struct {
	Code          string `json:"code"`          // ISO 4217 code (e.g., "JPY")
	Symbol        string `json:"symbol"`        // e.g., "¥"
	DecimalPlaces int32  `json:"decimalPlaces"` // 0 for JPY, 2 for USD/EUR
}

var (
	JPY = Currency{Code: "JPY", Symbol: "¥", DecimalPlaces: 0}
	USD = Currency{Code: "USD", Symbol: "$", DecimalPlaces: 2}
	EUR = Currency{Code: "EUR", Symbol: "€", DecimalPlaces: 2}
)

// CurrencyByCode resolves a supported currency from its ISO code.
func CurrencyByCode(code string) (Currency, error) {
	switch code {
	case JPY.Code:
		return JPY, nil
	case USD.Code:
		return USD, nil
	case EUR.Code:
		return EUR, nil
	default:
		return Currency{}, fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
	}
}

// Money couples an exact decimal amount with its currency.
// The zero value is not usable; construct via NewMoney or ZeroMoney.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a Money value, rejecting amounts whose precision exceeds
// the currency's decimal places.
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if currency.Code == "" {
		return Money{}, ErrUnknownCurrency
	}
	if !amount.Round(currency.DecimalPlaces).Equal(amount) {
		return Money{}, fmt.Errorf("%w: %s has more than %d decimal places for %s",
			ErrPrecisionExceeded, amount.String(), currency.DecimalPlaces, currency.Code)
	}
	return Money{amount: amount, currency: currency}, nil
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// newRoundedMoney rounds a computed amount to the currency precision.
// Used internally for derived values (multiplication, division results).
func newRoundedMoney(amount decimal.Decimal, currency Currency) Money {
	return Money{amount: amount.Round(currency.DecimalPlaces), currency: currency}
}

// Amount returns the underlying decimal amount.
func (m Money) Amount() decimal.Decimal { return m.amount }

// Currency returns the currency of the amount.
func (m Money) Currency() Currency { return m.currency }

// Add returns m + other, failing if the currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if m.currency.Code != other.currency.Code {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.currency.Code, other.currency.Code)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns m - other, failing if the currencies differ.
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency.Code != other.currency.Code {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.currency.Code, other.currency.Code)
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// MulScalar returns m scaled by the given factor, re-rounded to currency precision.
func (m Money) MulScalar(factor decimal.Decimal) Money {
	return newRoundedMoney(m.amount.Mul(factor), m.currency)
}

// DivScalar returns m divided by the given divisor, re-rounded to currency precision.
func (m Money) DivScalar(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() {
		return Money{}, ErrDivisionByZero
	}
	return newRoundedMoney(m.amount.Div(divisor), m.currency), nil
}

// Neg returns the negated amount.
func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg(), currency: m.currency}
}

// Abs returns the absolute amount.
func (m Money) Abs() Money {
	return Money{amount: m.amount.Abs(), currency: m.currency}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.amount.IsZero() }

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool { return m.amount.IsNegative() }

// Equal reports whether amount and currency both match.
func (m Money) Equal(other Money) bool {
	return m.currency.Code == other.currency.Code && m.amount.Equal(other.amount)
}

// SameCurrency reports whether both values share a currency.
func (m Money) SameCurrency(other Money) bool {
	return m.currency.Code == other.currency.Code
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.currency.Code, m.amount.StringFixed(m.currency.DecimalPlaces))
}
