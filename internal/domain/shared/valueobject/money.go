package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 currency code
type Currency string

const (
	IDR Currency = "IDR" // Indonesian Rupiah (default)
	USD Currency = "USD" // US Dollar
	SGD Currency = "SGD" // Singapore Dollar
	EUR Currency = "EUR" // Euro
)

// DefaultCurrency is used whenever a request or a stored row carries no
// explicit currency. The shop prices and settles in rupiah.
const DefaultCurrency = IDR

// Money pairs a decimal amount with its currency. It is immutable; every
// operation returns a new value. Amounts are whole rupiah in practice but
// the decimal representation keeps sub-unit precision for other currencies.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates Money with the given amount and currency
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{amount: amount, currency: currency}, nil
}

// NewMoneyIDR creates Money in rupiah
func NewMoneyIDR(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: IDR}
}

// NewMoneyIDRFromInt creates Money in rupiah from an integer amount
func NewMoneyIDRFromInt(amount int64) Money {
	return NewMoneyIDR(decimal.NewFromInt(amount))
}

// NewMoneyIDRFromString creates Money in rupiah from a decimal string
func NewMoneyIDRFromString(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return NewMoneyIDR(d), nil
}

// Zero returns zero Money in the given currency
func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// ZeroIDR returns zero rupiah
func ZeroIDR() Money {
	return Zero(IDR)
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal { return m.amount }

// Currency returns the currency code
func (m Money) Currency() Currency { return m.currency }

// IsZero reports whether the amount is zero
func (m Money) IsZero() bool { return m.amount.IsZero() }

// IsPositive reports whether the amount is positive
func (m Money) IsPositive() bool { return m.amount.IsPositive() }

// IsNegative reports whether the amount is negative
func (m Money) IsNegative() bool { return m.amount.IsNegative() }

// sameCurrency guards every binary operation: mixing currencies in the
// ledger is always a programming error, never a rounding question.
func (m Money) sameCurrency(op string, other Money) error {
	if m.currency != other.currency {
		return fmt.Errorf("cannot %s %s and %s", op, m.currency, other.currency)
	}
	return nil
}

// Add returns the sum. The currencies must match.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency("add", other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// MustAdd is Add for callers that have already checked the currency
func (m Money) MustAdd(other Money) Money {
	result, err := m.Add(other)
	if err != nil {
		panic(err)
	}
	return result
}

// Subtract returns the difference. The currencies must match.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.sameCurrency("subtract", other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// MustSubtract is Subtract for callers that have already checked the currency
func (m Money) MustSubtract(other Money) Money {
	result, err := m.Subtract(other)
	if err != nil {
		panic(err)
	}
	return result
}

// Negate returns the amount with the sign reversed
func (m Money) Negate() Money {
	return Money{amount: m.amount.Neg(), currency: m.currency}
}

// Abs returns the absolute amount
func (m Money) Abs() Money {
	return Money{amount: m.amount.Abs(), currency: m.currency}
}

// Round returns the amount rounded to the given decimal places
func (m Money) Round(places int32) Money {
	return Money{amount: m.amount.Round(places), currency: m.currency}
}

// Equals reports whether amount and currency both match
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// LessThan compares amounts. The currencies must match.
func (m Money) LessThan(other Money) (bool, error) {
	if err := m.sameCurrency("compare", other); err != nil {
		return false, err
	}
	return m.amount.LessThan(other.amount), nil
}

// GreaterThan compares amounts. The currencies must match.
func (m Money) GreaterThan(other Money) (bool, error) {
	if err := m.sameCurrency("compare", other); err != nil {
		return false, err
	}
	return m.amount.GreaterThan(other.amount), nil
}

// GreaterThanOrEqual compares amounts. The currencies must match.
func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	if err := m.sameCurrency("compare", other); err != nil {
		return false, err
	}
	return m.amount.GreaterThanOrEqual(other.amount), nil
}

// String renders the amount with two decimal places and the currency code
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}

// moneyJSON is the wire shape: the amount travels as a string so clients
// never round it through a float
type moneyJSON struct {
	Amount   string   `json:"amount"`
	Currency Currency `json:"currency"`
}

// MarshalJSON implements json.Marshaler
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.amount.String(), Currency: m.currency})
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Money) UnmarshalJSON(data []byte) error {
	var v moneyJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(v.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	m.amount = amount
	m.currency = v.Currency
	return nil
}

// Value implements driver.Valuer. Only the amount is stored; the account
// row carries the currency in its own column.
func (m Money) Value() (driver.Value, error) {
	return m.amount.String(), nil
}

// Scan implements sql.Scanner, defaulting the currency when the scanned
// column carries none
func (m *Money) Scan(value any) error {
	if value == nil {
		m.amount = decimal.Zero
		m.currency = DefaultCurrency
		return nil
	}

	var strVal string
	switch v := value.(type) {
	case string:
		strVal = v
	case []byte:
		strVal = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Money", value)
	}

	amount, err := decimal.NewFromString(strVal)
	if err != nil {
		return fmt.Errorf("invalid decimal value: %w", err)
	}
	m.amount = amount
	if m.currency == "" {
		m.currency = DefaultCurrency
	}
	return nil
}
