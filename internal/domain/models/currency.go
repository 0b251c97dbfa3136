package models

import (
	"fmt"
	"strings"
)

// Currency is an ISO 4217 code from the closed set the service supports.
type Currency string

const (
	KRW Currency = "KRW" // base currency; all stored rates are quoted against it
	USD Currency = "USD"
	EUR Currency = "EUR"
	CAD Currency = "CAD"
	AUD Currency = "AUD"
)

// BaseCurrency is the currency every stored rate is quoted against.
const BaseCurrency = KRW

var currencyNames = map[Currency]string{
	KRW: "Korean Won",
	USD: "US Dollar",
	EUR: "Euro",
	CAD: "Canadian Dollar",
	AUD: "Australian Dollar",
}

// ParseCurrency validates a free-form code against the supported set.
// Unknown codes fail with ErrInvalidInput.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := currencyNames[c]; !ok {
		return "", fmt.Errorf("%w: unsupported currency %q", ErrInvalidInput, s)
	}
	return c, nil
}

// Name returns the display name for a supported currency.
func (c Currency) Name() string {
	return currencyNames[c]
}

// IsBase reports whether the currency is the quote base.
func (c Currency) IsBase() bool {
	return c == BaseCurrency
}

func (c Currency) String() string {
	return string(c)
}

// TrackedCurrencies are the non-base currencies quoted against the base.
func TrackedCurrencies() []Currency {
	return []Currency{USD, EUR, CAD, AUD}
}
