package domain

import "github.com/shopspring/decimal"

// Currency describes a currency the system can hold or exchange,
// with the number of decimal places amounts are rounded to.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // e.g. "PLC" (play currency), "EUR"
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Decimals     int    `json:"decimals"`
}

// ExchangeRate is one directed conversion between an ordered currency pair.
type ExchangeRate struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
}
