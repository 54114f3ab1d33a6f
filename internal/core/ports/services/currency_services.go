package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/schoolstate/sas_backend/internal/core/domain"
)

// CurrencySvcFacade exposes the configured currency and rate tables.
// Rates are configuration, not market data: one fixed rate per ordered pair
// for the duration of the event.
type CurrencySvcFacade interface {
	// ListCurrencies returns all configured currencies.
	ListCurrencies(ctx context.Context) []domain.Currency

	// GetCurrency returns one currency by code.
	GetCurrency(ctx context.Context, code string) (*domain.Currency, error)

	// PlayCurrency returns the code bank balances are held in.
	PlayCurrency() string

	// Convert derives the target amount for a directed pair, rounded to the
	// target currency's configured decimals.
	Convert(ctx context.Context, fromCurrency, toCurrency string, value decimal.Decimal) (decimal.Decimal, error)
}
