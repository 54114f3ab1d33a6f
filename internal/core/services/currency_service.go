package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/schoolstate/sas_backend/internal/apperrors"
	"github.com/schoolstate/sas_backend/internal/core/domain"
	portssvc "github.com/schoolstate/sas_backend/internal/core/ports/services"
	"github.com/schoolstate/sas_backend/internal/platform/config"
	"github.com/schoolstate/sas_backend/internal/utils"
)

// currencyService serves the currency and rate tables straight from
// configuration. Rates are fixed for the whole event, so there is no
// storage behind this service.
type currencyService struct {
	playCurrency string
	currencies   map[string]domain.Currency
	order        []string
	rates        map[string]decimal.Decimal
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// NewCurrencyService builds the currency service from loaded configuration.
func NewCurrencyService(cfg *config.Config) portssvc.CurrencySvcFacade {
	svc := &currencyService{
		playCurrency: cfg.PlayCurrency,
		currencies:   make(map[string]domain.Currency, len(cfg.Currencies)),
		rates:        cfg.ExchangeRates,
	}
	for _, c := range cfg.Currencies {
		svc.currencies[c.Code] = domain.Currency{
			CurrencyCode: c.Code,
			Symbol:       c.Symbol,
			Name:         c.Name,
			Decimals:     c.Decimals,
		}
		svc.order = append(svc.order, c.Code)
	}
	return svc
}

func (s *currencyService) ListCurrencies(ctx context.Context) []domain.Currency {
	out := make([]domain.Currency, 0, len(s.order))
	for _, code := range s.order {
		out = append(out, s.currencies[code])
	}
	return out
}

func (s *currencyService) GetCurrency(ctx context.Context, code string) (*domain.Currency, error) {
	c, ok := s.currencies[code]
	if !ok {
		return nil, apperrors.Newf(apperrors.CodeCurrencyNotFound, "currency %q is not configured", code)
	}
	return &c, nil
}

func (s *currencyService) PlayCurrency() string {
	return s.playCurrency
}

// Convert applies the configured rate for the ordered pair and rounds to
// the target currency's precision. A pair with no configured rate cannot be
// exchanged, even when the reverse pair is configured.
func (s *currencyService) Convert(ctx context.Context, fromCurrency, toCurrency string, value decimal.Decimal) (decimal.Decimal, error) {
	target, err := s.GetCurrency(ctx, toCurrency)
	if err != nil {
		return decimal.Zero, err
	}
	if _, err := s.GetCurrency(ctx, fromCurrency); err != nil {
		return decimal.Zero, err
	}
	rate, ok := s.rates[config.RateKey(fromCurrency, toCurrency)]
	if !ok {
		return decimal.Zero, apperrors.Newf(apperrors.CodeBadUserInput, "no exchange rate configured for %s to %s", fromCurrency, toCurrency)
	}
	return utils.RoundToPrecision(value.Mul(rate), target.Decimals), nil
}
