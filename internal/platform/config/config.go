package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// CurrencyConfig describes one supported currency and its display precision.
type CurrencyConfig struct {
	Code     string
	Symbol   string
	Name     string
	Decimals int
}

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Economy settings. The play currency is the unit every bank account
	// balance is held in; real currencies only appear in exchanges.
	PlayCurrency   string
	Currencies     []CurrencyConfig
	ExchangeRates  map[string]decimal.Decimal // keyed "FROM_TO", one rate per ordered pair
	SalaryTaxRate  decimal.Decimal
	StateAccountID string // Bank account credited by customs charges
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "sas-backend")
	// Currency table: CODE:SYMBOL:NAME:DECIMALS, comma separated.
	viper.SetDefault("CURRENCIES", "PLB:ꞓ:Plancko:2,EUR:€:Euro:2")
	viper.SetDefault("PLAY_CURRENCY", "PLB")
	// Rate table: FROM_TO=RATE, comma separated. One direction per ordered pair.
	viper.SetDefault("EXCHANGE_RATES", "EUR_PLB=3.141,PLB_EUR=0.318")
	viper.SetDefault("SALARY_TAX_RATE", "0.2")
	viper.SetDefault("STATE_ACCOUNT_ID", "STATE")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.PlayCurrency = viper.GetString("PLAY_CURRENCY")
	cfg.Currencies = parseCurrencies(viper.GetString("CURRENCIES"))
	cfg.ExchangeRates = parseExchangeRates(viper.GetString("EXCHANGE_RATES"))

	taxRateStr := viper.GetString("SALARY_TAX_RATE")
	taxRate, err := decimal.NewFromString(taxRateStr)
	if err != nil || taxRate.IsNegative() || taxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		taxRate = decimal.NewFromFloat(0.2)
		log.Printf("Warning: Invalid value for SALARY_TAX_RATE ('%s'). Defaulting to %s.\n", taxRateStr, taxRate)
	}
	cfg.SalaryTaxRate = taxRate

	cfg.StateAccountID = viper.GetString("STATE_ACCOUNT_ID")

	return cfg, nil
}

// parseCurrencies parses "CODE:SYMBOL:NAME:DECIMALS,..." into currency configs.
// Malformed entries are skipped with a warning rather than failing startup.
func parseCurrencies(raw string) []CurrencyConfig {
	currencies := []CurrencyConfig{}
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 4 {
			log.Printf("Warning: skipping malformed currency entry %q\n", entry)
			continue
		}
		decimals := 2
		if d, err := decimal.NewFromString(parts[3]); err == nil {
			decimals = int(d.IntPart())
		} else {
			log.Printf("Warning: invalid decimals in currency entry %q, defaulting to 2\n", entry)
		}
		currencies = append(currencies, CurrencyConfig{
			Code:     strings.ToUpper(strings.TrimSpace(parts[0])),
			Symbol:   parts[1],
			Name:     parts[2],
			Decimals: decimals,
		})
	}
	return currencies
}

// parseExchangeRates parses "FROM_TO=RATE,..." into the rate table.
func parseExchangeRates(raw string) map[string]decimal.Decimal {
	rates := map[string]decimal.Decimal{}
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		pair, rateStr, found := strings.Cut(entry, "=")
		if !found {
			log.Printf("Warning: skipping malformed exchange rate entry %q\n", entry)
			continue
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(rateStr))
		if err != nil || rate.LessThanOrEqual(decimal.Zero) {
			log.Printf("Warning: skipping non-positive exchange rate entry %q\n", entry)
			continue
		}
		rates[strings.ToUpper(strings.TrimSpace(pair))] = rate
	}
	return rates
}

// RateKey builds the lookup key for one directed currency pair.
func RateKey(fromCurrency, toCurrency string) string {
	return strings.ToUpper(fromCurrency) + "_" + strings.ToUpper(toCurrency)
}
