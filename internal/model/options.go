package model

import (
	"strconv"

	"github.com/xindus-labs/shipdocs/constants"
	"github.com/xindus-labs/shipdocs/internal/common"
)

// ExtractionOptions are the user-selected post-processing options sent with
// a submission. ExchangeRate is carried as a decimal string (the wire form)
// and is only meaningful when OutputCurrency is not auto.
type ExtractionOptions struct {
	OutputCurrency string
	ExchangeRate   string
	SyncHSCodes    bool
}

// DefaultOptions returns the options the UI starts from.
func DefaultOptions() ExtractionOptions {
	return ExtractionOptions{
		OutputCurrency: constants.CurrencyAuto,
		SyncHSCodes:    true,
	}
}

// SetOutputCurrency switches the output currency. Reverting to auto always
// clears any previously set exchange rate.
func (o *ExtractionOptions) SetOutputCurrency(currency string) {
	o.OutputCurrency = currency
	if currency == constants.CurrencyAuto {
		o.ExchangeRate = ""
	}
}

// SetExchangeRate records the exchange rate. The rate is ignored (and
// dropped) while the currency is auto.
func (o *ExtractionOptions) SetExchangeRate(rate string) {
	if o.OutputCurrency == constants.CurrencyAuto {
		o.ExchangeRate = ""
		return
	}
	o.ExchangeRate = rate
}

// Validate checks the options for submission.
func (o ExtractionOptions) Validate() error {
	if _, ok := constants.CanonicalCurrency(o.OutputCurrency); !ok && o.OutputCurrency != "" {
		return common.NewAppError("OPTIONS_ERROR", "unknown output currency "+strconv.Quote(o.OutputCurrency), common.ErrInvalidInput)
	}
	if o.OutputCurrency != constants.CurrencyAuto && o.OutputCurrency != "" {
		rate, err := strconv.ParseFloat(o.ExchangeRate, 64)
		if err != nil || rate <= 0 {
			return common.NewAppError("OPTIONS_ERROR", "a positive exchange rate is required when output currency is "+o.OutputCurrency, common.ErrInvalidInput)
		}
	} else if o.ExchangeRate != "" {
		return common.NewAppError("OPTIONS_ERROR", "exchange rate must be empty when output currency is auto", common.ErrInvalidInput)
	}
	return nil
}
