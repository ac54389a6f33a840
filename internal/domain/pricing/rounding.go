package pricing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/jhoicas/billing-core/internal/domain"
)

// DefaultPrecision decimales usados cuando no hay moneda.
const DefaultPrecision int32 = 2

// CurrencyPrecision devuelve los decimales estándar de la moneda ISO 4217 (USD=2, JPY=0).
func CurrencyPrecision(code string) (int32, error) {
	if code == "" {
		return DefaultPrecision, nil
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return 0, domain.NewValidationError("currency", "moneda desconocida: "+code)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return int32(scale), nil
}

// Round redondea a precision decimales, mitad lejos de cero (0.125 -> 0.13, -0.125 -> -0.13).
func Round(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Round(precision)
}
