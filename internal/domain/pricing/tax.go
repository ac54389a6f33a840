package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/billing-core/internal/domain"
)

// TaxType forma en que un impuesto se relaciona con el precio.
type TaxType string

const (
	// TaxExclusive se suma encima del precio.
	TaxExclusive TaxType = "exclusive"
	// TaxInclusive ya está contenido en el precio mostrado; no se suma encima.
	TaxInclusive TaxType = "inclusive"
	// TaxInclusiveCalculated ya está contenido en el precio; se calcula hacia atrás.
	TaxInclusiveCalculated TaxType = "inclusive_calculated"
)

var hundred = decimal.NewFromInt(100)

// ParseTaxType valida el tipo recibido como string.
func ParseTaxType(s string) (TaxType, error) {
	switch t := TaxType(s); t {
	case TaxExclusive, TaxInclusive, TaxInclusiveCalculated:
		return t, nil
	}
	return "", domain.NewValidationError("type", "tipo de impuesto desconocido: "+s)
}

// TaxRule regla de impuesto tal como la recibe el builder.
// Amount es un porcentaje (8 = 8%). La cascada sale de Settings.CascadeTax o de la TaxRef de la línea.
type TaxRule struct {
	ID     string
	Name   string
	Amount decimal.Decimal
	Type   TaxType
}

// TaxPrice impuesto asignado a un ítem. Derivado de TaxRule más los flags del cliente.
type TaxPrice struct {
	RuleID   string
	Name     string
	Rate     decimal.Decimal // porcentaje
	Type     TaxType
	Subtract bool // resta del total en lugar de sumar (exento con inclusive_calculated)
}

// Included indica que el impuesto forma parte del precio (inclusive e inclusive_calculated).
func (t TaxPrice) Included() bool {
	return t.Type == TaxInclusive || t.Type == TaxInclusiveCalculated
}

// On calcula el impuesto sobre base, sin redondear.
func (t TaxPrice) On(base decimal.Decimal) decimal.Decimal {
	rate := t.Rate.Div(hundred)
	if t.Included() {
		// base ya contiene el impuesto: base - base/(1+rate)
		return base.Sub(base.Div(decimal.NewFromInt(1).Add(rate)))
	}
	return base.Mul(rate)
}

// effect es lo que el impuesto ya calculado aporta al total del ítem.
func (t TaxPrice) effect(amount decimal.Decimal) decimal.Decimal {
	switch {
	case t.Subtract:
		return amount.Neg()
	case t.Included():
		return decimal.Zero
	default:
		return amount
	}
}
