package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de impuesto.
const (
	TaxTypeExclusive           = "exclusive"
	TaxTypeInclusive           = "inclusive"
	TaxTypeInclusiveCalculated = "inclusive_calculated"
)

// TaxRule regla de impuesto configurada por la empresa.
// Amount es un porcentaje (8 = 8%). Cascade se copia a la línea al asociar la regla.
type TaxRule struct {
	ID        string
	CompanyID string
	Name      string
	Amount    decimal.Decimal
	Type      string
	Cascade   bool
	Level     int
	Status    string
	CreatedAt time.Time
}
