package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de factura.
const (
	InvoiceStatusDraft  = "draft"
	InvoiceStatusActive = "active"
	InvoiceStatusVoid   = "void"
)

// Invoice representa la cabecera de una factura.
type Invoice struct {
	ID         string
	ClientID   string
	Number     string
	Currency   string
	Status     string
	DateBilled time.Time
	DateDue    time.Time
	Subtotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	Total      decimal.Decimal
	CreatedAt  time.Time
}

// InvoiceLine representa una línea de la factura.
type InvoiceLine struct {
	ID          string
	InvoiceID   string
	ServiceID   *string
	Description string
	Qty         decimal.Decimal
	Amount      decimal.Decimal // precio unitario
	Taxable     bool
	Order       int
	Taxes       []InvoiceLineTax
}

// InvoiceLineTax asociación de una regla de impuesto a una línea.
// Cascade es la preferencia de cascada registrada para esa línea (nil = usar la configuración del cliente).
type InvoiceLineTax struct {
	LineID    string
	TaxRuleID string
	Cascade   *bool
}
