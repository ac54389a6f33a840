package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PreviewRequest body para POST /api/pricing/preview.
// Si TaxRules viene vacío se usan las reglas de TaxRuleIDs; si ambos vienen vacíos,
// las reglas activas de la empresa.
type PreviewRequest struct {
	Currency   string               `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	Settings   TaxSettingsRequest   `json:"settings"`
	TaxRuleIDs []string             `json:"tax_rule_ids,omitempty" validate:"omitempty,dive,required"`
	TaxRules   []TaxRuleRequest     `json:"tax_rules,omitempty" validate:"omitempty,dive"`
	Lines      []PreviewLineRequest `json:"lines" validate:"required,min=1,max=500,dive"`
}

// TaxSettingsRequest flags de impuestos del cliente para la previsualización.
type TaxSettingsRequest struct {
	EnableTax  bool `json:"enable_tax"`
	CascadeTax bool `json:"cascade_tax"`
	TaxExempt  bool `json:"tax_exempt"`
}

// TaxRuleRequest regla de impuesto enviada en línea.
type TaxRuleRequest struct {
	ID     string          `json:"id" validate:"required"`
	Name   string          `json:"name" validate:"max=64"`
	Amount decimal.Decimal `json:"amount"` // porcentaje
	Type   string          `json:"type" validate:"required,oneof=exclusive inclusive inclusive_calculated"`
}

// PreviewLineRequest línea a valorar. Taxable ausente = gravable.
type PreviewLineRequest struct {
	Description string            `json:"description" validate:"max=255"`
	Price       decimal.Decimal   `json:"price"`
	Qty         decimal.Decimal   `json:"qty"`
	ServiceID   *string           `json:"service_id,omitempty"`
	Taxable     *bool             `json:"taxable,omitempty"`
	Taxes       []TaxRefRequest   `json:"taxes,omitempty" validate:"omitempty,dive"`
	Proration   *ProrationRequest `json:"proration,omitempty"`
}

// TaxRefRequest referencia de una línea a una regla, con override de cascada.
type TaxRefRequest struct {
	TaxRuleID string `json:"tax_rule_id" validate:"required"`
	Cascade   *bool  `json:"cascade,omitempty"`
}

// ProrationRequest periodo [term_start, term_end) cobrado desde from.
type ProrationRequest struct {
	From      time.Time `json:"from" validate:"required"`
	TermStart time.Time `json:"term_start" validate:"required"`
	TermEnd   time.Time `json:"term_end" validate:"required,gtfield=TermStart"`
}

// PricingResponse totales de una previsualización o factura.
type PricingResponse struct {
	InvoiceID   string            `json:"invoice_id,omitempty"`
	Number      string            `json:"number,omitempty"`
	Currency    string            `json:"currency"`
	Subtotal    decimal.Decimal   `json:"subtotal"`
	TaxTotal    decimal.Decimal   `json:"tax_total"`
	IncludedTax decimal.Decimal   `json:"included_tax"`
	GrandTotal  decimal.Decimal   `json:"grand_total"`
	Taxes       []TaxLineResponse `json:"taxes"`
	Items       []ItemResponse    `json:"items"`
}

// TaxLineResponse total de una regla en el documento.
type TaxLineResponse struct {
	RuleID   string          `json:"rule_id"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Subtract bool            `json:"subtract"`
	Amount   decimal.Decimal `json:"amount"`
}

// ItemResponse ítem valorado.
type ItemResponse struct {
	Key         string               `json:"key"`
	Description string               `json:"description"`
	Price       decimal.Decimal      `json:"price"`
	Qty         decimal.Decimal      `json:"qty"`
	Subtotal    decimal.Decimal      `json:"subtotal"`
	TaxTotal    decimal.Decimal      `json:"tax_total"`
	Total       decimal.Decimal      `json:"total"`
	Taxes       []AppliedTaxResponse `json:"taxes"`
}

// AppliedTaxResponse impuesto aplicado a un ítem.
type AppliedTaxResponse struct {
	RuleID   string          `json:"rule_id"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Rate     decimal.Decimal `json:"rate"`
	Base     decimal.Decimal `json:"base"`
	Amount   decimal.Decimal `json:"amount"`
	Subtract bool            `json:"subtract"`
}
