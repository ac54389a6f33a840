package pricing

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/billing-core/internal/domain"
)

// KeyStrategy forma de generar la clave única de cada ítem.
type KeyStrategy int

const (
	// KeyBySequence "line-{index}", para previsualizaciones efímeras.
	KeyBySequence KeyStrategy = iota
	// KeyByInvoice "invoice-{invoiceID}-{lineID}", para facturas persistidas.
	KeyByInvoice
)

// Settings flags de impuestos del cliente/empresa para un cálculo.
type Settings struct {
	EnableTax  bool
	CascadeTax bool
	TaxExempt  bool
}

// InvoiceMeta identidad del documento que se está calculando.
type InvoiceMeta struct {
	InvoiceID string
	Keying    KeyStrategy
}

// TaxRef referencia de una línea a una regla, con override opcional de cascada.
type TaxRef struct {
	TaxRuleID string
	Cascade   *bool
}

// LineItem línea cruda a valorar. Price y Qty en cero son válidos.
type LineItem struct {
	ID          string
	Price       decimal.Decimal
	Qty         decimal.Decimal
	Description string
	ServiceID   *string
	Taxable     bool
	// TaxRefs vacío = todas las reglas aplicables.
	TaxRefs []TaxRef
	Meta    map[string]any
}

// candidate impuesto aplicable tras filtrar por exención y monto cero.
type candidate struct {
	price   TaxPrice
	cascade bool
}

// ItemPriceBuilder convierte líneas y reglas en ítems con impuestos asignados.
// No tiene estado; es seguro reutilizarlo.
type ItemPriceBuilder struct{}

// NewItemPriceBuilder construye el builder.
func NewItemPriceBuilder() *ItemPriceBuilder {
	return &ItemPriceBuilder{}
}

// Build valora las líneas. No hace I/O.
func (b *ItemPriceBuilder) Build(meta InvoiceMeta, lines []LineItem, rules []TaxRule, settings Settings) (*ItemPriceCollection, error) {
	if meta.Keying == KeyByInvoice && meta.InvoiceID == "" {
		return nil, domain.NewValidationError("invoice_id", "requerido para claves por factura")
	}
	if err := validateRules(rules); err != nil {
		return nil, err
	}

	var candidates []candidate
	if settings.EnableTax {
		candidates = buildCandidates(rules, settings)
	}
	byRule := lo.SliceToMap(candidates, func(c candidate) (string, candidate) {
		return c.price.RuleID, c
	})

	collection := NewItemPriceCollection()
	for idx, line := range lines {
		key, err := itemKey(meta, idx, line)
		if err != nil {
			return nil, err
		}
		if line.Qty.IsNegative() {
			return nil, domain.NewValidationError(fmt.Sprintf("lines[%d].qty", idx), "no puede ser negativa")
		}

		item := NewItemPrice(key, line.Price, line.Qty, line.Description)
		for k, v := range line.Meta {
			item.SetMeta(k, v)
		}
		item.SetMeta("index", idx)
		if line.ID != "" {
			item.SetMeta("line_id", line.ID)
		}
		if line.ServiceID != nil {
			item.SetMeta("service_id", *line.ServiceID)
		}
		if meta.InvoiceID != "" {
			item.SetMeta("invoice_id", meta.InvoiceID)
		}

		if settings.EnableTax && line.Taxable && len(candidates) > 0 {
			assignTaxes(item, applicable(line, candidates, byRule))
		}

		if err := collection.Append(item); err != nil {
			return nil, err
		}
	}
	return collection, nil
}

func itemKey(meta InvoiceMeta, idx int, line LineItem) (string, error) {
	if meta.Keying == KeyByInvoice {
		if line.ID == "" {
			return "", domain.NewValidationError(fmt.Sprintf("lines[%d].id", idx), "requerido para claves por factura")
		}
		return fmt.Sprintf("invoice-%s-%s", meta.InvoiceID, line.ID), nil
	}
	return fmt.Sprintf("line-%d", idx), nil
}

func validateRules(rules []TaxRule) error {
	for n, r := range rules {
		if r.ID == "" {
			return domain.NewValidationError(fmt.Sprintf("tax_rules[%d].id", n), "requerido")
		}
		if _, err := ParseTaxType(string(r.Type)); err != nil {
			return domain.NewValidationError(fmt.Sprintf("tax_rules[%d].type", n), "tipo desconocido: "+string(r.Type))
		}
		if r.Amount.IsNegative() {
			return domain.NewValidationError(fmt.Sprintf("tax_rules[%d].amount", n), "no puede ser negativo")
		}
	}
	return nil
}

// buildCandidates aplica exención y descarta montos en cero.
// Exento: solo sobrevive inclusive_calculated, marcado para restar.
func buildCandidates(rules []TaxRule, settings Settings) []candidate {
	return lo.FilterMap(rules, func(r TaxRule, _ int) (candidate, bool) {
		if r.Amount.IsZero() {
			return candidate{}, false
		}
		calculated := r.Type == TaxInclusiveCalculated
		if settings.TaxExempt && !calculated {
			return candidate{}, false
		}
		return candidate{
			price: TaxPrice{
				RuleID:   r.ID,
				Name:     r.Name,
				Rate:     r.Amount,
				Type:     r.Type,
				Subtract: settings.TaxExempt && calculated,
			},
			cascade: settings.CascadeTax,
		}, true
	})
}

// applicable resuelve los candidatos de una línea aplicando el override de cascada.
func applicable(line LineItem, candidates []candidate, byRule map[string]candidate) []candidate {
	if len(line.TaxRefs) == 0 {
		return candidates
	}
	seen := make(map[string]bool, len(line.TaxRefs))
	return lo.FilterMap(line.TaxRefs, func(ref TaxRef, _ int) (candidate, bool) {
		c, ok := byRule[ref.TaxRuleID]
		if !ok || seen[ref.TaxRuleID] {
			return candidate{}, false
		}
		seen[ref.TaxRuleID] = true
		if ref.Cascade != nil {
			c.cascade = *ref.Cascade
		}
		return c, true
	})
}

// assignTaxes: el grupo en cascada en una sola llamada; los demás uno por uno.
func assignTaxes(item *ItemPrice, taxes []candidate) {
	cascade, noCascade := lo.FilterReject(taxes, func(c candidate, _ int) bool {
		return c.cascade
	})
	item.SetTaxes(lo.Map(cascade, func(c candidate, _ int) TaxPrice { return c.price })...)
	for _, c := range noCascade {
		item.SetTaxes(c.price)
	}
}
