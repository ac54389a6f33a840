package pricing

import (
	"github.com/shopspring/decimal"
)

// TaxLine total de una regla de impuesto en todo el documento.
type TaxLine struct {
	RuleID   string
	Name     string
	Type     TaxType
	Subtract bool
	Amount   decimal.Decimal
}

// Totals resultado agregado de una colección.
// GrandTotal = Subtotal + TaxTotal. IncludedTax ya forma parte de Subtotal.
type Totals struct {
	Subtotal    decimal.Decimal
	TaxTotal    decimal.Decimal
	IncludedTax decimal.Decimal
	GrandTotal  decimal.Decimal
	Taxes       []TaxLine
	Items       []ItemBreakdown
}

// Aggregator suma ítems e impuestos con aritmética decimal exacta.
type Aggregator struct {
	precision int32
}

// NewAggregator construye el agregador con los decimales de la moneda.
func NewAggregator(precision int32) *Aggregator {
	return &Aggregator{precision: precision}
}

// Precision decimales usados para redondear.
func (a *Aggregator) Precision() int32 { return a.precision }

// Total calcula subtotal, impuestos y total. No modifica la colección, por lo que
// dos llamadas sobre la misma colección dan el mismo resultado.
func (a *Aggregator) Total(c *ItemPriceCollection) (Totals, error) {
	t := Totals{
		Subtotal:    decimal.Zero,
		TaxTotal:    decimal.Zero,
		IncludedTax: decimal.Zero,
	}
	byRule := make(map[string]int)

	for _, item := range c.Items() {
		b, err := item.Breakdown(a.precision)
		if err != nil {
			return Totals{}, err
		}
		t.Items = append(t.Items, b)
		t.Subtotal = t.Subtotal.Add(b.Subtotal)
		t.TaxTotal = t.TaxTotal.Add(b.TaxTotal)
		t.IncludedTax = t.IncludedTax.Add(b.IncludedTax)

		for _, applied := range b.Taxes {
			n, ok := byRule[applied.Tax.RuleID]
			if !ok {
				n = len(t.Taxes)
				byRule[applied.Tax.RuleID] = n
				t.Taxes = append(t.Taxes, TaxLine{
					RuleID:   applied.Tax.RuleID,
					Name:     applied.Tax.Name,
					Type:     applied.Tax.Type,
					Subtract: applied.Tax.Subtract,
					Amount:   decimal.Zero,
				})
			}
			t.Taxes[n].Amount = t.Taxes[n].Amount.Add(applied.Amount)
		}
	}

	t.Subtotal = Round(t.Subtotal, a.precision)
	t.GrandTotal = t.Subtotal.Add(t.TaxTotal)
	return t, nil
}
