package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/billing-core/internal/domain"
)

// ItemPrice ítem con precio, cantidad, metadatos e impuestos asignados por grupos.
// Cada llamada a SetTaxes crea un grupo: dentro de un grupo los impuestos se acumulan
// (cascada); grupos distintos se calculan de forma independiente sobre la base.
type ItemPrice struct {
	key         string
	price       decimal.Decimal
	qty         decimal.Decimal
	description string
	meta        map[string]any
	taxGroups   [][]TaxPrice
}

// NewItemPrice construye un ítem sin impuestos.
func NewItemPrice(key string, price, qty decimal.Decimal, description string) *ItemPrice {
	return &ItemPrice{
		key:         key,
		price:       price,
		qty:         qty,
		description: description,
		meta:        make(map[string]any),
	}
}

// SetTaxes asigna un grupo de impuestos. Una llamada sin impuestos no hace nada.
func (i *ItemPrice) SetTaxes(taxes ...TaxPrice) {
	if len(taxes) == 0 {
		return
	}
	group := make([]TaxPrice, len(taxes))
	copy(group, taxes)
	i.taxGroups = append(i.taxGroups, group)
}

// SetMeta guarda un metadato opaco.
func (i *ItemPrice) SetMeta(key string, value any) {
	i.meta[key] = value
}

func (i *ItemPrice) Key() string               { return i.key }
func (i *ItemPrice) Price() decimal.Decimal    { return i.price }
func (i *ItemPrice) Qty() decimal.Decimal      { return i.qty }
func (i *ItemPrice) Description() string       { return i.description }
func (i *ItemPrice) Subtotal() decimal.Decimal { return i.price.Mul(i.qty) }

// Meta devuelve una copia de los metadatos.
func (i *ItemPrice) Meta() map[string]any {
	out := make(map[string]any, len(i.meta))
	for k, v := range i.meta {
		out[k] = v
	}
	return out
}

// TaxGroups devuelve una copia de los grupos de impuestos en orden de asignación.
func (i *ItemPrice) TaxGroups() [][]TaxPrice {
	out := make([][]TaxPrice, len(i.taxGroups))
	for n, g := range i.taxGroups {
		out[n] = append([]TaxPrice(nil), g...)
	}
	return out
}

// Taxes devuelve todos los impuestos asignados, aplanados.
func (i *ItemPrice) Taxes() []TaxPrice {
	var out []TaxPrice
	for _, g := range i.taxGroups {
		out = append(out, g...)
	}
	return out
}

// AppliedTax impuesto ya calculado sobre un ítem.
type AppliedTax struct {
	Tax    TaxPrice
	Base   decimal.Decimal // base sobre la que se calculó (incluye la cascada previa)
	Amount decimal.Decimal // siempre positivo para bases positivas; Tax.Subtract indica el signo
}

// ItemBreakdown resultado del cálculo de un ítem.
type ItemBreakdown struct {
	Key         string
	Subtotal    decimal.Decimal
	Taxes       []AppliedTax
	TaxTotal    decimal.Decimal // suma con signo de lo que los impuestos cambian el total
	IncludedTax decimal.Decimal // inclusive e inclusive_calculated contenidos en el precio
	Total       decimal.Decimal
}

// Breakdown calcula los impuestos del ítem. Subtotal e impuestos se redondean a precision decimales.
// No modifica el ítem.
func (i *ItemPrice) Breakdown(precision int32) (ItemBreakdown, error) {
	base := Round(i.Subtotal(), precision)
	b := ItemBreakdown{
		Key:         i.key,
		Subtotal:    base,
		TaxTotal:    decimal.Zero,
		IncludedTax: decimal.Zero,
	}
	subtracted := decimal.Zero

	for _, group := range i.taxGroups {
		running := base
		for _, t := range group {
			amount := Round(t.On(running), precision)
			effect := t.effect(amount)
			b.Taxes = append(b.Taxes, AppliedTax{Tax: t, Base: running, Amount: amount})
			b.TaxTotal = b.TaxTotal.Add(effect)
			if t.Subtract {
				subtracted = subtracted.Add(amount)
			} else if t.Included() {
				b.IncludedTax = b.IncludedTax.Add(amount)
			}
			running = running.Add(effect)
		}
	}
	b.Total = base.Add(b.TaxTotal)

	// Las líneas de crédito (base negativa) quedan fuera de estas comprobaciones.
	if !base.IsNegative() {
		if subtracted.GreaterThan(base) {
			return ItemBreakdown{}, fmt.Errorf("%w: ítem %s resta %s sobre base %s",
				domain.ErrArithmeticInconsistency, i.key, subtracted.String(), base.String())
		}
		if b.Total.IsNegative() {
			return ItemBreakdown{}, fmt.Errorf("%w: ítem %s con total negativo %s",
				domain.ErrArithmeticInconsistency, i.key, b.Total.String())
		}
	}
	return b, nil
}

// Total devuelve el total del ítem después de impuestos.
func (i *ItemPrice) Total(precision int32) (decimal.Decimal, error) {
	b, err := i.Breakdown(precision)
	if err != nil {
		return decimal.Zero, err
	}
	return b.Total, nil
}
