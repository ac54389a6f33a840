package pricing_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/billing-core/internal/domain"
	"github.com/jhoicas/billing-core/internal/domain/pricing"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func boolPtr(b bool) *bool { return &b }

func rule(id, amount string, typ pricing.TaxType) pricing.TaxRule {
	return pricing.TaxRule{ID: id, Name: "tax " + id, Amount: d(amount), Type: typ}
}

func line(price, qty string) pricing.LineItem {
	return pricing.LineItem{Price: d(price), Qty: d(qty), Description: "hosting", Taxable: true}
}

func taxedSettings() pricing.Settings {
	return pricing.Settings{EnableTax: true}
}

func build(t *testing.T, lines []pricing.LineItem, rules []pricing.TaxRule, s pricing.Settings) *pricing.ItemPriceCollection {
	t.Helper()
	c, err := pricing.NewItemPriceBuilder().Build(pricing.InvoiceMeta{}, lines, rules, s)
	require.NoError(t, err)
	return c
}

// ── flags globales ───────────────────────────────────────────────────────────

func TestBuild_SinImpuestoGlobalNoAsignaImpuestos(t *testing.T) {
	rules := []pricing.TaxRule{
		rule("1", "8", pricing.TaxExclusive),
		rule("2", "5", pricing.TaxInclusiveCalculated),
	}
	s := pricing.Settings{EnableTax: false, CascadeTax: true, TaxExempt: true}
	c := build(t, []pricing.LineItem{line("10", "1"), line("20", "3")}, rules, s)

	require.Equal(t, 2, c.Len())
	for _, item := range c.Items() {
		assert.Empty(t, item.Taxes(), "enable_tax=false no debe asignar impuestos a %s", item.Key())
	}
}

func TestBuild_LineaNoGravableNoRecibeImpuestos(t *testing.T) {
	exempt := line("10", "1")
	exempt.Taxable = false
	c := build(t, []pricing.LineItem{exempt, line("10", "1")}, []pricing.TaxRule{rule("1", "8", pricing.TaxExclusive)}, taxedSettings())

	items := c.Items()
	assert.Empty(t, items[0].Taxes())
	assert.Len(t, items[1].Taxes(), 1)
}

func TestBuild_ImpuestoEnCeroSeDescarta(t *testing.T) {
	rules := []pricing.TaxRule{
		rule("zero", "0", pricing.TaxExclusive),
		rule("zero-calc", "0.000", pricing.TaxInclusiveCalculated),
		rule("vat", "19", pricing.TaxExclusive),
	}
	for _, s := range []pricing.Settings{
		{EnableTax: true},
		{EnableTax: true, CascadeTax: true},
		{EnableTax: true, TaxExempt: true},
	} {
		c := build(t, []pricing.LineItem{line("100", "1")}, rules, s)
		for _, tax := range c.Items()[0].Taxes() {
			assert.NotContains(t, []string{"zero", "zero-calc"}, tax.RuleID)
		}
	}
}

func TestBuild_ExentoSoloConservaInclusiveCalculadoConResta(t *testing.T) {
	rules := []pricing.TaxRule{
		rule("ex", "8", pricing.TaxExclusive),
		rule("in", "5", pricing.TaxInclusive),
		rule("calc", "10", pricing.TaxInclusiveCalculated),
	}
	s := pricing.Settings{EnableTax: true, TaxExempt: true}
	c := build(t, []pricing.LineItem{line("110", "1")}, rules, s)

	taxes := c.Items()[0].Taxes()
	require.Len(t, taxes, 1)
	assert.Equal(t, "calc", taxes[0].RuleID)
	assert.Equal(t, pricing.TaxInclusiveCalculated, taxes[0].Type)
	assert.True(t, taxes[0].Subtract, "inclusive_calculated de un exento debe restar")
}

func TestBuild_NoExentoNoResta(t *testing.T) {
	c := build(t, []pricing.LineItem{line("110", "1")}, []pricing.TaxRule{rule("calc", "10", pricing.TaxInclusiveCalculated)}, taxedSettings())
	taxes := c.Items()[0].Taxes()
	require.Len(t, taxes, 1)
	assert.False(t, taxes[0].Subtract)
}

// ── agrupación en cascada ────────────────────────────────────────────────────

func TestBuild_CascadaAsignaUnSoloGrupo(t *testing.T) {
	rules := []pricing.TaxRule{rule("1", "10", pricing.TaxExclusive), rule("2", "10", pricing.TaxExclusive)}
	s := pricing.Settings{EnableTax: true, CascadeTax: true}
	c := build(t, []pricing.LineItem{line("100", "1")}, rules, s)

	groups := c.Items()[0].TaxGroups()
	require.Len(t, groups, 1)
	assert.Len(t, groups[0], 2)
}

func TestBuild_SinCascadaAsignaUnGrupoPorImpuesto(t *testing.T) {
	rules := []pricing.TaxRule{rule("1", "10", pricing.TaxExclusive), rule("2", "10", pricing.TaxExclusive)}
	c := build(t, []pricing.LineItem{line("100", "1")}, rules, taxedSettings())

	groups := c.Items()[0].TaxGroups()
	require.Len(t, groups, 2)
	assert.Len(t, groups[0], 1)
	assert.Len(t, groups[1], 1)
}

func TestBuild_OverrideDeCascadaPorLinea(t *testing.T) {
	rules := []pricing.TaxRule{
		rule("1", "10", pricing.TaxExclusive),
		rule("2", "10", pricing.TaxExclusive),
		rule("3", "5", pricing.TaxExclusive),
	}
	l := line("100", "1")
	l.TaxRefs = []pricing.TaxRef{
		{TaxRuleID: "1"},
		{TaxRuleID: "2"},
		{TaxRuleID: "3", Cascade: boolPtr(false)},
	}
	s := pricing.Settings{EnableTax: true, CascadeTax: true}
	c := build(t, []pricing.LineItem{l}, rules, s)

	groups := c.Items()[0].TaxGroups()
	require.Len(t, groups, 2)
	assert.Equal(t, []string{"1", "2"}, []string{groups[0][0].RuleID, groups[0][1].RuleID})
	assert.Equal(t, "3", groups[1][0].RuleID)
}

func TestBuild_TaxRefsLimitanLasReglas(t *testing.T) {
	rules := []pricing.TaxRule{rule("1", "10", pricing.TaxExclusive), rule("2", "7", pricing.TaxExclusive)}
	l := line("100", "1")
	l.TaxRefs = []pricing.TaxRef{{TaxRuleID: "2"}, {TaxRuleID: "2"}, {TaxRuleID: "desconocida"}}
	c := build(t, []pricing.LineItem{l}, rules, taxedSettings())

	taxes := c.Items()[0].Taxes()
	require.Len(t, taxes, 1)
	assert.Equal(t, "2", taxes[0].RuleID)
}

// ── claves y validación ──────────────────────────────────────────────────────

func TestBuild_ClavesPorSecuencia(t *testing.T) {
	c := build(t, []pricing.LineItem{line("1", "1"), line("2", "1")}, nil, taxedSettings())
	keys := []string{c.Items()[0].Key(), c.Items()[1].Key()}
	assert.Equal(t, []string{"line-0", "line-1"}, keys)
}

func TestBuild_ClavesPorFactura(t *testing.T) {
	l1, l2 := line("1", "1"), line("2", "1")
	l1.ID, l2.ID = "10", "11"
	svc := "svc-1"
	l2.ServiceID = &svc

	c, err := pricing.NewItemPriceBuilder().Build(
		pricing.InvoiceMeta{InvoiceID: "7", Keying: pricing.KeyByInvoice},
		[]pricing.LineItem{l1, l2}, nil, taxedSettings(),
	)
	require.NoError(t, err)

	item, ok := c.Get("invoice-7-11")
	require.True(t, ok)
	assert.Equal(t, "svc-1", item.Meta()["service_id"])
	assert.Equal(t, "7", item.Meta()["invoice_id"])
	_, ok = c.Get("invoice-7-10")
	assert.True(t, ok)
}

func TestBuild_ErrorSiFaltaIdentidadDeLinea(t *testing.T) {
	_, err := pricing.NewItemPriceBuilder().Build(
		pricing.InvoiceMeta{InvoiceID: "7", Keying: pricing.KeyByInvoice},
		[]pricing.LineItem{line("1", "1")}, nil, taxedSettings(),
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "lines[0].id", verr.Field)
}

func TestBuild_ErrorSiFaltaFactura(t *testing.T) {
	_, err := pricing.NewItemPriceBuilder().Build(
		pricing.InvoiceMeta{Keying: pricing.KeyByInvoice}, nil, nil, taxedSettings(),
	)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBuild_ErrorSiLineaDuplicada(t *testing.T) {
	l := line("1", "1")
	l.ID = "10"
	_, err := pricing.NewItemPriceBuilder().Build(
		pricing.InvoiceMeta{InvoiceID: "7", Keying: pricing.KeyByInvoice},
		[]pricing.LineItem{l, l}, nil, taxedSettings(),
	)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBuild_ErrorSiCantidadNegativa(t *testing.T) {
	_, err := pricing.NewItemPriceBuilder().Build(pricing.InvoiceMeta{}, []pricing.LineItem{line("1", "-1")}, nil, taxedSettings())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBuild_ErrorSiReglaInvalida(t *testing.T) {
	cases := map[string]pricing.TaxRule{
		"sin id":         {Amount: d("5"), Type: pricing.TaxExclusive},
		"tipo":           {ID: "1", Amount: d("5"), Type: "vat"},
		"monto negativo": {ID: "1", Amount: d("-5"), Type: pricing.TaxExclusive},
	}
	for name, r := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := pricing.NewItemPriceBuilder().Build(pricing.InvoiceMeta{}, []pricing.LineItem{line("1", "1")}, []pricing.TaxRule{r}, taxedSettings())
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestBuild_PrecioYCantidadAusentesValenCero(t *testing.T) {
	c := build(t, []pricing.LineItem{{Description: "vacía", Taxable: true}}, []pricing.TaxRule{rule("1", "8", pricing.TaxExclusive)}, taxedSettings())
	item := c.Items()[0]
	assert.True(t, item.Subtotal().IsZero())

	total, err := item.Total(2)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}
