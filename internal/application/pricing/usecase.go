package pricing

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/billing-core/internal/application/dto"
	"github.com/jhoicas/billing-core/internal/domain"
	"github.com/jhoicas/billing-core/internal/domain/entity"
	engine "github.com/jhoicas/billing-core/internal/domain/pricing"
	"github.com/jhoicas/billing-core/internal/domain/repository"
	"github.com/jhoicas/billing-core/pkg/logger"
)

// Config valores por defecto del cálculo.
type Config struct {
	Currency string          // moneda cuando la petición o la factura no traen una
	Defaults engine.Settings // flags de la empresa; TaxExempt se ignora
}

// Observer recibe el resultado de cada cálculo (métricas).
type Observer interface {
	ObservePricing(operation string, err error)
}

// UseCase cálculo de totales de previsualizaciones y facturas.
type UseCase struct {
	taxRules repository.TaxRuleRepository
	invoices repository.InvoiceRepository
	clients  repository.ClientRepository
	settings repository.ClientSettingRepository
	builder  *engine.ItemPriceBuilder
	validate *validator.Validate
	cfg      Config
	observer Observer
	log      *logger.Logger
}

// NewUseCase construye el caso de uso. observer puede ser nil.
func NewUseCase(
	taxRules repository.TaxRuleRepository,
	invoices repository.InvoiceRepository,
	clients repository.ClientRepository,
	settings repository.ClientSettingRepository,
	cfg Config,
	observer Observer,
	log *logger.Logger,
) *UseCase {
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	return &UseCase{
		taxRules: taxRules,
		invoices: invoices,
		clients:  clients,
		settings: settings,
		builder:  engine.NewItemPriceBuilder(),
		validate: newValidator(),
		cfg:      cfg,
		observer: observer,
		log:      log,
	}
}

// Preview valora líneas efímeras con los flags y reglas de la petición.
func (uc *UseCase) Preview(ctx context.Context, companyID string, in dto.PreviewRequest) (out *dto.PricingResponse, err error) {
	defer func() { uc.observe("preview", err) }()

	if err := validateRequest(uc.validate, in); err != nil {
		return nil, err
	}
	currency := strings.ToUpper(lo.Ternary(in.Currency != "", in.Currency, uc.cfg.Currency))
	precision, err := engine.CurrencyPrecision(currency)
	if err != nil {
		return nil, err
	}
	rules, err := uc.previewRules(ctx, companyID, in)
	if err != nil {
		return nil, err
	}

	lines := make([]engine.LineItem, 0, len(in.Lines))
	for n, l := range in.Lines {
		price := l.Price
		if l.Proration != nil {
			price, err = engine.Prorate(l.Price, engine.ProrationWindow{
				From:      l.Proration.From,
				TermStart: l.Proration.TermStart,
				TermEnd:   l.Proration.TermEnd,
			}, precision)
			if err != nil {
				return nil, fmt.Errorf("lines[%d]: %w", n, err)
			}
		}
		lines = append(lines, engine.LineItem{
			Price:       price,
			Qty:         l.Qty,
			Description: l.Description,
			ServiceID:   l.ServiceID,
			Taxable:     l.Taxable == nil || *l.Taxable,
			TaxRefs: lo.Map(l.Taxes, func(t dto.TaxRefRequest, _ int) engine.TaxRef {
				return engine.TaxRef{TaxRuleID: t.TaxRuleID, Cascade: t.Cascade}
			}),
		})
	}

	settings := engine.Settings{
		EnableTax:  in.Settings.EnableTax,
		CascadeTax: in.Settings.CascadeTax,
		TaxExempt:  in.Settings.TaxExempt,
	}
	collection, err := uc.builder.Build(engine.InvoiceMeta{Keying: engine.KeyBySequence}, lines, rules, settings)
	if err != nil {
		return nil, err
	}
	totals, err := engine.NewAggregator(precision).Total(collection)
	if err != nil {
		return nil, err
	}
	resp := toResponse(collection, totals)
	resp.Currency = currency
	return resp, nil
}

func (uc *UseCase) previewRules(ctx context.Context, companyID string, in dto.PreviewRequest) ([]engine.TaxRule, error) {
	if len(in.TaxRules) > 0 {
		return lo.Map(in.TaxRules, func(r dto.TaxRuleRequest, _ int) engine.TaxRule {
			return engine.TaxRule{ID: r.ID, Name: r.Name, Amount: r.Amount, Type: engine.TaxType(r.Type)}
		}), nil
	}
	var (
		stored []*entity.TaxRule
		err    error
	)
	if len(in.TaxRuleIDs) > 0 {
		stored, err = uc.taxRules.GetByIDs(ctx, lo.Uniq(in.TaxRuleIDs))
	} else {
		stored, err = uc.taxRules.ListActive(ctx, companyID)
	}
	if err != nil {
		return nil, fmt.Errorf("load tax rules: %w", err)
	}
	return toEngineRules(stored), nil
}

// InvoiceTotals recalcula los totales de una factura persistida con la configuración
// de impuestos vigente del cliente.
func (uc *UseCase) InvoiceTotals(ctx context.Context, invoiceID string) (out *dto.PricingResponse, err error) {
	defer func() { uc.observe("invoice_totals", err) }()

	if invoiceID == "" {
		return nil, domain.NewValidationError("invoice_id", "requerido")
	}
	inv, err := uc.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	client, err := uc.clients.GetByID(ctx, inv.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("cliente %s de la factura %s: %w", inv.ClientID, inv.ID, domain.ErrNotFound)
	}
	invLines, err := uc.invoices.GetLines(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	overrides, err := uc.settings.GetSettings(ctx, client.ID)
	if err != nil {
		return nil, err
	}
	settings := SettingsFromClient(uc.cfg.Defaults, overrides)

	ruleIDs := lo.Uniq(lo.FlatMap(invLines, func(l *entity.InvoiceLine, _ int) []string {
		return lo.Map(l.Taxes, func(t entity.InvoiceLineTax, _ int) string { return t.TaxRuleID })
	}))
	var rules []engine.TaxRule
	if len(ruleIDs) > 0 {
		stored, err := uc.taxRules.GetByIDs(ctx, ruleIDs)
		if err != nil {
			return nil, fmt.Errorf("load tax rules: %w", err)
		}
		rules = toEngineRules(stored)
	}

	lines := lo.Map(invLines, func(l *entity.InvoiceLine, _ int) engine.LineItem {
		return engine.LineItem{
			ID:          l.ID,
			Price:       l.Amount,
			Qty:         l.Qty,
			Description: l.Description,
			ServiceID:   l.ServiceID,
			// Una línea de factura solo lleva los impuestos que tiene asociados.
			Taxable: l.Taxable && len(l.Taxes) > 0,
			TaxRefs: lo.Map(l.Taxes, func(t entity.InvoiceLineTax, _ int) engine.TaxRef {
				return engine.TaxRef{TaxRuleID: t.TaxRuleID, Cascade: t.Cascade}
			}),
		}
	})

	currency, _ := lo.Coalesce(inv.Currency, client.Currency, uc.cfg.Currency)
	precision, err := engine.CurrencyPrecision(currency)
	if err != nil {
		return nil, err
	}
	collection, err := uc.builder.Build(engine.InvoiceMeta{InvoiceID: inv.ID, Keying: engine.KeyByInvoice}, lines, rules, settings)
	if err != nil {
		return nil, err
	}
	totals, err := engine.NewAggregator(precision).Total(collection)
	if err != nil {
		uc.log.Warn().Err(err).Str("invoice_id", inv.ID).Msg("totales inconsistentes")
		return nil, err
	}
	resp := toResponse(collection, totals)
	resp.InvoiceID = inv.ID
	resp.Number = inv.Number
	resp.Currency = currency
	return resp, nil
}

// SettingsFromClient combina los flags de la empresa con los sobrescritos por el cliente.
// Valores no booleanos se ignoran.
func SettingsFromClient(defaults engine.Settings, overrides map[string]string) engine.Settings {
	s := engine.Settings{EnableTax: defaults.EnableTax, CascadeTax: defaults.CascadeTax}
	flag := func(key string, dst *bool) {
		if v, ok := overrides[key]; ok {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			}
		}
	}
	flag(entity.SettingEnableTax, &s.EnableTax)
	flag(entity.SettingCascadeTax, &s.CascadeTax)
	flag(entity.SettingTaxExempt, &s.TaxExempt)
	return s
}

func (uc *UseCase) observe(operation string, err error) {
	if uc.observer != nil {
		uc.observer.ObservePricing(operation, err)
	}
}

func toEngineRules(stored []*entity.TaxRule) []engine.TaxRule {
	return lo.Map(stored, func(r *entity.TaxRule, _ int) engine.TaxRule {
		return engine.TaxRule{ID: r.ID, Name: r.Name, Amount: r.Amount, Type: engine.TaxType(r.Type)}
	})
}

func toResponse(c *engine.ItemPriceCollection, t engine.Totals) *dto.PricingResponse {
	resp := &dto.PricingResponse{
		Subtotal:    t.Subtotal,
		TaxTotal:    t.TaxTotal,
		IncludedTax: t.IncludedTax,
		GrandTotal:  t.GrandTotal,
		Taxes: lo.Map(t.Taxes, func(tl engine.TaxLine, _ int) dto.TaxLineResponse {
			return dto.TaxLineResponse{RuleID: tl.RuleID, Name: tl.Name, Type: string(tl.Type), Subtract: tl.Subtract, Amount: tl.Amount}
		}),
		Items: make([]dto.ItemResponse, 0, len(t.Items)),
	}
	for _, b := range t.Items {
		item := dto.ItemResponse{
			Key:      b.Key,
			Subtotal: b.Subtotal,
			TaxTotal: b.TaxTotal,
			Total:    b.Total,
			Price:    decimal.Zero,
			Qty:      decimal.Zero,
			Taxes: lo.Map(b.Taxes, func(a engine.AppliedTax, _ int) dto.AppliedTaxResponse {
				return dto.AppliedTaxResponse{
					RuleID:   a.Tax.RuleID,
					Name:     a.Tax.Name,
					Type:     string(a.Tax.Type),
					Rate:     a.Tax.Rate,
					Base:     a.Base,
					Amount:   a.Amount,
					Subtract: a.Tax.Subtract,
				}
			}),
		}
		if src, ok := c.Get(b.Key); ok {
			item.Description = src.Description()
			item.Price = src.Price()
			item.Qty = src.Qty()
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}
