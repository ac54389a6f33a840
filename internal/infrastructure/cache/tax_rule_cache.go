package cache

import (
	"context"
	"sort"
	"time"

	goCache "github.com/patrickmn/go-cache"

	"github.com/jhoicas/billing-core/internal/domain/entity"
	"github.com/jhoicas/billing-core/internal/domain/repository"
)

var _ repository.TaxRuleRepository = (*TaxRuleCache)(nil)

// TaxRuleCache decorador en memoria de TaxRuleRepository. Las reglas cambian poco y se
// leen en cada cálculo; una regla editada tarda a lo sumo ttl en verse.
type TaxRuleCache struct {
	inner repository.TaxRuleRepository
	cache *goCache.Cache
}

// NewTaxRuleCache envuelve inner. Con ttl <= 0 devuelve inner sin caché.
func NewTaxRuleCache(inner repository.TaxRuleRepository, ttl time.Duration) repository.TaxRuleRepository {
	if ttl <= 0 {
		return inner
	}
	return &TaxRuleCache{inner: inner, cache: goCache.New(ttl, 2*ttl)}
}

func companyKey(companyID string) string { return "company:" + companyID }
func ruleKey(id string) string           { return "rule:" + id }

// ListActive usa la lista de la empresa si está en caché.
func (c *TaxRuleCache) ListActive(ctx context.Context, companyID string) ([]*entity.TaxRule, error) {
	if v, ok := c.cache.Get(companyKey(companyID)); ok {
		return v.([]*entity.TaxRule), nil
	}
	rules, err := c.inner.ListActive(ctx, companyID)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(companyKey(companyID), rules)
	for _, r := range rules {
		c.cache.SetDefault(ruleKey(r.ID), r)
	}
	return rules, nil
}

// GetByIDs pide al repositorio solo las reglas que faltan en caché.
func (c *TaxRuleCache) GetByIDs(ctx context.Context, ids []string) ([]*entity.TaxRule, error) {
	out := make([]*entity.TaxRule, 0, len(ids))
	var missing []string
	for _, id := range ids {
		if v, ok := c.cache.Get(ruleKey(id)); ok {
			out = append(out, v.(*entity.TaxRule))
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) > 0 {
		rules, err := c.inner.GetByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, r := range rules {
			c.cache.SetDefault(ruleKey(r.ID), r)
		}
		out = append(out, rules...)
	}
	// Mismo orden que el repositorio: level, id.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level < out[j].Level
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Invalidate descarta todo lo cacheado (tras editar reglas).
func (c *TaxRuleCache) Invalidate() {
	c.cache.Flush()
}
