package repository

import (
	"context"

	"github.com/jhoicas/billing-core/internal/domain/entity"
)

// TaxRuleRepository define el puerto de lectura para reglas de impuesto.
type TaxRuleRepository interface {
	// ListActive devuelve las reglas activas de la empresa ordenadas por nivel.
	ListActive(ctx context.Context, companyID string) ([]*entity.TaxRule, error)
	// GetByIDs devuelve las reglas pedidas (las inexistentes se omiten), ordenadas por nivel.
	GetByIDs(ctx context.Context, ids []string) ([]*entity.TaxRule, error)
}
