package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/billing-core/internal/domain/entity"
	"github.com/jhoicas/billing-core/internal/domain/repository"
)

var _ repository.TaxRuleRepository = (*TaxRuleRepo)(nil)

const taxColumns = `id, company_id, name, amount, type, cascade, level, status, created_at`

// TaxRuleRepo reglas de impuesto (tabla taxes).
type TaxRuleRepo struct {
	q Querier
}

// NewTaxRuleRepository construye el adaptador.
func NewTaxRuleRepository(q Querier) *TaxRuleRepo {
	return &TaxRuleRepo{q: q}
}

// Create persiste una regla (seed y tests de integración).
func (r *TaxRuleRepo) Create(ctx context.Context, t *entity.TaxRule) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `INSERT INTO taxes (` + taxColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, t.ID, t.CompanyID, t.Name, t.Amount, t.Type, t.Cascade, t.Level, t.Status, t.CreatedAt)
	if err != nil {
		return insertErr("tax rule", err)
	}
	return nil
}

// ListActive reglas activas de la empresa por nivel.
func (r *TaxRuleRepo) ListActive(ctx context.Context, companyID string) ([]*entity.TaxRule, error) {
	return r.list(ctx,
		`SELECT `+taxColumns+` FROM taxes WHERE company_id = $1 AND status = 'active' ORDER BY level, id`,
		companyID)
}

// GetByIDs reglas pedidas, por nivel. Las inexistentes se omiten.
func (r *TaxRuleRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.TaxRule, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx,
		`SELECT `+taxColumns+` FROM taxes WHERE id::text = ANY($1::text[]) ORDER BY level, id`,
		ids)
}

func (r *TaxRuleRepo) list(ctx context.Context, sql string, args ...any) ([]*entity.TaxRule, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list tax rules: %w", err)
	}
	defer rows.Close()
	var list []*entity.TaxRule
	for rows.Next() {
		var t entity.TaxRule
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Name, &t.Amount, &t.Type, &t.Cascade, &t.Level, &t.Status, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tax rule: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
