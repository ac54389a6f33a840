package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/billing-core/internal/domain/entity"
	"github.com/jhoicas/billing-core/internal/domain/repository"
)

var (
	_ repository.AccountCcRepository  = (*AccountRepo)(nil)
	_ repository.AccountAchRepository = (*AccountRepo)(nil)
)

// AccountRepo cuentas de pago (tarjeta y ACH) de los contactos.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// CreateCc persiste una tarjeta.
func (r *AccountRepo) CreateCc(ctx context.Context, a *entity.AccountCc) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO accounts_cc (id, contact_id, last_four, type, expiration, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.q.Exec(ctx, query, a.ID, a.ContactID, a.LastFour, a.Type, a.Expiration, a.Status, a.CreatedAt); err != nil {
		return insertErr("cc account", err)
	}
	return nil
}

// GetAllCc tarjetas del contacto (todas, sin filtrar por estado).
func (r *AccountRepo) GetAllCc(ctx context.Context, contactID string) ([]*entity.AccountCc, error) {
	query := `
		SELECT id, contact_id, last_four, type, expiration, status, created_at
		FROM accounts_cc WHERE contact_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, contactID)
	if err != nil {
		return nil, fmt.Errorf("list cc accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.AccountCc
	for rows.Next() {
		var a entity.AccountCc
		if err := rows.Scan(&a.ID, &a.ContactID, &a.LastFour, &a.Type, &a.Expiration, &a.Status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cc account: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// DeleteCc elimina una tarjeta.
func (r *AccountRepo) DeleteCc(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM accounts_cc WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete cc account: %w", err)
	}
	return nil
}

// CreateAch persiste una cuenta ACH.
func (r *AccountRepo) CreateAch(ctx context.Context, a *entity.AccountAch) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO accounts_ach (id, contact_id, last_four, type, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, a.ID, a.ContactID, a.LastFour, a.Type, a.Status, a.CreatedAt); err != nil {
		return insertErr("ach account", err)
	}
	return nil
}

// GetAllAch cuentas ACH del contacto.
func (r *AccountRepo) GetAllAch(ctx context.Context, contactID string) ([]*entity.AccountAch, error) {
	query := `
		SELECT id, contact_id, last_four, type, status, created_at
		FROM accounts_ach WHERE contact_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, contactID)
	if err != nil {
		return nil, fmt.Errorf("list ach accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.AccountAch
	for rows.Next() {
		var a entity.AccountAch
		if err := rows.Scan(&a.ID, &a.ContactID, &a.LastFour, &a.Type, &a.Status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ach account: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// DeleteAch elimina una cuenta ACH.
func (r *AccountRepo) DeleteAch(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM accounts_ach WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete ach account: %w", err)
	}
	return nil
}
