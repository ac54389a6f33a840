package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/billing-core/internal/domain/entity"
	"github.com/jhoicas/billing-core/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste una transacción.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transactions (id, client_id, amount, currency, type, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.q.Exec(ctx, query, t.ID, t.ClientID, t.Amount, t.Currency, t.Type, t.Status, t.CreatedAt); err != nil {
		return insertErr("transaction", err)
	}
	return nil
}

// GetSimpleList página de transacciones del cliente, ordenada por ID.
func (r *TransactionRepo) GetSimpleList(ctx context.Context, clientID string, page, pageSize int) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, client_id, amount, currency, type, status, created_at
		FROM transactions WHERE client_id = $1 ORDER BY id LIMIT $2 OFFSET $3`,
		clientID, pageSize, offset(page, pageSize))
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.ClientID, &t.Amount, &t.Currency, &t.Type, &t.Status, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Delete elimina la fila de la transacción.
func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}
