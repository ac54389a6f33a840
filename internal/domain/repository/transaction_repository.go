package repository

import (
	"context"

	"github.com/jhoicas/billing-core/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para Transaction.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	// GetSimpleList lista transacciones del cliente paginadas (page empieza en 1).
	GetSimpleList(ctx context.Context, clientID string, page, pageSize int) ([]*entity.Transaction, error)
	Delete(ctx context.Context, id string) error
}
