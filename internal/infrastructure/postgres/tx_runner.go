package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/billing-core/internal/application/cascade"
)

var _ cascade.CascadeTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCascade inicia una transacción, ejecuta fn con todos los repositorios de la cascada
// atados a la tx y hace Commit; si fn falla, Rollback.
func (r *TxRunner) RunCascade(ctx context.Context, fn func(stores cascade.Stores) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStores(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewStores construye los repositorios de la cascada sobre q (pool o tx).
func NewStores(q Querier) cascade.Stores {
	accounts := NewAccountRepository(q)
	return cascade.Stores{
		Clients:        NewClientRepository(q),
		ClientSettings: NewClientSettingRepository(q),
		ClientValues:   NewClientValueRepository(q),
		Contacts:       NewContactRepository(q),
		Users:          NewUserRepository(q),
		AccountsCc:     accounts,
		AccountsAch:    accounts,
		Invoices:       NewInvoiceRepository(q),
		Services:       NewServiceRepository(q),
		ServiceChanges: NewServiceChangeRepository(q),
		Transactions:   NewTransactionRepository(q),
		Logs:           NewLogRepository(q),
	}
}
