package cascade

import (
	"context"
	"fmt"

	"github.com/jhoicas/billing-core/internal/domain/entity"
	domevent "github.com/jhoicas/billing-core/internal/domain/event"
)

// TransactionsHandler borra las transacciones de un cliente eliminado y el log de cada
// transacción eliminada.
type TransactionsHandler struct {
	transactions transactionLister
	logs         transactionLogsDeleter
	bus          Publisher
	pageSize     int
}

// NewTransactionsHandler construye el handler.
func NewTransactionsHandler(transactions transactionLister, logs transactionLogsDeleter, bus Publisher, pageSize int) *TransactionsHandler {
	return &TransactionsHandler{transactions: transactions, logs: logs, bus: bus, pageSize: pageSize}
}

func (h *TransactionsHandler) Name() string { return "transactions" }

func (h *TransactionsHandler) Handle(ctx context.Context, e domevent.Event) error {
	switch ev := e.(type) {
	case domevent.ClientDeleted:
		if ev.ClientID == "" {
			return nil
		}
		return drainPages(ctx,
			func(page int) ([]*entity.Transaction, error) {
				list, err := h.transactions.GetSimpleList(ctx, ev.ClientID, page, h.pageSize)
				if err != nil {
					return nil, fmt.Errorf("list transactions of client %s: %w", ev.ClientID, err)
				}
				return list, nil
			},
			func(t *entity.Transaction) string { return t.ID },
			func(t *entity.Transaction) error {
				if err := h.transactions.Delete(ctx, t.ID); err != nil {
					return fmt.Errorf("delete transaction %s: %w", t.ID, err)
				}
				return h.bus.Publish(ctx, domevent.TransactionDeleted{TransactionID: t.ID, ClientID: ev.ClientID})
			},
		)
	case domevent.TransactionDeleted:
		if ev.TransactionID == "" {
			return nil
		}
		if err := h.logs.DeleteTransaction(ctx, ev.TransactionID); err != nil {
			return fmt.Errorf("delete logs of transaction %s: %w", ev.TransactionID, err)
		}
	}
	return nil
}
