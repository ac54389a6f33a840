package cascade

import (
	"context"
	"fmt"

	domevent "github.com/jhoicas/billing-core/internal/domain/event"
)

// InvoicesHandler elimina todas las facturas (líneas e impuestos incluidos) del cliente.
type InvoicesHandler struct {
	invoices invoicesByClientDeleter
}

func NewInvoicesHandler(invoices invoicesByClientDeleter) *InvoicesHandler {
	return &InvoicesHandler{invoices: invoices}
}

func (h *InvoicesHandler) Name() string { return "invoices" }

func (h *InvoicesHandler) Handle(ctx context.Context, e domevent.Event) error {
	ev, ok := e.(domevent.ClientDeleted)
	if !ok || ev.ClientID == "" {
		return nil
	}
	if err := h.invoices.DeleteByClient(ctx, ev.ClientID); err != nil {
		return fmt.Errorf("delete invoices of client %s: %w", ev.ClientID, err)
	}
	return nil
}
