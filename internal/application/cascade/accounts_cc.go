package cascade

import (
	"context"
	"fmt"

	domevent "github.com/jhoicas/billing-core/internal/domain/event"
)

// AccountsCcHandler borra las tarjetas de crédito de un contacto eliminado.
type AccountsCcHandler struct {
	accounts ccAccountStore
}

// NewAccountsCcHandler construye el handler.
func NewAccountsCcHandler(accounts ccAccountStore) *AccountsCcHandler {
	return &AccountsCcHandler{accounts: accounts}
}

func (h *AccountsCcHandler) Name() string { return "accounts_cc" }

func (h *AccountsCcHandler) Handle(ctx context.Context, e domevent.Event) error {
	ev, ok := e.(domevent.ContactDeleted)
	if !ok || ev.ContactID == "" {
		return nil
	}
	accounts, err := h.accounts.GetAllCc(ctx, ev.ContactID)
	if err != nil {
		return fmt.Errorf("list cc accounts of contact %s: %w", ev.ContactID, err)
	}
	for _, a := range accounts {
		if err := h.accounts.DeleteCc(ctx, a.ID); err != nil {
			return fmt.Errorf("delete cc account %s: %w", a.ID, err)
		}
	}
	return nil
}
