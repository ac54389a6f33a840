package cascade

import (
	"context"
	"fmt"

	domevent "github.com/jhoicas/billing-core/internal/domain/event"
)

// AccountsAchHandler borra las cuentas ACH de un contacto eliminado.
type AccountsAchHandler struct {
	accounts achAccountStore
}

// NewAccountsAchHandler construye el handler.
func NewAccountsAchHandler(accounts achAccountStore) *AccountsAchHandler {
	return &AccountsAchHandler{accounts: accounts}
}

func (h *AccountsAchHandler) Name() string { return "accounts_ach" }

func (h *AccountsAchHandler) Handle(ctx context.Context, e domevent.Event) error {
	ev, ok := e.(domevent.ContactDeleted)
	if !ok || ev.ContactID == "" {
		return nil
	}
	accounts, err := h.accounts.GetAllAch(ctx, ev.ContactID)
	if err != nil {
		return fmt.Errorf("list ach accounts of contact %s: %w", ev.ContactID, err)
	}
	for _, a := range accounts {
		if err := h.accounts.DeleteAch(ctx, a.ID); err != nil {
			return fmt.Errorf("delete ach account %s: %w", a.ID, err)
		}
	}
	return nil
}
