package cascade

import (
	"context"
	"fmt"

	domevent "github.com/jhoicas/billing-core/internal/domain/event"
)

// ClientValuesHandler elimina los valores de campos personalizados del cliente.
type ClientValuesHandler struct {
	values customFieldValuesDeleter
}

func NewClientValuesHandler(values customFieldValuesDeleter) *ClientValuesHandler {
	return &ClientValuesHandler{values: values}
}

func (h *ClientValuesHandler) Name() string { return "client_values" }

func (h *ClientValuesHandler) Handle(ctx context.Context, e domevent.Event) error {
	ev, ok := e.(domevent.ClientDeleted)
	if !ok || ev.ClientID == "" {
		return nil
	}
	if err := h.values.DeleteCustomFieldValues(ctx, ev.ClientID); err != nil {
		return fmt.Errorf("delete custom field values of client %s: %w", ev.ClientID, err)
	}
	return nil
}
