package cascade

import (
	"context"
	"fmt"

	domevent "github.com/jhoicas/billing-core/internal/domain/event"
)

// ClientsHandler borra el usuario de portal del cliente eliminado.
type ClientsHandler struct {
	users userDeleter
	bus   Publisher
}

// NewClientsHandler construye el handler.
func NewClientsHandler(users userDeleter, bus Publisher) *ClientsHandler {
	return &ClientsHandler{users: users, bus: bus}
}

func (h *ClientsHandler) Name() string { return "clients" }

func (h *ClientsHandler) Handle(ctx context.Context, e domevent.Event) error {
	ev, ok := e.(domevent.ClientDeleted)
	if !ok || ev.UserID == "" {
		return nil
	}
	if err := h.users.Delete(ctx, ev.UserID); err != nil {
		return fmt.Errorf("delete user %s: %w", ev.UserID, err)
	}
	return h.bus.Publish(ctx, domevent.UserDeleted{UserID: ev.UserID})
}
