package cascade

import (
	"context"
	"fmt"

	domevent "github.com/jhoicas/billing-core/internal/domain/event"
)

// ClientSettingsHandler elimina la configuración propia del cliente.
type ClientSettingsHandler struct {
	settings clientSettingsUnsetter
}

func NewClientSettingsHandler(settings clientSettingsUnsetter) *ClientSettingsHandler {
	return &ClientSettingsHandler{settings: settings}
}

func (h *ClientSettingsHandler) Name() string { return "client_settings" }

func (h *ClientSettingsHandler) Handle(ctx context.Context, e domevent.Event) error {
	ev, ok := e.(domevent.ClientDeleted)
	if !ok || ev.ClientID == "" {
		return nil
	}
	if err := h.settings.UnsetSettings(ctx, ev.ClientID); err != nil {
		return fmt.Errorf("unset settings of client %s: %w", ev.ClientID, err)
	}
	return nil
}
