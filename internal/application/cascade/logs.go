package cascade

import (
	"context"
	"fmt"
	"time"

	domevent "github.com/jhoicas/billing-core/internal/domain/event"
	"github.com/jhoicas/billing-core/internal/domain/repository"
)

// LogUsersHandler borra los registros de acceso de un usuario eliminado.
type LogUsersHandler struct {
	logs userLogsDeleter
}

func NewLogUsersHandler(logs userLogsDeleter) *LogUsersHandler {
	return &LogUsersHandler{logs: logs}
}

func (h *LogUsersHandler) Name() string { return "log_users" }

func (h *LogUsersHandler) Handle(ctx context.Context, e domevent.Event) error {
	ev, ok := e.(domevent.UserDeleted)
	if !ok || ev.UserID == "" {
		return nil
	}
	if err := h.logs.DeleteUser(ctx, ev.UserID); err != nil {
		return fmt.Errorf("delete logs of user %s: %w", ev.UserID, err)
	}
	return nil
}

// LogContactsHandler borra el historial de un contacto eliminado.
type LogContactsHandler struct {
	logs contactLogsDeleter
}

func NewLogContactsHandler(logs contactLogsDeleter) *LogContactsHandler {
	return &LogContactsHandler{logs: logs}
}

func (h *LogContactsHandler) Name() string { return "log_contacts" }

func (h *LogContactsHandler) Handle(ctx context.Context, e domevent.Event) error {
	ev, ok := e.(domevent.ContactDeleted)
	if !ok || ev.ContactID == "" {
		return nil
	}
	if err := h.logs.DeleteContact(ctx, ev.ContactID); err != nil {
		return fmt.Errorf("delete logs of contact %s: %w", ev.ContactID, err)
	}
	return nil
}

// LogClientSettingsHandler purga los cambios de configuración registrados para el cliente.
type LogClientSettingsHandler struct {
	logs clientSettingLogsDeleter
	now  func() time.Time
}

func NewLogClientSettingsHandler(logs clientSettingLogsDeleter, now func() time.Time) *LogClientSettingsHandler {
	return &LogClientSettingsHandler{logs: logs, now: now}
}

func (h *LogClientSettingsHandler) Name() string { return "log_client_settings" }

func (h *LogClientSettingsHandler) Handle(ctx context.Context, e domevent.Event) error {
	ev, ok := e.(domevent.ClientDeleted)
	if !ok || ev.ClientID == "" {
		return nil
	}
	filter := repository.ClientSettingLogFilter{ClientID: ev.ClientID}
	if err := h.logs.DeleteClientSettingLogs(ctx, h.now(), filter); err != nil {
		return fmt.Errorf("delete setting logs of client %s: %w", ev.ClientID, err)
	}
	return nil
}
