package repository

import (
	"context"
	"time"

	"github.com/jhoicas/billing-core/internal/domain/entity"
)

// ClientSettingLogFilter filtro para DeleteClientSettingLogs. ClientID vacío = todos los clientes.
type ClientSettingLogFilter struct {
	ClientID string
}

// LogRepository registros de auditoría asociados a usuarios, contactos, servicios, transacciones
// y cambios de configuración.
type LogRepository interface {
	AddUser(ctx context.Context, log *entity.UserLog) error
	AddContact(ctx context.Context, log *entity.ContactLog) error
	AddClientSetting(ctx context.Context, log *entity.ClientSettingLog) error

	DeleteUser(ctx context.Context, userID string) error
	DeleteContact(ctx context.Context, contactID string) error
	DeleteService(ctx context.Context, serviceID string) error
	DeleteTransaction(ctx context.Context, transactionID string) error
	// DeleteClientSettingLogs elimina los registros creados antes de (o en) before que cumplan el filtro.
	DeleteClientSettingLogs(ctx context.Context, before time.Time, filter ClientSettingLogFilter) error
}
