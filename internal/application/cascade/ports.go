package cascade

import (
	"context"
	"time"

	"github.com/jhoicas/billing-core/internal/domain/entity"
	domevent "github.com/jhoicas/billing-core/internal/domain/event"
	"github.com/jhoicas/billing-core/internal/domain/repository"
)

// Puertos mínimos que necesita cada handler. Los repositorios de dominio los satisfacen.

type clientSettingsUnsetter interface {
	UnsetSettings(ctx context.Context, clientID string) error
}

type customFieldValuesDeleter interface {
	DeleteCustomFieldValues(ctx context.Context, clientID string) error
}

type clientSettingLogsDeleter interface {
	DeleteClientSettingLogs(ctx context.Context, before time.Time, filter repository.ClientSettingLogFilter) error
}

type contactStore interface {
	GetAll(ctx context.Context, clientID string) ([]*entity.Contact, error)
	Delete(ctx context.Context, id string) error
}

type userDeleter interface {
	Delete(ctx context.Context, id string) error
}

type ccAccountStore interface {
	GetAllCc(ctx context.Context, contactID string) ([]*entity.AccountCc, error)
	DeleteCc(ctx context.Context, id string) error
}

type achAccountStore interface {
	GetAllAch(ctx context.Context, contactID string) ([]*entity.AccountAch, error)
	DeleteAch(ctx context.Context, id string) error
}

type invoicesByClientDeleter interface {
	DeleteByClient(ctx context.Context, clientID string) error
}

type serviceLister interface {
	GetSimpleList(ctx context.Context, clientID string, page, pageSize int) ([]*entity.Service, error)
	Delete(ctx context.Context, id string) error
}

type serviceChangesDeleter interface {
	DeleteByService(ctx context.Context, serviceID string) error
}

type transactionLister interface {
	GetSimpleList(ctx context.Context, clientID string, page, pageSize int) ([]*entity.Transaction, error)
	Delete(ctx context.Context, id string) error
}

type serviceLogsDeleter interface {
	DeleteService(ctx context.Context, serviceID string) error
}

type transactionLogsDeleter interface {
	DeleteTransaction(ctx context.Context, transactionID string) error
}

type userLogsDeleter interface {
	DeleteUser(ctx context.Context, userID string) error
}

type contactLogsDeleter interface {
	DeleteContact(ctx context.Context, contactID string) error
}

// Publisher publica eventos anidados (un handler que borra filas que a su vez tienen dependientes).
type Publisher interface {
	Publish(ctx context.Context, e domevent.Event) error
}

// Bus registro y publicación de eventos.
type Bus interface {
	Publisher
	Subscribe(handler domevent.Handler, kinds ...domevent.Kind)
}

// BusFactory crea un bus vacío. Cada borrado raíz cablea el suyo sobre repositorios de su transacción.
type BusFactory func() Bus

// Stores repositorios usados por la cascada, todos atados a la misma transacción.
type Stores struct {
	Clients        repository.ClientRepository
	ClientSettings repository.ClientSettingRepository
	ClientValues   repository.ClientValueRepository
	Contacts       repository.ContactRepository
	Users          repository.UserRepository
	AccountsCc     repository.AccountCcRepository
	AccountsAch    repository.AccountAchRepository
	Invoices       repository.InvoiceRepository
	Services       repository.ServiceRepository
	ServiceChanges repository.ServiceChangeRepository
	Transactions   repository.TransactionRepository
	Logs           repository.LogRepository
}

// CascadeTxRunner ejecuta fn dentro de una transacción; si fn devuelve error se hace Rollback.
type CascadeTxRunner interface {
	RunCascade(ctx context.Context, fn func(stores Stores) error) error
}

// Config parámetros de la cascada.
type Config struct {
	// PageSize tamaño de página al listar servicios y transacciones de un cliente.
	PageSize int
	// Now reloj usado para purgar logs de configuración; nil = time.Now.
	Now func() time.Time
}

func (c Config) withDefaults() Config {
	if c.PageSize <= 0 {
		c.PageSize = 25
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}
