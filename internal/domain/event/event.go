package event

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jhoicas/billing-core/internal/domain"
)

// Kind nombre estable de un tipo de evento. Conserva los nombres heredados ("Clients.delete").
type Kind string

const (
	KindClientDeleted      Kind = "Clients.delete"
	KindContactDeleted     Kind = "Contacts.delete"
	KindUserDeleted        Kind = "Users.delete"
	KindServiceDeleted     Kind = "Services.delete"
	KindTransactionDeleted Kind = "Transactions.delete"
)

// Event evento de dominio tipado. Los campos vacíos significan parámetro ausente.
type Event interface {
	Kind() Kind
}

// ClientDeleted se publica al borrar un cliente.
type ClientDeleted struct {
	ClientID string
	UserID   string
}

// ContactDeleted se publica al borrar un contacto. UserID vacío: contacto sin usuario.
type ContactDeleted struct {
	ContactID string
	ClientID  string
	UserID    string
}

// UserDeleted se publica al borrar un usuario.
type UserDeleted struct {
	UserID string
}

// ServiceDeleted se publica al borrar un servicio.
type ServiceDeleted struct {
	ServiceID string
	ClientID  string
}

// TransactionDeleted se publica al borrar una transacción.
type TransactionDeleted struct {
	TransactionID string
	ClientID      string
}

func (ClientDeleted) Kind() Kind      { return KindClientDeleted }
func (ContactDeleted) Kind() Kind     { return KindContactDeleted }
func (UserDeleted) Kind() Kind        { return KindUserDeleted }
func (ServiceDeleted) Kind() Kind     { return KindServiceDeleted }
func (TransactionDeleted) Kind() Kind { return KindTransactionDeleted }

// FromParams traduce la API heredada (nombre, parámetros) a un evento tipado.
// Los parámetros ausentes quedan vacíos; un nombre desconocido devuelve ErrUnknownEvent.
func FromParams(name string, params map[string]any) (Event, error) {
	switch Kind(name) {
	case KindClientDeleted:
		return ClientDeleted{
			ClientID: param(params, "client_id"),
			UserID:   param(params, "user_id"),
		}, nil
	case KindContactDeleted:
		return ContactDeleted{
			ContactID: param(params, "contact_id"),
			ClientID:  param(params, "client_id"),
			UserID:    param(params, "user_id"),
		}, nil
	case KindUserDeleted:
		return UserDeleted{UserID: param(params, "user_id")}, nil
	case KindServiceDeleted:
		return ServiceDeleted{
			ServiceID: param(params, "service_id"),
			ClientID:  param(params, "client_id"),
		}, nil
	case KindTransactionDeleted:
		return TransactionDeleted{
			TransactionID: param(params, "transaction_id"),
			ClientID:      param(params, "client_id"),
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownEvent, name)
}

// param lee un identificador como string; acepta los tipos numéricos que produce JSON.
func param(params map[string]any, key string) string {
	switch v := params[key].(type) {
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}

// Handler reacciona a eventos de dominio. Un error detiene la cascada.
type Handler interface {
	Name() string
	Handle(ctx context.Context, e Event) error
}
