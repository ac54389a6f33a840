package cascade

import (
	"context"
	"fmt"

	"github.com/jhoicas/billing-core/internal/domain"
	domevent "github.com/jhoicas/billing-core/internal/domain/event"
	"github.com/jhoicas/billing-core/pkg/logger"
)

// DeleteUseCase borrados raíz. Cada uno corre en una transacción: se borra la fila raíz,
// se publica su evento y, si algún handler falla, se revierte toda la cadena.
type DeleteUseCase struct {
	tx     CascadeTxRunner
	newBus BusFactory
	cfg    Config
	log    *logger.Logger
}

// NewDeleteUseCase construye el caso de uso.
func NewDeleteUseCase(tx CascadeTxRunner, newBus BusFactory, cfg Config, log *logger.Logger) *DeleteUseCase {
	return &DeleteUseCase{tx: tx, newBus: newBus, cfg: cfg.withDefaults(), log: log}
}

// DeleteClient borra el cliente y todo lo que depende de él.
func (uc *DeleteUseCase) DeleteClient(ctx context.Context, clientID string) error {
	return uc.run(ctx, "client", clientID, func(s Stores) (domevent.Event, error) {
		client, err := s.Clients.GetByID(ctx, clientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, domain.ErrNotFound
		}
		if err := s.Clients.Delete(ctx, clientID); err != nil {
			return nil, fmt.Errorf("delete client %s: %w", clientID, err)
		}
		return domevent.ClientDeleted{ClientID: client.ID, UserID: client.UserID}, nil
	})
}

// DeleteContact borra un contacto, sus cuentas de pago, su usuario y su historial.
func (uc *DeleteUseCase) DeleteContact(ctx context.Context, contactID string) error {
	return uc.run(ctx, "contact", contactID, func(s Stores) (domevent.Event, error) {
		contact, err := s.Contacts.GetByID(ctx, contactID)
		if err != nil {
			return nil, err
		}
		if contact == nil {
			return nil, domain.ErrNotFound
		}
		if err := s.Contacts.Delete(ctx, contactID); err != nil {
			return nil, fmt.Errorf("delete contact %s: %w", contactID, err)
		}
		ev := domevent.ContactDeleted{ContactID: contact.ID, ClientID: contact.ClientID}
		if contact.UserID != nil {
			ev.UserID = *contact.UserID
		}
		return ev, nil
	})
}

// DeleteUser borra un usuario y sus registros de acceso.
func (uc *DeleteUseCase) DeleteUser(ctx context.Context, userID string) error {
	return uc.run(ctx, "user", userID, func(s Stores) (domevent.Event, error) {
		user, err := s.Users.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, domain.ErrNotFound
		}
		if err := s.Users.Delete(ctx, userID); err != nil {
			return nil, fmt.Errorf("delete user %s: %w", userID, err)
		}
		return domevent.UserDeleted{UserID: user.ID}, nil
	})
}

// DeleteService borra un servicio, su log y su historial de cambios.
func (uc *DeleteUseCase) DeleteService(ctx context.Context, serviceID string) error {
	return uc.run(ctx, "service", serviceID, func(s Stores) (domevent.Event, error) {
		service, err := s.Services.GetByID(ctx, serviceID)
		if err != nil {
			return nil, err
		}
		if service == nil {
			return nil, domain.ErrNotFound
		}
		if err := s.Services.Delete(ctx, serviceID); err != nil {
			return nil, fmt.Errorf("delete service %s: %w", serviceID, err)
		}
		return domevent.ServiceDeleted{ServiceID: service.ID, ClientID: service.ClientID}, nil
	})
}

func (uc *DeleteUseCase) run(ctx context.Context, entity, id string, root func(s Stores) (domevent.Event, error)) error {
	if id == "" {
		return domain.NewValidationError("id", "requerido")
	}
	err := uc.tx.RunCascade(ctx, func(s Stores) error {
		ev, err := root(s)
		if err != nil {
			return err
		}
		bus := uc.newBus()
		Wire(bus, s, uc.cfg)
		return bus.Publish(ctx, ev)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("entity", entity).Str("id", id).Msg("borrado revertido")
		return err
	}
	uc.log.Info().Str("entity", entity).Str("id", id).Msg("borrado en cascada completado")
	return nil
}
