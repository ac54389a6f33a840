package cascade

import (
	"context"
	"fmt"

	domevent "github.com/jhoicas/billing-core/internal/domain/event"
)

// ContactsHandler borra los contactos de un cliente eliminado y el usuario de cada
// contacto eliminado.
type ContactsHandler struct {
	contacts contactStore
	users    userDeleter
	bus      Publisher
}

// NewContactsHandler construye el handler.
func NewContactsHandler(contacts contactStore, users userDeleter, bus Publisher) *ContactsHandler {
	return &ContactsHandler{contacts: contacts, users: users, bus: bus}
}

func (h *ContactsHandler) Name() string { return "contacts" }

func (h *ContactsHandler) Handle(ctx context.Context, e domevent.Event) error {
	switch ev := e.(type) {
	case domevent.ClientDeleted:
		return h.deleteClientContacts(ctx, ev.ClientID)
	case domevent.ContactDeleted:
		return h.deleteContactUser(ctx, ev.UserID)
	}
	return nil
}

func (h *ContactsHandler) deleteClientContacts(ctx context.Context, clientID string) error {
	if clientID == "" {
		return nil
	}
	contacts, err := h.contacts.GetAll(ctx, clientID)
	if err != nil {
		return fmt.Errorf("list contacts of client %s: %w", clientID, err)
	}
	for _, c := range contacts {
		if err := h.contacts.Delete(ctx, c.ID); err != nil {
			return fmt.Errorf("delete contact %s: %w", c.ID, err)
		}
		deleted := domevent.ContactDeleted{ContactID: c.ID, ClientID: c.ClientID}
		if c.UserID != nil {
			deleted.UserID = *c.UserID
		}
		if err := h.bus.Publish(ctx, deleted); err != nil {
			return err
		}
	}
	return nil
}

// deleteContactUser: un contacto sin usuario no tiene nada que borrar.
func (h *ContactsHandler) deleteContactUser(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	if err := h.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user %s: %w", userID, err)
	}
	return h.bus.Publish(ctx, domevent.UserDeleted{UserID: userID})
}
