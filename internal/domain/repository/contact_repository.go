package repository

import (
	"context"

	"github.com/jhoicas/billing-core/internal/domain/entity"
)

// ContactRepository define el puerto de persistencia para Contact.
type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	GetByID(ctx context.Context, id string) (*entity.Contact, error)
	// GetAll devuelve todos los contactos del cliente.
	GetAll(ctx context.Context, clientID string) ([]*entity.Contact, error)
	Delete(ctx context.Context, id string) error
}
