package repository

import (
	"context"

	"github.com/jhoicas/billing-core/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	Delete(ctx context.Context, id string) error
}

// ClientSettingRepository configuración por cliente (enable_tax, cascade_tax, tax_exempt...).
type ClientSettingRepository interface {
	// GetSettings devuelve las claves sobrescritas para el cliente (mapa vacío si no hay).
	GetSettings(ctx context.Context, clientID string) (map[string]string, error)
	SetSetting(ctx context.Context, setting *entity.ClientSetting) error
	// UnsetSettings elimina todas las claves del cliente.
	UnsetSettings(ctx context.Context, clientID string) error
}

// ClientValueRepository valores de campos personalizados del cliente.
type ClientValueRepository interface {
	SetValue(ctx context.Context, value *entity.ClientValue) error
	DeleteCustomFieldValues(ctx context.Context, clientID string) error
}
