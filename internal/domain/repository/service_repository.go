package repository

import (
	"context"

	"github.com/jhoicas/billing-core/internal/domain/entity"
)

// ServiceRepository define el puerto de persistencia para Service.
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id string) (*entity.Service, error)
	// GetSimpleList lista servicios del cliente paginados (page empieza en 1).
	GetSimpleList(ctx context.Context, clientID string, page, pageSize int) ([]*entity.Service, error)
	Delete(ctx context.Context, id string) error
}

// ServiceChangeRepository cambios en cola de un servicio.
type ServiceChangeRepository interface {
	Create(ctx context.Context, change *entity.ServiceChange) error
	DeleteByService(ctx context.Context, serviceID string) error
}
