package repository

import (
	"context"

	"github.com/jhoicas/billing-core/internal/domain/entity"
)

// AccountCcRepository cuentas de tarjeta de crédito por contacto.
type AccountCcRepository interface {
	CreateCc(ctx context.Context, account *entity.AccountCc) error
	GetAllCc(ctx context.Context, contactID string) ([]*entity.AccountCc, error)
	DeleteCc(ctx context.Context, id string) error
}

// AccountAchRepository cuentas ACH por contacto.
type AccountAchRepository interface {
	CreateAch(ctx context.Context, account *entity.AccountAch) error
	GetAllAch(ctx context.Context, contactID string) ([]*entity.AccountAch, error)
	DeleteAch(ctx context.Context, id string) error
}
