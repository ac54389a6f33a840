package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de servicio.
const (
	ServiceStatusPending   = "pending"
	ServiceStatusActive    = "active"
	ServiceStatusSuspended = "suspended"
	ServiceStatusCanceled  = "canceled"
)

// Service representa un servicio contratado por un cliente.
type Service struct {
	ID          string
	ClientID    string
	PackageName string
	Qty         decimal.Decimal
	Price       decimal.Decimal
	Status      string
	DateRenews  *time.Time
	CreatedAt   time.Time
}

// ServiceChange cambio de paquete/precio en cola para un servicio.
type ServiceChange struct {
	ID        string
	ServiceID string
	InvoiceID string
	Status    string
	CreatedAt time.Time
}
