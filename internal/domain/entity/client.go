package entity

import "time"

// Estados de cliente.
const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
	ClientStatusFraud    = "fraud"
)

// Client representa un cliente de la empresa (cuenta facturable).
// UserID es el usuario con el que el cliente inicia sesión en el portal.
type Client struct {
	ID        string
	CompanyID string
	UserID    string
	Status    string
	Currency  string // ISO 4217 de facturación del cliente
	CreatedAt time.Time
	UpdatedAt time.Time
}
