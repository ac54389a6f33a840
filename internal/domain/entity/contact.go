package entity

import "time"

// Tipos de contacto.
const (
	ContactTypePrimary = "primary"
	ContactTypeBilling = "billing"
	ContactTypeOther   = "other"
)

// Contact representa un contacto de un cliente.
// UserID es opcional: solo los contactos con acceso al portal tienen usuario propio.
type Contact struct {
	ID          string
	ClientID    string
	UserID      *string
	ContactType string
	FirstName   string
	LastName    string
	Email       string
	CreatedAt   time.Time
}
