package entity

import "time"

// UserLog registro de acceso de un usuario.
type UserLog struct {
	ID        string
	UserID    string
	IPAddress string
	Result    string // success, failure
	CreatedAt time.Time
}

// ContactLog registro de cambios en un contacto.
type ContactLog struct {
	ID        string
	ContactID string
	Fields    string
	CreatedAt time.Time
}
