package entity

import "time"

// User representa credenciales de acceso (de un cliente o de un contacto).
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time
}
