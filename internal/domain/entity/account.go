package entity

import "time"

// Estados de cuenta de pago.
const (
	AccountStatusActive   = "active"
	AccountStatusInactive = "inactive"
)

// AccountCc cuenta de pago con tarjeta de crédito asociada a un contacto.
type AccountCc struct {
	ID         string
	ContactID  string
	LastFour   string
	Type       string // visa, mc, amex...
	Expiration string // YYYYMM
	Status     string
	CreatedAt  time.Time
}

// AccountAch cuenta de pago ACH (débito bancario) asociada a un contacto.
type AccountAch struct {
	ID        string
	ContactID string
	LastFour  string
	Type      string // checking, savings
	Status    string
	CreatedAt time.Time
}
