package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction pago (o crédito) registrado para un cliente.
type Transaction struct {
	ID        string
	ClientID  string
	Amount    decimal.Decimal
	Currency  string
	Type      string // cc, ach, other
	Status    string // approved, declined, void, refunded...
	CreatedAt time.Time
}
