package entity

import "time"

// Claves de configuración de cliente usadas por el motor de impuestos.
const (
	SettingEnableTax  = "enable_tax"
	SettingCascadeTax = "cascade_tax"
	SettingTaxExempt  = "tax_exempt"
)

// ClientSetting par clave/valor sobrescrito a nivel de cliente.
type ClientSetting struct {
	ClientID  string
	Key       string
	Value     string
	Encrypted bool
}

// ClientValue valor de un campo personalizado para un cliente.
type ClientValue struct {
	ClientFieldID string
	ClientID      string
	Value         string
}

// ClientSettingLog registro de un cambio de configuración de cliente.
type ClientSettingLog struct {
	ID        string
	ClientID  string
	StaffID   string
	Change    string // JSON con el diff
	CreatedAt time.Time
}
