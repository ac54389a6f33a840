package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/billing-core/internal/domain/entity"
	"github.com/jhoicas/billing-core/internal/domain/repository"
)

var (
	_ repository.ClientRepository        = (*ClientRepo)(nil)
	_ repository.ClientSettingRepository = (*ClientSettingRepo)(nil)
	_ repository.ClientValueRepository   = (*ClientValueRepo)(nil)
)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un cliente. Genera el ID si viene vacío.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `
		INSERT INTO clients (id, company_id, user_id, status, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, c.ID, c.CompanyID, c.UserID, c.Status, c.Currency, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return insertErr("client", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID; nil si no existe.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	query := `
		SELECT id, company_id, user_id, status, currency, created_at, updated_at
		FROM clients WHERE id = $1`
	var c entity.Client
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.CompanyID, &c.UserID, &c.Status, &c.Currency, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// Delete elimina la fila del cliente. Los dependientes los borra la cascada.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

// ClientSettingRepo configuración clave/valor por cliente.
type ClientSettingRepo struct {
	q Querier
}

// NewClientSettingRepository construye el adaptador.
func NewClientSettingRepository(q Querier) *ClientSettingRepo {
	return &ClientSettingRepo{q: q}
}

// GetSettings devuelve las claves del cliente.
func (r *ClientSettingRepo) GetSettings(ctx context.Context, clientID string) (map[string]string, error) {
	rows, err := r.q.Query(ctx, `SELECT key, value FROM client_settings WHERE client_id = $1`, clientID)
	if err != nil {
		return nil, fmt.Errorf("get client settings: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan client setting: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

// SetSetting inserta o reemplaza una clave.
func (r *ClientSettingRepo) SetSetting(ctx context.Context, s *entity.ClientSetting) error {
	query := `
		INSERT INTO client_settings (client_id, key, value, encrypted)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (client_id, key) DO UPDATE SET value = EXCLUDED.value, encrypted = EXCLUDED.encrypted`
	if _, err := r.q.Exec(ctx, query, s.ClientID, s.Key, s.Value, s.Encrypted); err != nil {
		return fmt.Errorf("set client setting: %w", err)
	}
	return nil
}

// UnsetSettings elimina todas las claves del cliente.
func (r *ClientSettingRepo) UnsetSettings(ctx context.Context, clientID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM client_settings WHERE client_id = $1`, clientID); err != nil {
		return fmt.Errorf("unset client settings: %w", err)
	}
	return nil
}

// ClientValueRepo valores de campos personalizados.
type ClientValueRepo struct {
	q Querier
}

// NewClientValueRepository construye el adaptador.
func NewClientValueRepository(q Querier) *ClientValueRepo {
	return &ClientValueRepo{q: q}
}

// SetValue inserta o reemplaza el valor de un campo.
func (r *ClientValueRepo) SetValue(ctx context.Context, v *entity.ClientValue) error {
	query := `
		INSERT INTO client_values (client_field_id, client_id, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (client_field_id, client_id) DO UPDATE SET value = EXCLUDED.value`
	if _, err := r.q.Exec(ctx, query, v.ClientFieldID, v.ClientID, v.Value); err != nil {
		return fmt.Errorf("set client value: %w", err)
	}
	return nil
}

// DeleteCustomFieldValues elimina todos los valores del cliente.
func (r *ClientValueRepo) DeleteCustomFieldValues(ctx context.Context, clientID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM client_values WHERE client_id = $1`, clientID); err != nil {
		return fmt.Errorf("delete client values: %w", err)
	}
	return nil
}
