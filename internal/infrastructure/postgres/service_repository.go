package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/billing-core/internal/domain/entity"
	"github.com/jhoicas/billing-core/internal/domain/repository"
)

var (
	_ repository.ServiceRepository       = (*ServiceRepo)(nil)
	_ repository.ServiceChangeRepository = (*ServiceChangeRepo)(nil)
)

const serviceColumns = `id, client_id, package_name, qty, price, status, date_renews, created_at`

// ServiceRepo implementación de ServiceRepository.
type ServiceRepo struct {
	q Querier
}

// NewServiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServiceRepository(q Querier) *ServiceRepo {
	return &ServiceRepo{q: q}
}

// Create persiste un servicio.
func (r *ServiceRepo) Create(ctx context.Context, s *entity.Service) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `INSERT INTO services (` + serviceColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, s.ID, s.ClientID, s.PackageName, s.Qty, s.Price, s.Status, s.DateRenews, s.CreatedAt)
	if err != nil {
		return insertErr("service", err)
	}
	return nil
}

// GetByID obtiene un servicio; nil si no existe.
func (r *ServiceRepo) GetByID(ctx context.Context, id string) (*entity.Service, error) {
	var s entity.Service
	err := r.q.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id).Scan(
		&s.ID, &s.ClientID, &s.PackageName, &s.Qty, &s.Price, &s.Status, &s.DateRenews, &s.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &s, nil
}

// GetSimpleList página de servicios del cliente, ordenada por ID.
func (r *ServiceRepo) GetSimpleList(ctx context.Context, clientID string, page, pageSize int) ([]*entity.Service, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE client_id = $1 ORDER BY id LIMIT $2 OFFSET $3`,
		clientID, pageSize, offset(page, pageSize))
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()
	var list []*entity.Service
	for rows.Next() {
		var s entity.Service
		if err := rows.Scan(&s.ID, &s.ClientID, &s.PackageName, &s.Qty, &s.Price, &s.Status, &s.DateRenews, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina la fila del servicio.
func (r *ServiceRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM services WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	return nil
}

// ServiceChangeRepo cambios en cola de servicios.
type ServiceChangeRepo struct {
	q Querier
}

// NewServiceChangeRepository construye el adaptador.
func NewServiceChangeRepository(q Querier) *ServiceChangeRepo {
	return &ServiceChangeRepo{q: q}
}

// Create persiste un cambio. InvoiceID vacío se guarda como NULL.
func (r *ServiceChangeRepo) Create(ctx context.Context, c *entity.ServiceChange) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `
		INSERT INTO service_changes (id, service_id, invoice_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, c.ID, c.ServiceID, nullIfEmpty(c.InvoiceID), c.Status, c.CreatedAt); err != nil {
		return insertErr("service change", err)
	}
	return nil
}

// DeleteByService elimina los cambios del servicio.
func (r *ServiceChangeRepo) DeleteByService(ctx context.Context, serviceID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM service_changes WHERE service_id = $1`, serviceID); err != nil {
		return fmt.Errorf("delete service changes: %w", err)
	}
	return nil
}
