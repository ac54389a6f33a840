package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/billing-core/internal/domain/entity"
	"github.com/jhoicas/billing-core/internal/domain/repository"
)

var _ repository.LogRepository = (*LogRepo)(nil)

// LogRepo tablas log_* de auditoría.
type LogRepo struct {
	q Querier
}

// NewLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLogRepository(q Querier) *LogRepo {
	return &LogRepo{q: q}
}

func (r *LogRepo) AddUser(ctx context.Context, l *entity.UserLog) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO log_users (id, user_id, ip_address, result, created_at) VALUES ($1, $2, $3, $4, $5)`,
		l.ID, l.UserID, l.IPAddress, l.Result, l.CreatedAt)
	if err != nil {
		return insertErr("user log", err)
	}
	return nil
}

func (r *LogRepo) AddContact(ctx context.Context, l *entity.ContactLog) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO log_contacts (id, contact_id, fields, created_at) VALUES ($1, $2, $3, $4)`,
		l.ID, l.ContactID, l.Fields, l.CreatedAt)
	if err != nil {
		return insertErr("contact log", err)
	}
	return nil
}

func (r *LogRepo) AddClientSetting(ctx context.Context, l *entity.ClientSettingLog) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO log_client_settings (id, client_id, staff_id, change, created_at) VALUES ($1, $2, $3, $4, $5)`,
		l.ID, l.ClientID, nullIfEmpty(l.StaffID), l.Change, l.CreatedAt)
	if err != nil {
		return insertErr("client setting log", err)
	}
	return nil
}

func (r *LogRepo) DeleteUser(ctx context.Context, userID string) error {
	return r.exec(ctx, "user logs", `DELETE FROM log_users WHERE user_id = $1`, userID)
}

func (r *LogRepo) DeleteContact(ctx context.Context, contactID string) error {
	return r.exec(ctx, "contact logs", `DELETE FROM log_contacts WHERE contact_id = $1`, contactID)
}

func (r *LogRepo) DeleteService(ctx context.Context, serviceID string) error {
	return r.exec(ctx, "service logs", `DELETE FROM log_services WHERE service_id = $1`, serviceID)
}

func (r *LogRepo) DeleteTransaction(ctx context.Context, transactionID string) error {
	return r.exec(ctx, "transaction logs", `DELETE FROM log_transactions WHERE transaction_id = $1`, transactionID)
}

// DeleteClientSettingLogs borra los registros con created_at <= before. ClientID vacío = todos.
func (r *LogRepo) DeleteClientSettingLogs(ctx context.Context, before time.Time, filter repository.ClientSettingLogFilter) error {
	return r.exec(ctx, "client setting logs", `
		DELETE FROM log_client_settings
		WHERE created_at <= $1 AND ($2::text = '' OR client_id::text = $2::text)`,
		before, filter.ClientID)
}

func (r *LogRepo) exec(ctx context.Context, what, sql string, args ...any) error {
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete %s: %w", what, err)
	}
	return nil
}
