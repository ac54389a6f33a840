package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/billing-core/internal/domain/entity"
	"github.com/jhoicas/billing-core/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste cabecera, líneas e impuestos de línea. Debe llamarse dentro de una tx
// para que la factura quede completa o no quede.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice, lines []*entity.InvoiceLine) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (id, client_id, number, currency, status, date_billed, date_due, subtotal, tax_total, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.ClientID, inv.Number, inv.Currency, inv.Status, inv.DateBilled, inv.DateDue,
		inv.Subtotal, inv.TaxTotal, inv.Total, inv.CreatedAt,
	)
	if err != nil {
		return insertErr("invoice", err)
	}

	for n, l := range lines {
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.InvoiceID = inv.ID
		l.Order = n
		_, err := r.q.Exec(ctx, `
			INSERT INTO invoice_lines (id, invoice_id, service_id, description, qty, amount, taxable, line_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			l.ID, l.InvoiceID, l.ServiceID, l.Description, l.Qty, l.Amount, l.Taxable, l.Order,
		)
		if err != nil {
			return insertErr("invoice line", err)
		}
		for i := range l.Taxes {
			l.Taxes[i].LineID = l.ID
			_, err := r.q.Exec(ctx,
				`INSERT INTO invoice_line_taxes (line_id, tax_id, cascade) VALUES ($1, $2, $3)`,
				l.ID, l.Taxes[i].TaxRuleID, l.Taxes[i].Cascade,
			)
			if err != nil {
				return insertErr("invoice line tax", err)
			}
		}
	}
	return nil
}

// GetByID obtiene la cabecera; nil si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `
		SELECT id, client_id, number, currency, status, date_billed, date_due, subtotal, tax_total, total, created_at
		FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.ClientID, &inv.Number, &inv.Currency, &inv.Status, &inv.DateBilled, &inv.DateDue,
		&inv.Subtotal, &inv.TaxTotal, &inv.Total, &inv.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetLines devuelve las líneas en orden, cada una con sus impuestos.
func (r *InvoiceRepo) GetLines(ctx context.Context, invoiceID string) ([]*entity.InvoiceLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, invoice_id, service_id, description, qty, amount, taxable, line_order
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY line_order, id`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	var lines []*entity.InvoiceLine
	byID := make(map[string]*entity.InvoiceLine)
	for rows.Next() {
		var l entity.InvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.ServiceID, &l.Description, &l.Qty, &l.Amount, &l.Taxable, &l.Order); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		lines = append(lines, &l)
		byID[l.ID] = &l
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	if len(lines) == 0 {
		return lines, nil
	}

	taxRows, err := r.q.Query(ctx, `
		SELECT t.line_id, t.tax_id, t.cascade
		FROM invoice_line_taxes t
		JOIN invoice_lines l ON l.id = t.line_id
		JOIN taxes x ON x.id = t.tax_id
		WHERE l.invoice_id = $1
		ORDER BY l.line_order, x.level, x.id`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice line taxes: %w", err)
	}
	defer taxRows.Close()
	for taxRows.Next() {
		var t entity.InvoiceLineTax
		if err := taxRows.Scan(&t.LineID, &t.TaxRuleID, &t.Cascade); err != nil {
			return nil, fmt.Errorf("scan invoice line tax: %w", err)
		}
		if l, ok := byID[t.LineID]; ok {
			l.Taxes = append(l.Taxes, t)
		}
	}
	return lines, taxRows.Err()
}

// DeleteByClient elimina las facturas del cliente con sus líneas e impuestos.
func (r *InvoiceRepo) DeleteByClient(ctx context.Context, clientID string) error {
	statements := []struct{ what, sql string }{
		{"invoice line taxes", `
			DELETE FROM invoice_line_taxes WHERE line_id IN (
				SELECT l.id FROM invoice_lines l JOIN invoices i ON i.id = l.invoice_id WHERE i.client_id = $1)`},
		{"invoice lines", `
			DELETE FROM invoice_lines WHERE invoice_id IN (SELECT id FROM invoices WHERE client_id = $1)`},
		{"invoices", `DELETE FROM invoices WHERE client_id = $1`},
	}
	for _, s := range statements {
		if _, err := r.q.Exec(ctx, s.sql, clientID); err != nil {
			return fmt.Errorf("delete %s: %w", s.what, err)
		}
	}
	return nil
}
