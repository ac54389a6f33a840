package repository

import (
	"context"

	"github.com/jhoicas/billing-core/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	// Create persiste cabecera, líneas y asociaciones de impuesto.
	Create(ctx context.Context, invoice *entity.Invoice, lines []*entity.InvoiceLine) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// GetLines devuelve las líneas ordenadas, cada una con sus InvoiceLineTax.
	GetLines(ctx context.Context, invoiceID string) ([]*entity.InvoiceLine, error)
	// DeleteByClient elimina todas las facturas del cliente con sus líneas e impuestos.
	DeleteByClient(ctx context.Context, clientID string) error
}
