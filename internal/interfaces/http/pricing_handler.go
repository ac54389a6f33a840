package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/billing-core/internal/application/dto"
	"github.com/jhoicas/billing-core/pkg/logger"
)

// PricingService lo implementa *pricing.UseCase.
type PricingService interface {
	Preview(ctx context.Context, companyID string, in dto.PreviewRequest) (*dto.PricingResponse, error)
	InvoiceTotals(ctx context.Context, invoiceID string) (*dto.PricingResponse, error)
}

// PricingHandler cálculo de totales.
type PricingHandler struct {
	svc PricingService
	log *logger.Logger
}

// NewPricingHandler construye el handler.
func NewPricingHandler(svc PricingService, log *logger.Logger) *PricingHandler {
	return &PricingHandler{svc: svc, log: log}
}

// Preview valora líneas sin persistir nada.
// POST /api/pricing/preview
func (h *PricingHandler) Preview(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.PreviewRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.svc.Preview(c.UserContext(), companyID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// InvoiceTotals recalcula los totales de una factura.
// GET /api/invoices/:id/totals
func (h *PricingHandler) InvoiceTotals(c *fiber.Ctx) error {
	out, err := h.svc.InvoiceTotals(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
