package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/billing-core/pkg/logger"
)

// DeleteService lo implementa *cascade.DeleteUseCase.
type DeleteService interface {
	DeleteClient(ctx context.Context, clientID string) error
	DeleteContact(ctx context.Context, contactID string) error
	DeleteUser(ctx context.Context, userID string) error
	DeleteService(ctx context.Context, serviceID string) error
}

// DeleteHandler borrados raíz con cascada (solo admin).
type DeleteHandler struct {
	svc DeleteService
	log *logger.Logger
}

// NewDeleteHandler construye el handler.
func NewDeleteHandler(svc DeleteService, log *logger.Logger) *DeleteHandler {
	return &DeleteHandler{svc: svc, log: log}
}

func (h *DeleteHandler) handle(del func(ctx context.Context, id string) error, entity string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := del(c.UserContext(), id); err != nil {
			return writeError(c, h.log, err)
		}
		h.log.Info().Str("entity", entity).Str("id", id).Str("staff_id", GetStaffID(c)).Msg("borrado en cascada")
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Client DELETE /api/clients/:id
func (h *DeleteHandler) Client() fiber.Handler { return h.handle(h.svc.DeleteClient, "client") }

// Contact DELETE /api/contacts/:id
func (h *DeleteHandler) Contact() fiber.Handler { return h.handle(h.svc.DeleteContact, "contact") }

// User DELETE /api/users/:id
func (h *DeleteHandler) User() fiber.Handler { return h.handle(h.svc.DeleteUser, "user") }

// Service DELETE /api/services/:id
func (h *DeleteHandler) Service() fiber.Handler { return h.handle(h.svc.DeleteService, "service") }
