package cascade

import (
	"context"
	"fmt"

	"github.com/jhoicas/billing-core/internal/domain/entity"
	domevent "github.com/jhoicas/billing-core/internal/domain/event"
)

// ServicesHandler borra los servicios de un cliente eliminado y, por cada servicio
// eliminado, su log y su historial de cambios.
type ServicesHandler struct {
	services serviceLister
	logs     serviceLogsDeleter
	changes  serviceChangesDeleter
	bus      Publisher
	pageSize int
}

// NewServicesHandler construye el handler.
func NewServicesHandler(services serviceLister, logs serviceLogsDeleter, changes serviceChangesDeleter, bus Publisher, pageSize int) *ServicesHandler {
	return &ServicesHandler{services: services, logs: logs, changes: changes, bus: bus, pageSize: pageSize}
}

func (h *ServicesHandler) Name() string { return "services" }

func (h *ServicesHandler) Handle(ctx context.Context, e domevent.Event) error {
	switch ev := e.(type) {
	case domevent.ClientDeleted:
		if ev.ClientID == "" {
			return nil
		}
		return h.deleteClientServices(ctx, ev.ClientID)
	case domevent.ServiceDeleted:
		if ev.ServiceID == "" {
			return nil
		}
		if err := h.logs.DeleteService(ctx, ev.ServiceID); err != nil {
			return fmt.Errorf("delete logs of service %s: %w", ev.ServiceID, err)
		}
		if err := h.changes.DeleteByService(ctx, ev.ServiceID); err != nil {
			return fmt.Errorf("delete changes of service %s: %w", ev.ServiceID, err)
		}
	}
	return nil
}

func (h *ServicesHandler) deleteClientServices(ctx context.Context, clientID string) error {
	return drainPages(ctx,
		func(page int) ([]*entity.Service, error) {
			list, err := h.services.GetSimpleList(ctx, clientID, page, h.pageSize)
			if err != nil {
				return nil, fmt.Errorf("list services of client %s: %w", clientID, err)
			}
			return list, nil
		},
		func(s *entity.Service) string { return s.ID },
		func(s *entity.Service) error {
			if err := h.services.Delete(ctx, s.ID); err != nil {
				return fmt.Errorf("delete service %s: %w", s.ID, err)
			}
			return h.bus.Publish(ctx, domevent.ServiceDeleted{ServiceID: s.ID, ClientID: clientID})
		},
	)
}
