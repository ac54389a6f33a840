package event

import (
	"sync"

	domevent "github.com/jhoicas/billing-core/internal/domain/event"
)

// HandlerRegistry guarda, por tipo de evento, los handlers en orden de registro.
type HandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[domevent.Kind][]domevent.Handler
}

// NewHandlerRegistry crea un registro vacío.
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[domevent.Kind][]domevent.Handler)}
}

// Register agrega handler al final de la lista de cada tipo indicado.
func (r *HandlerRegistry) Register(handler domevent.Handler, kinds ...domevent.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range kinds {
		r.handlers[k] = append(r.handlers[k], handler)
	}
}

// GetHandlers devuelve una copia de los handlers de kind en orden de registro.
func (r *HandlerRegistry) GetHandlers(kind domevent.Kind) []domevent.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domevent.Handler(nil), r.handlers[kind]...)
}
