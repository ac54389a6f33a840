package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/billing-core/internal/domain"
	domevent "github.com/jhoicas/billing-core/internal/domain/event"
	"github.com/jhoicas/billing-core/pkg/logger"
)

// DefaultMaxDepth límite de publicaciones anidadas (Clients -> Contacts -> Users son 3 niveles).
const DefaultMaxDepth = 16

// Observer recibe una notificación por cada handler ejecutado (métricas).
type Observer interface {
	ObserveDispatch(kind domevent.Kind, handler string, elapsed time.Duration, err error)
}

// Option configura el bus.
type Option func(*InMemoryEventBus)

// WithObserver registra un observador de despachos.
func WithObserver(o Observer) Option {
	return func(b *InMemoryEventBus) { b.observer = o }
}

// WithMaxDepth cambia el límite de anidamiento.
func WithMaxDepth(n int) Option {
	return func(b *InMemoryEventBus) {
		if n > 0 {
			b.maxDepth = n
		}
	}
}

type depthKey struct{}

// InMemoryEventBus despacha eventos de forma síncrona, en orden de registro.
// A diferencia de un bus de notificaciones, el primer error corta la cascada y se devuelve.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	log      *logger.Logger
	observer Observer
	maxDepth int
}

// NewInMemoryEventBus crea un bus vacío.
func NewInMemoryEventBus(log *logger.Logger, opts ...Option) *InMemoryEventBus {
	b := &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		log:      log,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registra handler para los tipos indicados.
func (b *InMemoryEventBus) Subscribe(handler domevent.Handler, kinds ...domevent.Kind) {
	b.registry.Register(handler, kinds...)
	b.log.Debug().Str("handler", handler.Name()).Interface("kinds", kinds).Msg("handler registrado")
}

// Publish ejecuta los handlers de e.Kind() uno tras otro. El primer error se devuelve
// envuelto en *domain.CascadeError; los errores de cascadas anidadas se devuelven tal cual
// para conservar el handler que falló originalmente.
func (b *InMemoryEventBus) Publish(ctx context.Context, e domevent.Event) error {
	depth := depthFrom(ctx) + 1
	if depth > b.maxDepth {
		return fmt.Errorf("%w: %s en nivel %d", domain.ErrCascadeDepth, e.Kind(), depth)
	}
	ctx = context.WithValue(ctx, depthKey{}, depth)

	for _, h := range b.registry.GetHandlers(e.Kind()) {
		if err := ctx.Err(); err != nil {
			return &domain.CascadeError{Event: string(e.Kind()), Handler: h.Name(), Err: err}
		}
		start := time.Now()
		err := b.dispatch(ctx, h, e)
		if b.observer != nil {
			b.observer.ObserveDispatch(e.Kind(), h.Name(), time.Since(start), err)
		}
		if err == nil {
			continue
		}
		b.log.Error().Err(err).
			Str("event", string(e.Kind())).
			Str("handler", h.Name()).
			Int("depth", depth).
			Msg("handler falló, cascada abortada")

		var cascadeErr *domain.CascadeError
		if errors.As(err, &cascadeErr) {
			return err
		}
		return &domain.CascadeError{Event: string(e.Kind()), Handler: h.Name(), Err: err}
	}
	return nil
}

// PublishNamed publica usando la API heredada (nombre, parámetros).
func (b *InMemoryEventBus) PublishNamed(ctx context.Context, name string, params map[string]any) error {
	e, err := domevent.FromParams(name, params)
	if err != nil {
		return err
	}
	return b.Publish(ctx, e)
}

// dispatch convierte un panic del handler en error para que no quede oculto.
func (b *InMemoryEventBus) dispatch(ctx context.Context, h domevent.Handler, e domevent.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic en handler %s: %v", h.Name(), r)
		}
	}()
	return h.Handle(ctx, e)
}

func depthFrom(ctx context.Context) int {
	d, _ := ctx.Value(depthKey{}).(int)
	return d
}
