package cascade

import (
	"context"
	"errors"
	"fmt"
)

var errStalledListing = errors.New("el listado devuelve filas ya borradas")

// drainPages pide siempre la página 1 y borra lo que devuelve, hasta que venga vacía.
// Como cada borrado saca la fila del listado, avanzar de página se saltaría filas.
func drainPages[T any](ctx context.Context, list func(page int) ([]T, error), id func(T) string, del func(T) error) error {
	seen := make(map[string]struct{})
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		items, err := list(1)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for _, item := range items {
			key := id(item)
			if _, dup := seen[key]; dup {
				return fmt.Errorf("%w: %s", errStalledListing, key)
			}
			seen[key] = struct{}{}
			if err := del(item); err != nil {
				return err
			}
		}
	}
}
