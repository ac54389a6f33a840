package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                = errors.New("recurso no encontrado")
	ErrDuplicate               = errors.New("el recurso ya existe")
	ErrInvalidInput            = errors.New("entrada inválida")
	ErrUnauthorized            = errors.New("no autorizado")
	ErrForbidden               = errors.New("acceso denegado")
	ErrValidation              = errors.New("error de validación")
	ErrArithmeticInconsistency = errors.New("inconsistencia aritmética en el cálculo de impuestos")
	ErrCascadeFailure          = errors.New("falló el borrado en cascada")
	ErrCascadeDepth            = errors.New("profundidad máxima de cascada excedida")
	ErrUnknownEvent            = errors.New("evento desconocido")
)

// ValidationError describe un dato de entrada rechazado (línea, regla de impuesto, request).
// errors.Is(err, ErrValidation) es verdadero.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validación: " + e.Reason
	}
	return fmt.Sprintf("validación: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError construye un ValidationError.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// CascadeError envuelve el fallo de un handler durante un borrado en cascada.
// errors.Is(err, ErrCascadeFailure) es verdadero y la causa original sigue accesible.
type CascadeError struct {
	Event   string // nombre del evento (ej. "Contacts.delete")
	Handler string
	Err     error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("cascada %s en %s: %v", e.Event, e.Handler, e.Err)
}

func (e *CascadeError) Unwrap() []error { return []error{ErrCascadeFailure, e.Err} }
