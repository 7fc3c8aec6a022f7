package calendar

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound         = errors.New("calendar entry not found")
	ErrOverlappingEntry = errors.New("you already have an entry for this time period")
	ErrWrongType        = errors.New("calendar entry is not a request")
	ErrMissingPets      = errors.New("pets is required for request type")
	ErrMissingReason    = errors.New("reason is required for request type")
	ErrInvalidQuery     = errors.New("invalid query")
)

// ValidationError agrupa todos los mensajes de validación de un input.
type ValidationError struct {
	Messages []string

	// Cause es opcional (p.ej. ErrMissingPets) para poder usar errors.Is.
	Cause error
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Unwrap() error { return e.Cause }

func (e *ValidationError) add(format string, args ...any) {
	e.Messages = append(e.Messages, fmt.Sprintf(format, args...))
}

func (e *ValidationError) empty() bool { return len(e.Messages) == 0 }

func newValidationError(err error) *ValidationError {
	return &ValidationError{Messages: []string{err.Error()}, Cause: err}
}

// InvalidDateError se devuelve cuando una fecha no se puede interpretar.
type InvalidDateError struct {
	Field string
	Value string
}

func (e *InvalidDateError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("%s must be a valid date", e.Field)
}

// StorageError envuelve fallas del store; no se reintenta.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// storageErr deja pasar los errores de dominio y envuelve el resto.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrOverlappingEntry) {
		return err
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
