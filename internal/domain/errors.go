package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidSettings = errors.New("configuración inválida")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrZeroRate        = errors.New("tasa de cambio en cero")
)

// Clases de error del núcleo de pricing.
const (
	ErrKindConfig  = "config"  // configuración faltante o inválida; aborta el build
	ErrKindData    = "data"    // dato malformado; se omite su contribución, no aborta
	ErrKindNumeric = "numeric" // condición numérica (ej: tasa en cero); resultado cero explícito
)

// BuildError es un error estructurado del build: clase + campo ofensor,
// envolviendo el error de dominio para poder testear con errors.Is.
type BuildError struct {
	Kind  string // ErrKindConfig | ErrKindData | ErrKindNumeric
	Field string // campo ofensor (ej: "currency", "tax_rule.level")
	Err   error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Field, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// NewConfigError crea un error de configuración para el campo indicado.
func NewConfigError(field string) *BuildError {
	return &BuildError{Kind: ErrKindConfig, Field: field, Err: ErrInvalidSettings}
}

// NewDataError crea un error de dato malformado para el campo indicado.
func NewDataError(field string) *BuildError {
	return &BuildError{Kind: ErrKindData, Field: field, Err: ErrInvalidInput}
}
