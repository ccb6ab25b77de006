package entity

import "github.com/shopspring/decimal"

// Tipos de impuesto.
const (
	TaxTypeExclusive = "exclusive" // se suma sobre el precio declarado
	TaxTypeInclusive = "inclusive" // ya viene embebido en el precio declarado
)

// Estados de una regla de impuesto.
const (
	TaxStatusActive   = "active"
	TaxStatusInactive = "inactive"
)

// Niveles de impuesto soportados.
const (
	TaxLevelMin = 1
	TaxLevelMax = 2
)

// TaxRule representa una regla de impuesto por jurisdicción.
// Amount es un porcentaje (19 = 19%). Las reglas de nivel 2 con Cascade
// se calculan sobre el monto ya ajustado por el nivel 1; con Subtract el
// nivel actúa como deducción (retención) en lugar de adición.
type TaxRule struct {
	ID       string
	Level    int
	Name     string
	Amount   decimal.Decimal // porcentaje
	Type     string          // TaxTypeExclusive | TaxTypeInclusive
	Country  string
	State    string // vacío = aplica a todo el país
	Status   string
	Cascade  bool
	Subtract bool
}
