package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un servicio.
const (
	ServiceStatusActive    = "active"
	ServiceStatusPending   = "pending"
	ServiceStatusSuspended = "suspended"
	ServiceStatusCanceled  = "canceled"
)

// Service representa un servicio contratado por un cliente: un paquete
// con su precio vigente y las opciones configurables seleccionadas.
// Los campos de prorrateo se transportan sin recalcular (el cálculo del
// período parcial ocurre fuera de este núcleo).
type Service struct {
	ID         string
	ClientID   string
	Name       string
	Status     string
	TaxCountry string
	TaxState   string
	Package    Package
	Pricing    PackagePricing
	Options    []ServiceOption
	// Prorrateo (metadatos, se transportan tal cual)
	Prorated         bool
	ProrateStartDate *time.Time
	ProrateEndDate   *time.Time
}

// Package representa el paquete (producto) asociado a un servicio.
type Package struct {
	ID      string
	Name    string
	TaxFlag bool // false = paquete exento de impuestos
}

// PackagePricing representa el precio vigente de un paquete: término,
// período y montos en la moneda indicada.
type PackagePricing struct {
	ID       string
	Term     int    // cantidad de períodos (ej: 3)
	Period   string // day, week, month, year, onetime
	Currency string
	Price    decimal.Decimal
	SetupFee decimal.Decimal
}

// ServiceOption representa una opción configurable del servicio
// (ej: espacio adicional, licencia). Qty multiplica el precio.
type ServiceOption struct {
	ID    string
	Name  string
	Value string
	Qty   decimal.Decimal
	Price decimal.Decimal
}
