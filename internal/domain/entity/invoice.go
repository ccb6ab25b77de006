package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceStatusActive   = "active"
	InvoiceStatusDraft    = "draft"
	InvoiceStatusProforma = "proforma"
	InvoiceStatusVoid     = "void"
)

// Invoice representa la cabecera de una factura con sus líneas.
// TaxCountry/TaxState definen la jurisdicción fiscal del cliente,
// contra la cual se filtran las reglas de impuesto aplicables.
type Invoice struct {
	ID         string
	ClientID   string
	Currency   string // ISO-4217
	Status     string
	TaxCountry string
	TaxState   string
	DateBilled time.Time
	DateDue    time.Time
	Lines      []InvoiceLine
}

// InvoiceLine representa una línea de factura. El orden de las líneas
// es significativo: determina el orden de presentación y de desempate.
type InvoiceLine struct {
	ID          string
	ServiceID   string // vacío si la línea no proviene de un servicio
	Description string
	Qty         decimal.Decimal
	Amount      decimal.Decimal // precio unitario
	TaxFlag     bool            // false = línea exenta de impuestos
}
