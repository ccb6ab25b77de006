package entity

import "github.com/shopspring/decimal"

// Tipos de descuento.
const (
	DiscountTypePercent = "percent" // porcentaje sobre la base
	DiscountTypeAmount  = "amount"  // monto fijo en la moneda del build
)

// Coupon representa un cupón o descuento aplicable a las líneas de un
// build. Los descuentos porcentuales reducen la base proporcionalmente
// antes del impuesto exclusivo; los de monto fijo se restan directo.
type Coupon struct {
	ID     string
	Code   string
	Type   string // DiscountTypePercent | DiscountTypeAmount
	Amount decimal.Decimal
}
