package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/billing-pro/internal/domain/entity"
)

// ComputeDiscounts aplica los descuentos en orden de entrada sobre la
// base y devuelve los items de descuento con su monto calculado y el
// total descontado. Los porcentuales se calculan sobre la base restante
// (aplicación secuencial proporcional); los de monto fijo se restan
// directo. Ningún descuento deja la base en negativo: el monto se
// recorta al restante disponible.
func ComputeDiscounts(base decimal.Decimal, discounts []*Item, s Settings) (applied []*Item, total decimal.Decimal) {
	remaining := base
	hundred := decimal.NewFromInt(100)

	for _, d := range discounts {
		if d == nil {
			continue
		}
		var amt decimal.Decimal
		switch d.DiscountType {
		case entity.DiscountTypePercent:
			amt = s.Round(remaining.Mul(d.Amount.Div(hundred)))
		default: // amount
			amt = s.Round(d.Amount)
		}
		if amt.IsNegative() {
			amt = decimal.Zero
		}
		if amt.GreaterThan(remaining) {
			amt = remaining
		}
		remaining = remaining.Sub(amt)
		total = total.Add(amt)

		disc := d.Clone()
		disc.DiscountAmount = amt
		applied = append(applied, disc)
	}
	return applied, total
}
