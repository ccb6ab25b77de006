package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/billing-pro/internal/domain/entity"
)

// RuleSkipFunc recibe cada regla de impuesto descartada por dato
// malformado o por no aplicar, con la razón. Permite al llamador dejar
// rastro del riesgo de subcobro sin que el núcleo haga I/O.
type RuleSkipFunc func(rule *Item, reason string)

// ApplicableTaxRules filtra las reglas candidatas para la jurisdicción
// (país/estado) y las ordena por nivel ascendente, preservando el orden
// de entrada dentro de un mismo nivel. Una regla malformada o inactiva
// se omite (nunca aborta); cada omisión se reporta vía skip si no es nil.
func ApplicableTaxRules(rules []*Item, country, state string, skip RuleSkipFunc) []*Item {
	report := func(r *Item, reason string) {
		if skip != nil {
			skip(r, reason)
		}
	}
	var out []*Item
	for _, r := range rules {
		switch {
		case r == nil:
			continue
		case r.Status != entity.TaxStatusActive:
			report(r, "estado inactivo")
		case r.Level < entity.TaxLevelMin || r.Level > entity.TaxLevelMax:
			report(r, "nivel fuera de rango")
		case r.TaxType != entity.TaxTypeExclusive && r.TaxType != entity.TaxTypeInclusive:
			report(r, "tipo desconocido")
		case r.Amount.IsNegative() || r.Amount.IsZero():
			report(r, "porcentaje inválido")
		case r.Country != "" && r.Country != country:
			report(r, "país no coincide")
		case r.State != "" && r.State != state:
			report(r, "estado/provincia no coincide")
		default:
			out = append(out, r)
		}
	}
	// Orden estable por nivel: nivel 1 siempre antes que nivel 2 para
	// que el cascade base sobre el monto ya ajustado.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out
}

// ComputeTaxes aplica las reglas (ya filtradas y ordenadas por nivel)
// sobre la base gravable y devuelve los items de impuesto con su monto
// calculado, el total reportado y el total que se suma al precio.
//
// Semántica por regla:
//   - exclusive: round(base × r); se suma al total. Con Subtract el
//     monto es negativo (deducción).
//   - inclusive: round(base × r ∕ (1 + r)); se reporta pero no se suma
//     (ya viene embebido en el precio declarado).
//   - nivel 2 con Cascade: la base es el monto ajustado por el nivel 1;
//     sin Cascade, la base original.
//
// reported acumula todos los montos (inclusive incluido, deducciones en
// negativo); added solo lo que modifica el total a pagar.
func ComputeTaxes(base decimal.Decimal, rules []*Item, s Settings) (applied []*Item, reported, added decimal.Decimal) {
	one := decimal.NewFromInt(1)
	hundred := decimal.NewFromInt(100)
	adjusted := base // base + nivel 1 exclusivo (deducciones en negativo)

	for _, r := range rules {
		frac := r.Amount.Div(hundred)
		b := base
		if r.Level == 2 && r.Cascade {
			b = adjusted
		}

		var amt decimal.Decimal
		switch r.TaxType {
		case entity.TaxTypeInclusive:
			amt = s.Round(b.Mul(frac).Div(one.Add(frac)))
			if r.Subtract {
				amt = amt.Neg()
			}
			reported = reported.Add(amt)
		default: // exclusive
			amt = s.Round(b.Mul(frac))
			if r.Subtract {
				amt = amt.Neg()
			}
			reported = reported.Add(amt)
			added = added.Add(amt)
			if r.Level == 1 {
				adjusted = adjusted.Add(amt)
			}
		}

		tax := r.Clone()
		tax.TaxAmount = amt
		applied = append(applied, tax)
	}
	return applied, reported, added
}
