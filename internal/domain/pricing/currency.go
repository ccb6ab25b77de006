package pricing

import "github.com/shopspring/decimal"

// BaseRate devuelve la tasa para convertir de la moneda from hacia to
// según las tasas configuradas: directa si existe, inversa (1/rate) si
// solo existe la contraria. Una tasa destino en cero o ausente produce
// cero explícito, nunca un error de división.
func BaseRate(from, to string, rates []ExchangeRate) decimal.Decimal {
	if from == to {
		return decimal.NewFromInt(1)
	}
	for _, r := range rates {
		if r.From == from && r.To == to {
			return r.Rate
		}
	}
	for _, r := range rates {
		if r.From == to && r.To == from {
			if r.Rate.IsZero() {
				return decimal.Zero
			}
			return decimal.NewFromInt(1).Div(r.Rate)
		}
	}
	return decimal.Zero
}

// Normalize convierte un monto desde la moneda from hacia la moneda del
// build, redondeado a la precisión configurada. Sin tasa disponible (o
// tasa en cero) el resultado es cero: un monto vacío es preferible a
// propagar una división inválida.
func Normalize(amount decimal.Decimal, from string, s Settings) decimal.Decimal {
	if from == "" || from == s.Currency {
		return s.Round(amount)
	}
	rate := BaseRate(from, s.Currency, s.ExchangeRates)
	if rate.IsZero() {
		return decimal.Zero
	}
	return s.Round(amount.Mul(rate))
}
