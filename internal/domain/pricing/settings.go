// Package pricing implementa el núcleo de cálculo de facturación:
// formatter → ensamblador de items → fábrica de precios → presenter.
// Todo el dinero se maneja con decimal de punto fijo y redondeo
// half-up a la precisión de la moneda en cada frontera de agregación.
package pricing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/tu-usuario/billing-pro/internal/domain"
)

// Settings es el objeto de configuración de un build. Se construye una
// vez, se valida al inicio y se comparte en solo-lectura por todos los
// cálculos de ese build. El núcleo nunca lee estado global: toda
// configuración entra por aquí.
type Settings struct {
	Currency          string // moneda del build (ISO-4217)
	CurrencyPrecision int32  // dígitos decimales de la moneda (0..8)
	Locale            string // BCP-47 para las descripciones (ej: "es", "en")
	DiscountBeforeTax bool   // true = el descuento reduce la base del impuesto exclusivo
	ExchangeRates     []ExchangeRate
}

// ExchangeRate define la tasa de conversión de una moneda origen hacia
// una moneda destino (1 From = Rate To).
type ExchangeRate struct {
	From string
	To   string
	Rate decimal.Decimal
}

// Validate verifica la configuración al inicio del build. Una
// configuración inválida aborta: nunca se aplican valores por defecto
// silenciosos sobre banderas de comportamiento.
func (s Settings) Validate() error {
	if s.Currency == "" {
		return domain.NewConfigError("currency")
	}
	if s.CurrencyPrecision < 0 || s.CurrencyPrecision > 8 {
		return domain.NewConfigError("currency_precision")
	}
	if s.Locale == "" {
		return domain.NewConfigError("locale")
	}
	if _, err := language.Parse(s.Locale); err != nil {
		return domain.NewConfigError("locale")
	}
	for _, r := range s.ExchangeRates {
		if r.From == "" || r.To == "" {
			return domain.NewConfigError("exchange_rate")
		}
	}
	return nil
}

// Round redondea half-up a la precisión de la moneda. Se aplica en cada
// frontera de agregación, no solo al mostrar.
func (s Settings) Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(s.CurrencyPrecision)
}

// Tag devuelve el tag BCP-47 parseado; inglés si el locale no parsea
// (solo alcanzable si no se validó la configuración).
func (s Settings) Tag() language.Tag {
	tag, err := language.Parse(s.Locale)
	if err != nil {
		return language.English
	}
	return tag
}
