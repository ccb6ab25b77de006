package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/billing-pro/internal/domain/pricing"
)

func ratesUSD() []pricing.ExchangeRate {
	return []pricing.ExchangeRate{
		{From: "EUR", To: "USD", Rate: dec("1.25")},
		{From: "USD", To: "COP", Rate: dec("4000")},
		{From: "XXX", To: "USD", Rate: dec("0")},
	}
}

func TestBaseRate_DirectaEInversa(t *testing.T) {
	rates := ratesUSD()
	assert.True(t, dec("1.25").Equal(pricing.BaseRate("EUR", "USD", rates)))
	// Inversa: 1 / 4000
	assert.True(t, dec("0.00025").Equal(pricing.BaseRate("COP", "USD", rates)))
	assert.True(t, dec("1").Equal(pricing.BaseRate("USD", "USD", rates)))
}

// Una tasa destino en cero o ausente produce cero explícito, nunca una
// división inválida.
func TestBaseRate_TasaCeroOAusente(t *testing.T) {
	rates := ratesUSD()
	assert.True(t, pricing.BaseRate("XXX", "USD", rates).IsZero())
	assert.True(t, pricing.BaseRate("USD", "XXX", rates).IsZero(), "la inversa de una tasa cero también es cero")
	assert.True(t, pricing.BaseRate("GBP", "USD", rates).IsZero(), "sin tasa configurada el resultado es cero")
}

func TestNormalize_ConvierteYRedondea(t *testing.T) {
	s := testSettings()
	s.ExchangeRates = ratesUSD()

	got := pricing.Normalize(dec("100"), "EUR", s)
	assert.True(t, dec("125").Equal(got))

	mismaMoneda := pricing.Normalize(dec("10.005"), "USD", s)
	assert.True(t, dec("10.01").Equal(mismaMoneda), "redondeo half-up a la precisión de la moneda")

	sinTasa := pricing.Normalize(dec("100"), "GBP", s)
	assert.True(t, sinTasa.IsZero())
}
