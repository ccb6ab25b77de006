package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/billing-pro/internal/domain/entity"
	"github.com/tu-usuario/billing-pro/internal/domain/pricing"
)

func descriptorFor(locale string) *pricing.Descriptor {
	s := testSettings()
	s.Locale = locale
	return pricing.NewDescriptor(s)
}

func TestDescriptor_ImpuestoEnIngles(t *testing.T) {
	d := descriptorFor("en")
	tax := taxRule("t1", "VAT", 1, "20")
	assert.Equal(t, "VAT (20%)", d.Tax(tax))
}

func TestDescriptor_CuponEnIngles(t *testing.T) {
	d := descriptorFor("en")
	c := coupon("X", entity.DiscountTypePercent, "10")
	assert.Equal(t, "10% off due to coupon X", d.Discount(c))
}

func TestDescriptor_CuponEnEspanol(t *testing.T) {
	d := descriptorFor("es")
	c := coupon("X", entity.DiscountTypePercent, "10")
	assert.Equal(t, "10% de descuento por el cupón X", d.Discount(c))
}

func TestDescriptor_RetencionEnEspanol(t *testing.T) {
	d := descriptorFor("es")
	ret := taxRule("t1", "ReteIVA", 1, "15")
	ret.Subtract = true
	assert.Equal(t, "ReteIVA retenido (15%)", d.Tax(ret))
}

// Los montos con ceros fraccionales finales se normalizan antes de
// interpolar: 5.0 → 5, 19.50 → 19.5.
func TestDescriptor_NormalizaCerosFinales(t *testing.T) {
	d := descriptorFor("en")

	cincoPuntoCero := taxRule("t1", "Flat", 1, "5.0")
	assert.Equal(t, "Flat (5%)", d.Tax(cincoPuntoCero))

	conMedio := taxRule("t2", "Mid", 1, "19.50")
	assert.Equal(t, "Mid (19.5%)", d.Tax(conMedio))
}

// Un locale sin catálogo propio cae al inglés.
func TestDescriptor_FallbackAIngles(t *testing.T) {
	d := descriptorFor("fr")
	tax := taxRule("t1", "TVA", 1, "20")
	assert.Equal(t, "TVA (20%)", d.Tax(tax))
}

func TestDescriptor_OpcionConValor(t *testing.T) {
	d := descriptorFor("en")
	conValor := (pricing.OptionFormatter{}).Format(pricing.Record{
		"name": "Backups", "value": "daily",
	})
	assert.Equal(t, "Backups: daily", d.Option(conValor))

	sinValor := (pricing.OptionFormatter{}).Format(pricing.Record{"name": "SSL"})
	assert.Equal(t, "SSL", d.Option(sinValor))
}

func TestDescriptor_DescuentoSinCupon(t *testing.T) {
	d := descriptorFor("en")
	flat := (pricing.DiscountFormatter{}).Format(pricing.Record{
		"type":   entity.DiscountTypeAmount,
		"amount": "25.00",
	})
	assert.Equal(t, "Discount of 25 USD", d.Discount(flat))
}
