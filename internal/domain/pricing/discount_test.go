package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/billing-pro/internal/domain/entity"
	"github.com/tu-usuario/billing-pro/internal/domain/pricing"
)

func coupon(code, dType, amount string) *pricing.Item {
	return (pricing.DiscountFormatter{}).Format(pricing.Record{
		"id":     "c-" + code,
		"code":   code,
		"type":   dType,
		"amount": amount,
	})
}

func TestComputeDiscounts_Porcentual(t *testing.T) {
	applied, total := pricing.ComputeDiscounts(dec("100"),
		[]*pricing.Item{coupon("SAVE10", entity.DiscountTypePercent, "10")}, testSettings())

	require.Len(t, applied, 1)
	assert.True(t, dec("10").Equal(applied[0].DiscountAmount))
	assert.True(t, dec("10").Equal(total))
}

func TestComputeDiscounts_MontoFijoSeRecortaALaBase(t *testing.T) {
	applied, total := pricing.ComputeDiscounts(dec("100"),
		[]*pricing.Item{coupon("MEGA", entity.DiscountTypeAmount, "150")}, testSettings())

	require.Len(t, applied, 1)
	assert.True(t, dec("100").Equal(total),
		"un descuento mayor a la base se recorta: la base nunca queda negativa")
}

func TestComputeDiscounts_SecuencialSobreElRestante(t *testing.T) {
	discounts := []*pricing.Item{
		coupon("HALF", entity.DiscountTypePercent, "50"),
		coupon("TEN", entity.DiscountTypePercent, "10"),
	}
	applied, total := pricing.ComputeDiscounts(dec("100"), discounts, testSettings())

	require.Len(t, applied, 2)
	assert.True(t, dec("50").Equal(applied[0].DiscountAmount))
	// El segundo porcentual aplica sobre el restante (50), no sobre 100
	assert.True(t, dec("5").Equal(applied[1].DiscountAmount))
	assert.True(t, dec("55").Equal(total))
}

func TestComputeDiscounts_BaseCero(t *testing.T) {
	applied, total := pricing.ComputeDiscounts(decimal.Zero,
		[]*pricing.Item{coupon("ANY", entity.DiscountTypeAmount, "25")}, testSettings())

	require.Len(t, applied, 1)
	assert.True(t, applied[0].DiscountAmount.IsZero())
	assert.True(t, total.IsZero())
}
