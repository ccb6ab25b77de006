package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/billing-pro/internal/domain/entity"
	"github.com/tu-usuario/billing-pro/internal/domain/pricing"
)

// Un servicio sin ID de precio no produce una línea de instalación con
// ID huérfano ("-setup"): el ID cae al del servicio, de modo que dos
// servicios distintos nunca coliden.
func TestServiceItems_SetupSinPricingIDDerivaDelServicio(t *testing.T) {
	svc := &entity.Service{
		ID:      "svc-9",
		Package: entity.Package{Name: "Plan"},
		Pricing: entity.PackagePricing{
			Currency: "USD",
			Price:    dec("10"),
			SetupFee: dec("5"),
		},
	}
	assembler := pricing.NewServiceItems(testSettings(), nil, nil, nil)
	lines := assembler.Lines(svc).Items()

	require.Len(t, lines, 2)
	assert.Equal(t, "svc-9-setup", lines[1].ID)
	assert.Equal(t, "Plan - Setup", lines[1].Description)
}

func TestServiceItems_SetupConPricingIDLoConserva(t *testing.T) {
	svc := &entity.Service{
		ID:      "svc-9",
		Package: entity.Package{Name: "Plan"},
		Pricing: entity.PackagePricing{
			ID:       "pr-1",
			Currency: "USD",
			Price:    dec("10"),
			SetupFee: dec("5"),
		},
	}
	lines := pricing.NewServiceItems(testSettings(), nil, nil, nil).Lines(svc).Items()

	require.Len(t, lines, 2)
	assert.Equal(t, "pr-1-setup", lines[1].ID)
}
