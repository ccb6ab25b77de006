package pricing_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apppricing "github.com/tu-usuario/billing-pro/internal/application/pricing"
	"github.com/tu-usuario/billing-pro/internal/domain"
	"github.com/tu-usuario/billing-pro/internal/domain/entity"
	core "github.com/tu-usuario/billing-pro/internal/domain/pricing"
)

func buildSettings() core.Settings {
	return core.Settings{
		Currency:          "USD",
		CurrencyPrecision: 2,
		Locale:            "en",
		DiscountBeforeTax: true,
	}
}

func sampleInvoice() *entity.Invoice {
	qty1 := decimal.NewFromInt(1)
	return &entity.Invoice{
		ID:         "inv-1",
		ClientID:   "cl-1",
		Currency:   "USD",
		Status:     entity.InvoiceStatusActive,
		TaxCountry: "CO",
		DateBilled: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Lines: []entity.InvoiceLine{
			{ID: "l1", Description: "Hosting", Qty: qty1, Amount: decimal.NewFromInt(100), TaxFlag: true},
			{ID: "l2", Description: "Dominio", Qty: qty1, Amount: decimal.NewFromInt(20), TaxFlag: false},
		},
	}
}

func sampleRules() []entity.TaxRule {
	return []entity.TaxRule{
		{ID: "t1", Level: 1, Name: "IVA", Amount: decimal.NewFromInt(19),
			Type: entity.TaxTypeExclusive, Country: "CO", Status: entity.TaxStatusActive},
	}
}

func sampleCoupons() []entity.Coupon {
	return []entity.Coupon{
		{ID: "c1", Code: "PROMO", Type: entity.DiscountTypePercent, Amount: decimal.NewFromInt(10)},
	}
}

// serialize aplana el presenter completo para comparar corridas bit a
// bit.
func serialize(t *testing.T, p *core.Presenter) []byte {
	t.Helper()
	out, err := json.Marshal(map[string]any{
		"items":     p.Items(),
		"taxes":     p.Taxes(),
		"discounts": p.Discounts(),
		"totals":    p.Totals(),
	})
	require.NoError(t, err)
	return out
}

// Construir dos veces con entrada idéntica produce salida bit a bit
// idéntica: no hay estado compartido ni fuentes de no-determinismo.
func TestInvoiceBuilder_Determinista(t *testing.T) {
	builder := apppricing.NewInvoicePresenterBuilder(buildSettings(), sampleRules(), sampleCoupons())

	p1, err := builder.Build(sampleInvoice())
	require.NoError(t, err)
	p2, err := builder.Build(sampleInvoice())
	require.NoError(t, err)

	assert.Equal(t, serialize(t, p1), serialize(t, p2))
}

func TestInvoiceBuilder_ConfiguracionInvalidaAborta(t *testing.T) {
	s := buildSettings()
	s.Currency = ""
	_, err := apppricing.NewInvoicePresenterBuilder(s, nil, nil).Build(sampleInvoice())

	require.Error(t, err)
	var berr *domain.BuildError
	require.True(t, errors.As(err, &berr))
	assert.Equal(t, domain.ErrKindConfig, berr.Kind)
	assert.Equal(t, "currency", berr.Field)
}

func TestInvoiceBuilder_CalculaDesglose(t *testing.T) {
	p, err := apppricing.NewInvoicePresenterBuilder(buildSettings(), sampleRules(), sampleCoupons()).
		Build(sampleInvoice())
	require.NoError(t, err)

	items := p.Items()
	require.Len(t, items, 2)

	// Hosting: 100 − 10% = 90; IVA 19% sobre 90 = 17.10 → total 107.10
	assert.Equal(t, "17.1", items[0].TaxAmount.String())
	assert.Equal(t, "107.1", items[0].Total.String())
	// Dominio exento: 20 − 10% = 18, sin impuesto
	assert.True(t, items[1].TaxAmount.IsZero())
	assert.Equal(t, "18", items[1].Total.String())

	totals := p.Totals()
	assert.Equal(t, "120", totals.Subtotal.String())
	assert.Equal(t, "12", totals.DiscountAmount.String())
	assert.Equal(t, "17.1", totals.TaxAmount.String())
	assert.Equal(t, "125.1", totals.Total.String())
}

// Una regla sub-1% aplicada de extremo a extremo: 0.5% sobre 100 da
// 0.50, nunca 50.
func TestInvoiceBuilder_TasaMenorAUnoPorCiento(t *testing.T) {
	rules := []entity.TaxRule{
		{ID: "t1", Level: 1, Name: "Estampilla", Amount: decimal.NewFromFloat(0.5),
			Type: entity.TaxTypeExclusive, Country: "CO", Status: entity.TaxStatusActive},
	}
	p, err := apppricing.NewInvoicePresenterBuilder(buildSettings(), rules, nil).
		Build(sampleInvoice())
	require.NoError(t, err)

	assert.Equal(t, "0.5", p.Totals().TaxAmount.String())
}

func TestInvoiceBuilder_ReportaReglasOmitidas(t *testing.T) {
	rules := append(sampleRules(), entity.TaxRule{
		ID: "rota", Level: 9, Name: "Rota", Amount: decimal.NewFromInt(5),
		Type: entity.TaxTypeExclusive, Country: "CO", Status: entity.TaxStatusActive,
	})

	var omitidas []string
	_, err := apppricing.NewInvoicePresenterBuilder(buildSettings(), rules, nil).
		WithRuleSkip(func(rule *core.Item, reason string) { omitidas = append(omitidas, rule.ID) }).
		Build(sampleInvoice())
	require.NoError(t, err)

	assert.Equal(t, []string{"rota"}, omitidas)
}

func TestInvoiceDataBuilder_RegistrosAdHoc(t *testing.T) {
	builder := apppricing.NewInvoiceDataPresenterBuilder(buildSettings(), sampleRules(), nil)
	p, err := builder.Build(
		core.Record{"id": "inv-x", "currency": "USD", "tax_country": "CO"},
		[]core.Record{
			{"description": "Licencia", "qty": "2", "amount": "30", "tax": true},
			{"description": "Sin datos"}, // campos ausentes valen cero
		},
	)
	require.NoError(t, err)

	items := p.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "60", items[0].Subtotal.String())
	assert.Equal(t, "11.4", items[0].TaxAmount.String())
	assert.True(t, items[1].Subtotal.IsZero(), "la línea vacía se conserva con montos en cero")
}

func sampleService() *entity.Service {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	return &entity.Service{
		ID:         "svc-1",
		ClientID:   "cl-1",
		Name:       "Plan Web",
		Status:     entity.ServiceStatusActive,
		TaxCountry: "CO",
		Package:    entity.Package{ID: "pkg-1", Name: "Plan Web", TaxFlag: true},
		Pricing: entity.PackagePricing{
			ID: "pr-1", Term: 1, Period: "month", Currency: "USD",
			Price:    decimal.NewFromInt(50),
			SetupFee: decimal.NewFromInt(10),
		},
		Options: []entity.ServiceOption{
			{ID: "o1", Name: "Backups", Qty: decimal.NewFromInt(2), Price: decimal.NewFromInt(5)},
		},
		Prorated:         true,
		ProrateStartDate: &start,
		ProrateEndDate:   &end,
	}
}

func TestServiceBuilder_DerivaLineas(t *testing.T) {
	p, err := apppricing.NewServicePresenterBuilder(buildSettings(), sampleRules(), nil).
		Build(sampleService())
	require.NoError(t, err)

	items := p.Items()
	require.Len(t, items, 3, "paquete, instalación y opción")

	assert.True(t, items[0].Prorated, "la línea base transporta el prorrateo del servicio")
	assert.Equal(t, "Plan Web (prorated 2026-01-01 to 2026-01-15)", items[0].Description)
	assert.Equal(t, "50", items[0].Subtotal.String())

	assert.Equal(t, "Plan Web - Setup", items[1].Description)
	assert.Equal(t, "10", items[1].Subtotal.String())

	assert.Equal(t, "Backups", items[2].Description)
	assert.Equal(t, "10", items[2].Subtotal.String(), "qty 2 × 5")

	// Las tres líneas son gravables: IVA 19% sobre 70
	assert.Equal(t, "13.3", p.Totals().TaxAmount.String())
}

func TestServiceBuilder_ConvierteMonedaDelPrecio(t *testing.T) {
	s := buildSettings()
	s.ExchangeRates = []core.ExchangeRate{{From: "EUR", To: "USD", Rate: decimal.NewFromFloat(1.25)}}

	svc := sampleService()
	svc.Pricing.Currency = "EUR"
	svc.Pricing.SetupFee = decimal.Zero
	svc.Options = nil

	p, err := apppricing.NewServicePresenterBuilder(s, nil, nil).Build(svc)
	require.NoError(t, err)

	items := p.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "62.5", items[0].Subtotal.String(), "50 EUR × 1.25")
}

func TestServiceDataBuilder_RegistrosAdHoc(t *testing.T) {
	p, err := apppricing.NewServiceDataPresenterBuilder(buildSettings(), nil, nil).
		Build(
			core.Record{"id": "svc-x", "tax_country": "CO"},
			[]core.Record{{"description": "Base", "qty": "1", "amount": "40", "tax": false}},
		)
	require.NoError(t, err)

	totals := p.Totals()
	assert.Equal(t, "40", totals.Total.String())
}
