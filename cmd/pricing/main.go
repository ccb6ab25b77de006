// pricing calcula la presentación de una factura o servicio a partir de
// un request JSON: líneas con impuestos y descuentos aplicados,
// resúmenes y totales.
//
// Uso: go run ./cmd/pricing [ruta/request.json]
// Por defecto lee request.json en el directorio actual y escribe el
// resultado a stdout. La configuración por defecto (moneda, precisión,
// locale) sale de env/archivo vía pkg/config; el request puede
// sobreescribirla en su bloque "settings".
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/billing-pro/internal/application/pricing"
	"github.com/tu-usuario/billing-pro/internal/domain/entity"
	core "github.com/tu-usuario/billing-pro/internal/domain/pricing"
	"github.com/tu-usuario/billing-pro/pkg/config"
	"github.com/tu-usuario/billing-pro/pkg/logger"
)

// buildRequest es el request JSON de entrada.
type buildRequest struct {
	Kind     string            `json:"kind"` // invoice (default) | service
	Settings map[string]any    `json:"settings,omitempty"`
	Invoice  *invoiceRequest   `json:"invoice,omitempty"`
	Service  *serviceRequest   `json:"service,omitempty"`
	TaxRules []taxRuleRequest  `json:"tax_rules,omitempty"`
	Coupons  []couponRequest   `json:"coupons,omitempty"`
	Rates    []exchangeRequest `json:"exchange_rates,omitempty"`
}

type invoiceRequest struct {
	ID         string        `json:"id"`
	ClientID   string        `json:"client_id"`
	Currency   string        `json:"currency"`
	Status     string        `json:"status,omitempty"`
	TaxCountry string        `json:"tax_country,omitempty"`
	TaxState   string        `json:"tax_state,omitempty"`
	DateBilled string        `json:"date_billed,omitempty"` // YYYY-MM-DD
	DateDue    string        `json:"date_due,omitempty"`
	Lines      []lineRequest `json:"lines"`
}

type lineRequest struct {
	ID          string          `json:"id,omitempty"`
	ServiceID   string          `json:"service_id,omitempty"`
	Description string          `json:"description"`
	Qty         decimal.Decimal `json:"qty"`
	Amount      decimal.Decimal `json:"amount"`
	TaxFlag     bool            `json:"tax"`
}

type serviceRequest struct {
	ID               string          `json:"id"`
	ClientID         string          `json:"client_id"`
	Name             string          `json:"name"`
	Status           string          `json:"status,omitempty"`
	TaxCountry       string          `json:"tax_country,omitempty"`
	TaxState         string          `json:"tax_state,omitempty"`
	PackageID        string          `json:"package_id,omitempty"`
	PackageName      string          `json:"package_name"`
	Taxable          bool            `json:"taxable"`
	Term             int             `json:"term"`
	Period           string          `json:"period"`
	Currency         string          `json:"currency"`
	Price            decimal.Decimal `json:"price"`
	SetupFee         decimal.Decimal `json:"setup_fee"`
	Options          []optionRequest `json:"options,omitempty"`
	Prorated         bool            `json:"prorated,omitempty"`
	ProrateStartDate string          `json:"prorate_start_date,omitempty"`
	ProrateEndDate   string          `json:"prorate_end_date,omitempty"`
}

type optionRequest struct {
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name"`
	Value string          `json:"value,omitempty"`
	Qty   decimal.Decimal `json:"qty"`
	Price decimal.Decimal `json:"price"`
}

type taxRuleRequest struct {
	ID       string          `json:"id,omitempty"`
	Level    int             `json:"level"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type,omitempty"`
	Country  string          `json:"country,omitempty"`
	State    string          `json:"state,omitempty"`
	Status   string          `json:"status,omitempty"`
	Cascade  bool            `json:"cascade,omitempty"`
	Subtract bool            `json:"subtract,omitempty"`
}

type couponRequest struct {
	ID     string          `json:"id,omitempty"`
	Code   string          `json:"code"`
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

type exchangeRequest struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Rate decimal.Decimal `json:"rate"`
}

// buildResponse es la salida serializada del presenter.
type buildResponse struct {
	BuildID   string                 `json:"build_id"`
	Items     []core.PresenterItem   `json:"items"`
	Taxes     []core.TaxSummary      `json:"taxes"`
	Discounts []core.DiscountSummary `json:"discounts"`
	Totals    core.Totals            `json:"totals"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	lg := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	path := "request.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		lg.Fatal().Err(err).Str("path", path).Msg("leer request")
	}

	var req buildRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		lg.Fatal().Err(err).Msg("decodificar request")
	}

	buildID := uuid.New().String()
	blg := lg.WithBuild(buildID)

	settings := settingsFrom(cfg.Pricing, req)
	skip := func(rule *core.Item, reason string) {
		blg.Warn().
			Str("rule_id", rule.ID).
			Str("rule_name", rule.Name).
			Str("reason", reason).
			Msg("regla de impuesto omitida")
	}

	presenter, err := build(req, settings, skip)
	if err != nil {
		blg.Fatal().Err(err).Msg("build de pricing")
	}

	resp := buildResponse{
		BuildID:   buildID,
		Items:     presenter.Items(),
		Taxes:     presenter.Taxes(),
		Discounts: presenter.Discounts(),
		Totals:    presenter.Totals(),
	}
	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		blg.Fatal().Err(err).Msg("serializar respuesta")
	}
	fmt.Println(string(out))
}

func build(req buildRequest, settings core.Settings, skip core.RuleSkipFunc) (*core.Presenter, error) {
	rules := toTaxRules(req.TaxRules)
	coupons := toCoupons(req.Coupons)

	switch req.Kind {
	case "service":
		return pricing.NewServicePresenterBuilder(settings, rules, coupons).
			WithRuleSkip(skip).
			Build(toService(req.Service))
	default:
		return pricing.NewInvoicePresenterBuilder(settings, rules, coupons).
			WithRuleSkip(skip).
			Build(toInvoice(req.Invoice))
	}
}

func toInvoice(r *invoiceRequest) *entity.Invoice {
	if r == nil {
		return nil
	}
	inv := &entity.Invoice{
		ID:         r.ID,
		ClientID:   r.ClientID,
		Currency:   r.Currency,
		Status:     r.Status,
		TaxCountry: r.TaxCountry,
		TaxState:   r.TaxState,
		DateBilled: parseDate(r.DateBilled),
		DateDue:    parseDate(r.DateDue),
	}
	for _, l := range r.Lines {
		inv.Lines = append(inv.Lines, entity.InvoiceLine{
			ID:          l.ID,
			ServiceID:   l.ServiceID,
			Description: l.Description,
			Qty:         l.Qty,
			Amount:      l.Amount,
			TaxFlag:     l.TaxFlag,
		})
	}
	return inv
}

func toService(r *serviceRequest) *entity.Service {
	if r == nil {
		return nil
	}
	svc := &entity.Service{
		ID:         r.ID,
		ClientID:   r.ClientID,
		Name:       r.Name,
		Status:     r.Status,
		TaxCountry: r.TaxCountry,
		TaxState:   r.TaxState,
		Package:    entity.Package{ID: r.PackageID, Name: r.PackageName, TaxFlag: r.Taxable},
		Pricing: entity.PackagePricing{
			Term:     r.Term,
			Period:   r.Period,
			Currency: r.Currency,
			Price:    r.Price,
			SetupFee: r.SetupFee,
		},
		Prorated: r.Prorated,
	}
	if d := parseDate(r.ProrateStartDate); !d.IsZero() {
		svc.ProrateStartDate = &d
	}
	if d := parseDate(r.ProrateEndDate); !d.IsZero() {
		svc.ProrateEndDate = &d
	}
	for _, o := range r.Options {
		svc.Options = append(svc.Options, entity.ServiceOption{
			ID:    o.ID,
			Name:  o.Name,
			Value: o.Value,
			Qty:   o.Qty,
			Price: o.Price,
		})
	}
	return svc
}

func toTaxRules(rs []taxRuleRequest) []entity.TaxRule {
	out := make([]entity.TaxRule, 0, len(rs))
	for _, r := range rs {
		status := r.Status
		if status == "" {
			status = entity.TaxStatusActive
		}
		out = append(out, entity.TaxRule{
			ID:       r.ID,
			Level:    r.Level,
			Name:     r.Name,
			Amount:   r.Amount,
			Type:     r.Type,
			Country:  r.Country,
			State:    r.State,
			Status:   status,
			Cascade:  r.Cascade,
			Subtract: r.Subtract,
		})
	}
	return out
}

func toCoupons(cs []couponRequest) []entity.Coupon {
	out := make([]entity.Coupon, 0, len(cs))
	for _, c := range cs {
		out = append(out, entity.Coupon{ID: c.ID, Code: c.Code, Type: c.Type, Amount: c.Amount})
	}
	return out
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return d
}

// settingsFrom arma el Settings del build: defaults de configuración,
// sobreescritos por el bloque "settings" del request y por la moneda de
// la factura/servicio si viene declarada.
func settingsFrom(def config.PricingConfig, req buildRequest) core.Settings {
	s := core.Settings{
		Currency:          def.Currency,
		CurrencyPrecision: int32(def.CurrencyPrecision),
		Locale:            def.Locale,
		DiscountBeforeTax: def.DiscountBeforeTax,
	}
	if req.Invoice != nil && req.Invoice.Currency != "" {
		s.Currency = req.Invoice.Currency
	}
	if req.Service != nil && req.Service.Currency != "" {
		s.Currency = req.Service.Currency
	}
	if req.Settings != nil {
		override := (core.SettingsFormatter{}).Format(core.Record(req.Settings))
		if override.Currency != "" {
			s.Currency = override.Currency
		}
		if override.Locale != "" {
			s.Locale = override.Locale
		}
		if _, ok := req.Settings["currency_precision"]; ok {
			s.CurrencyPrecision = override.CurrencyPrecision
		}
		if _, ok := req.Settings["discount_before_tax"]; ok {
			s.DiscountBeforeTax = override.DiscountBeforeTax
		}
	}
	for _, r := range req.Rates {
		s.ExchangeRates = append(s.ExchangeRates, core.ExchangeRate{From: r.From, To: r.To, Rate: r.Rate})
	}
	return s
}
