package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/billing-pro/internal/domain/entity"
)

// Record es un registro asociativo crudo de entrada (datos ad hoc que
// aún no existen como entidad persistida). Los campos ausentes o con
// tipo inesperado se resuelven al valor cero correspondiente: los
// formatters nunca fallan por datos faltantes.
type Record map[string]any

func (r Record) str(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}

func (r Record) dec(key string) decimal.Decimal {
	switch v := r[key].(type) {
	case decimal.Decimal:
		return v
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		return decimal.Zero
	}
}

func (r Record) boolean(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "1"
	default:
		return false
	}
}

func (r Record) integer(key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func (r Record) date(key string) string {
	switch v := r[key].(type) {
	case time.Time:
		return v.Format("2006-01-02")
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.Format("2006-01-02")
	case string:
		return v
	default:
		return ""
	}
}

// InvoiceFormatter normaliza registros de cabecera de factura.
type InvoiceFormatter struct{}

// Format normaliza un registro asociativo de factura.
func (InvoiceFormatter) Format(rec Record) *Item {
	return &Item{
		Kind:     KindInvoice,
		ID:       rec.str("id"),
		Currency: strings.ToUpper(rec.str("currency")),
		Status:   rec.str("status"),
		Country:  rec.str("tax_country"),
		State:    rec.str("tax_state"),
		Meta: map[string]string{
			"client_id":   rec.str("client_id"),
			"date_billed": rec.date("date_billed"),
			"date_due":    rec.date("date_due"),
		},
	}
}

// FormatService normaliza una factura persistida.
func (InvoiceFormatter) FormatService(inv *entity.Invoice) *Item {
	if inv == nil {
		return (InvoiceFormatter{}).Format(Record{})
	}
	return (InvoiceFormatter{}).Format(Record{
		"id":          inv.ID,
		"client_id":   inv.ClientID,
		"currency":    inv.Currency,
		"status":      inv.Status,
		"tax_country": inv.TaxCountry,
		"tax_state":   inv.TaxState,
		"date_billed": inv.DateBilled,
		"date_due":    inv.DateDue,
	})
}

// LineFormatter normaliza líneas de factura.
type LineFormatter struct{}

// Format normaliza un registro asociativo de línea. Una línea con
// qty=0 o amount=0 se conserva (produce impuestos y descuentos en
// cero, pero participa de totales y descripciones).
func (LineFormatter) Format(rec Record) *Item {
	return &Item{
		Kind:         KindLine,
		ID:           rec.str("id"),
		Description:  rec.str("description"),
		Qty:          rec.dec("qty"),
		Amount:       rec.dec("amount"),
		TaxFlag:      rec.boolean("tax"),
		Prorated:     rec.boolean("prorated"),
		ProrateStart: rec.date("prorate_start_date"),
		ProrateEnd:   rec.date("prorate_end_date"),
		Meta: map[string]string{
			"service_id": rec.str("service_id"),
		},
	}
}

// FormatService normaliza una línea persistida.
func (LineFormatter) FormatService(line *entity.InvoiceLine) *Item {
	if line == nil {
		return (LineFormatter{}).Format(Record{})
	}
	return (LineFormatter{}).Format(Record{
		"id":          line.ID,
		"service_id":  line.ServiceID,
		"description": line.Description,
		"qty":         line.Qty,
		"amount":      line.Amount,
		"tax":         line.TaxFlag,
	})
}

// TaxFormatter normaliza reglas de impuesto.
type TaxFormatter struct{}

// Format normaliza un registro asociativo de regla de impuesto.
// El porcentaje admite la forma fraccional (0.19) o porcentual (19);
// ambas se normalizan a porcentaje.
func (TaxFormatter) Format(rec Record) *Item {
	level := rec.integer("level")
	if level == 0 {
		level = entity.TaxLevelMin
	}
	taxType := rec.str("type")
	if taxType == "" {
		taxType = entity.TaxTypeExclusive
	}
	return &Item{
		Kind:     KindTax,
		ID:       rec.str("id"),
		Name:     rec.str("name"),
		Amount:   NormalizeRate(rec.dec("amount")),
		Level:    level,
		TaxType:  taxType,
		Country:  rec.str("country"),
		State:    rec.str("state"),
		Status:   rec.str("status"),
		Cascade:  rec.boolean("cascade"),
		Subtract: rec.boolean("subtract"),
	}
}

// FormatService normaliza una regla de impuesto persistida. El monto
// tipado ya es un porcentaje por contrato de la entidad y se transporta
// tal cual, sin la heurística de forma del camino ad hoc: una regla
// legítima de 0.5% sigue siendo 0.5%.
func (TaxFormatter) FormatService(rule *entity.TaxRule) *Item {
	if rule == nil {
		return (TaxFormatter{}).Format(Record{})
	}
	it := (TaxFormatter{}).Format(Record{
		"id":       rule.ID,
		"level":    rule.Level,
		"name":     rule.Name,
		"type":     rule.Type,
		"country":  rule.Country,
		"state":    rule.State,
		"status":   rule.Status,
		"cascade":  rule.Cascade,
		"subtract": rule.Subtract,
	})
	it.Amount = rule.Amount
	return it
}

// DiscountFormatter normaliza cupones y descuentos.
type DiscountFormatter struct{}

// Format normaliza un registro asociativo de descuento.
func (DiscountFormatter) Format(rec Record) *Item {
	dType := rec.str("type")
	if dType == "" {
		dType = entity.DiscountTypeAmount
	}
	amount := rec.dec("amount")
	if dType == entity.DiscountTypePercent {
		amount = NormalizeRate(amount)
	}
	return &Item{
		Kind:         KindDiscount,
		ID:           rec.str("id"),
		Name:         rec.str("code"),
		DiscountType: dType,
		Amount:       amount,
	}
}

// FormatService normaliza un cupón persistido. El monto tipado se
// transporta tal cual: un cupón porcentual de 0.5 significa 0.5%.
func (DiscountFormatter) FormatService(c *entity.Coupon) *Item {
	if c == nil {
		return (DiscountFormatter{}).Format(Record{})
	}
	it := (DiscountFormatter{}).Format(Record{
		"id":   c.ID,
		"code": c.Code,
		"type": c.Type,
	})
	it.Amount = c.Amount
	return it
}

// OptionFormatter normaliza opciones configurables de servicio.
type OptionFormatter struct{}

// Format normaliza un registro asociativo de opción.
func (OptionFormatter) Format(rec Record) *Item {
	return &Item{
		Kind:   KindOption,
		ID:     rec.str("id"),
		Name:   rec.str("name"),
		Qty:    rec.dec("qty"),
		Amount: rec.dec("price"),
		Meta:   map[string]string{"value": rec.str("value")},
	}
}

// FormatService normaliza una opción persistida.
func (OptionFormatter) FormatService(opt *entity.ServiceOption) *Item {
	if opt == nil {
		return (OptionFormatter{}).Format(Record{})
	}
	return (OptionFormatter{}).Format(Record{
		"id":    opt.ID,
		"name":  opt.Name,
		"value": opt.Value,
		"qty":   opt.Qty,
		"price": opt.Price,
	})
}

// PackageFormatter normaliza paquetes.
type PackageFormatter struct{}

// Format normaliza un registro asociativo de paquete.
func (PackageFormatter) Format(rec Record) *Item {
	return &Item{
		Kind:    KindPackage,
		ID:      rec.str("id"),
		Name:    rec.str("name"),
		TaxFlag: rec.boolean("taxable"),
	}
}

// FormatService normaliza un paquete persistido.
func (PackageFormatter) FormatService(p *entity.Package) *Item {
	if p == nil {
		return (PackageFormatter{}).Format(Record{})
	}
	return (PackageFormatter{}).Format(Record{
		"id":      p.ID,
		"name":    p.Name,
		"taxable": p.TaxFlag,
	})
}

// PricingFormatter normaliza precios de paquete (término, período).
type PricingFormatter struct{}

// Format normaliza un registro asociativo de precio.
func (PricingFormatter) Format(rec Record) *Item {
	return &Item{
		Kind:     KindPricing,
		ID:       rec.str("id"),
		Currency: strings.ToUpper(rec.str("currency")),
		Amount:   rec.dec("price"),
		Meta: map[string]string{
			"term":      fmt.Sprintf("%d", rec.integer("term")),
			"period":    rec.str("period"),
			"setup_fee": rec.dec("setup_fee").String(),
		},
	}
}

// FormatService normaliza un precio persistido.
func (PricingFormatter) FormatService(p *entity.PackagePricing) *Item {
	if p == nil {
		return (PricingFormatter{}).Format(Record{})
	}
	return (PricingFormatter{}).Format(Record{
		"id":        p.ID,
		"term":      p.Term,
		"period":    p.Period,
		"currency":  p.Currency,
		"price":     p.Price,
		"setup_fee": p.SetupFee,
	})
}

// ServiceFormatter normaliza servicios.
type ServiceFormatter struct{}

// Format normaliza un registro asociativo de servicio.
func (ServiceFormatter) Format(rec Record) *Item {
	return &Item{
		Kind:         KindService,
		ID:           rec.str("id"),
		Name:         rec.str("name"),
		Status:       rec.str("status"),
		Country:      rec.str("tax_country"),
		State:        rec.str("tax_state"),
		Prorated:     rec.boolean("prorated"),
		ProrateStart: rec.date("prorate_start_date"),
		ProrateEnd:   rec.date("prorate_end_date"),
		Meta: map[string]string{
			"client_id": rec.str("client_id"),
		},
	}
}

// FormatService normaliza un servicio persistido.
func (ServiceFormatter) FormatService(svc *entity.Service) *Item {
	if svc == nil {
		return (ServiceFormatter{}).Format(Record{})
	}
	return (ServiceFormatter{}).Format(Record{
		"id":                 svc.ID,
		"client_id":          svc.ClientID,
		"name":               svc.Name,
		"status":             svc.Status,
		"tax_country":        svc.TaxCountry,
		"tax_state":          svc.TaxState,
		"prorated":           svc.Prorated,
		"prorate_start_date": svc.ProrateStartDate,
		"prorate_end_date":   svc.ProrateEndDate,
	})
}

// SettingsFormatter normaliza registros de configuración hacia el
// objeto Settings. Como en los demás formatters, los campos ausentes
// resuelven al valor cero; el llamador que necesite distinguir una
// bandera de comportamiento ausente de una en false inspecciona la
// presencia de la clave en el registro antes de pisar sus defaults.
type SettingsFormatter struct{}

// Format construye Settings desde un registro asociativo.
func (SettingsFormatter) Format(rec Record) Settings {
	precision := int32(rec.integer("currency_precision"))
	return Settings{
		Currency:          strings.ToUpper(rec.str("currency")),
		CurrencyPrecision: precision,
		Locale:            rec.str("locale"),
		DiscountBeforeTax: rec.boolean("discount_before_tax"),
	}
}

// FormatService devuelve la configuración ya tipada tal cual (punto de
// extensión simétrico con los demás formatters).
func (SettingsFormatter) FormatService(s Settings) Settings { return s }

// NormalizeRate normaliza una tasa a porcentaje: valores en forma
// fraccional (0 < r < 1, ej: 0.19) se convierten a 19; el resto se
// devuelve tal cual. Tasas negativas se tratan como dato malformado y
// colapsan a cero.
func NormalizeRate(rate decimal.Decimal) decimal.Decimal {
	if rate.IsNegative() {
		return decimal.Zero
	}
	one := decimal.NewFromInt(1)
	if rate.GreaterThan(decimal.Zero) && rate.LessThan(one) {
		return rate.Mul(decimal.NewFromInt(100))
	}
	return rate
}
