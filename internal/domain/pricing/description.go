package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tu-usuario/billing-pro/internal/domain/entity"
)

// DescriptionKind discrimina la variante de descripción. El switch
// sobre el kind es exhaustivo: agregar una variante nueva exige tocar
// cada punto de despacho.
type DescriptionKind int

// Variantes de descripción.
const (
	DescriptionTax DescriptionKind = iota
	DescriptionCoupon
	DescriptionDiscount
	DescriptionOption
	DescriptionProration
)

// Claves del catálogo (el texto en inglés es la clave y el fallback).
const (
	msgTax            = "%s (%s%%)"
	msgTaxWithheld    = "%s withheld (%s%%)"
	msgCouponPercent  = "%s%% off due to coupon %s"
	msgCouponAmount   = "%s %s off due to coupon %s"
	msgDiscountFlat   = "Discount of %s %s"
	msgOptionValue    = "%s: %s"
	msgProratedPeriod = "%s (prorated %s to %s)"
)

func init() {
	es := language.Spanish
	message.SetString(es, msgTax, "%s (%s%%)")
	message.SetString(es, msgTaxWithheld, "%s retenido (%s%%)")
	message.SetString(es, msgCouponPercent, "%s%% de descuento por el cupón %s")
	message.SetString(es, msgCouponAmount, "%s %s de descuento por el cupón %s")
	message.SetString(es, msgDiscountFlat, "Descuento de %s %s")
	message.SetString(es, msgOptionValue, "%s: %s")
	message.SetString(es, msgProratedPeriod, "%s (prorrateado del %s al %s)")
}

// Descriptor sintetiza descripciones legibles por humanos para los
// items calculados, en el locale del build. Los montos se normalizan
// quitando ceros fraccionales finales (5.0 → 5) antes de interpolar.
type Descriptor struct {
	settings Settings
	printer  *message.Printer
}

// NewDescriptor construye el descriptor para la configuración dada.
// Locales sin catálogo propio caen al inglés.
func NewDescriptor(s Settings) *Descriptor {
	return &Descriptor{settings: s, printer: message.NewPrinter(s.Tag())}
}

// Describe despacha por variante. Los llamadores con el item a mano
// usan los atajos Tax/Discount/Prorated.
func (d *Descriptor) Describe(kind DescriptionKind, it *Item) string {
	switch kind {
	case DescriptionTax:
		return d.Tax(it)
	case DescriptionCoupon, DescriptionDiscount:
		return d.Discount(it)
	case DescriptionOption:
		return d.Option(it)
	case DescriptionProration:
		return d.Prorated(it)
	}
	return ""
}

// Tax describe una regla de impuesto aplicada: "VAT (20%)", o la forma
// de retención cuando la regla es una deducción.
func (d *Descriptor) Tax(tax *Item) string {
	rate := trimZeros(tax.Amount)
	if tax.Subtract {
		return d.printer.Sprintf(msgTaxWithheld, tax.Name, rate)
	}
	return d.printer.Sprintf(msgTax, tax.Name, rate)
}

// Discount describe un descuento aplicado. Con código de cupón usa la
// forma "10% off due to coupon X"; sin código, la forma genérica.
func (d *Descriptor) Discount(disc *Item) string {
	switch {
	case disc.DiscountType == entity.DiscountTypePercent && disc.Name != "":
		return d.printer.Sprintf(msgCouponPercent, trimZeros(disc.Amount), disc.Name)
	case disc.Name != "":
		return d.printer.Sprintf(msgCouponAmount, trimZeros(disc.Amount), d.settings.Currency, disc.Name)
	default:
		return d.printer.Sprintf(msgDiscountFlat, trimZeros(disc.Amount), d.settings.Currency)
	}
}

// Option describe una opción configurable con su valor seleccionado:
// "Backups: daily". Sin valor seleccionado, solo el nombre.
func (d *Descriptor) Option(opt *Item) string {
	if opt.Meta != nil && opt.Meta["value"] != "" {
		return d.printer.Sprintf(msgOptionValue, opt.Name, opt.Meta["value"])
	}
	return opt.Name
}

// Prorated describe una línea prorrateada conservando su descripción
// original: "Hosting (prorated 2026-01-01 to 2026-01-15)".
func (d *Descriptor) Prorated(line *Item) string {
	return d.printer.Sprintf(msgProratedPeriod, line.Description, line.ProrateStart, line.ProrateEnd)
}

// trimZeros normaliza un monto a string sin ceros fraccionales finales
// (5.0 → "5", 19.50 → "19.5").
func trimZeros(d decimal.Decimal) string {
	s := d.String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}
