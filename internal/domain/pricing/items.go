package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/billing-pro/internal/domain/entity"
)

// InvoiceItems ensambla la colección de líneas de una factura: a cada
// línea le adjunta sus reglas de impuesto aplicables y sus descuentos
// como sub-items (aún sin montos; la fábrica de precios los calcula) y
// transporta los metadatos de prorrateo sin modificarlos.
type InvoiceItems struct {
	settings  Settings
	taxRules  []*Item
	discounts []*Item
	skip      RuleSkipFunc
}

// NewInvoiceItems construye el ensamblador con las reglas y descuentos
// ya formateados.
func NewInvoiceItems(settings Settings, taxRules, discounts []*Item, skip RuleSkipFunc) *InvoiceItems {
	return &InvoiceItems{settings: settings, taxRules: taxRules, discounts: discounts, skip: skip}
}

// Assemble produce una colección nueva donde cada línea lleva adjuntos
// sus impuestos aplicables (filtrados por la jurisdicción del item
// raíz, ordenados por nivel) y sus descuentos. Las líneas con qty=0 o
// amount=0 se conservan. Las líneas con TaxFlag=false no reciben
// impuestos pero sí descuentos.
func (a *InvoiceItems) Assemble(root *Item, lines *ItemCollection) *ItemCollection {
	applicable := ApplicableTaxRules(a.taxRules, root.Country, root.State, a.skip)

	out := NewItemCollection()
	for _, line := range lines.Items() {
		it := line.Clone()
		it.Currency = root.Currency
		if it.TaxFlag {
			it.Taxes = cloneItems(applicable)
		}
		it.Discounts = cloneItems(a.discounts)
		out.Append(it)
	}
	return out
}

// ServiceItems deriva las líneas de un servicio (precio del paquete,
// cargo de instalación y opciones configurables) y las ensambla igual
// que las de una factura.
type ServiceItems struct {
	inner *InvoiceItems
}

// NewServiceItems construye el ensamblador de servicios.
func NewServiceItems(settings Settings, taxRules, discounts []*Item, skip RuleSkipFunc) *ServiceItems {
	return &ServiceItems{inner: NewInvoiceItems(settings, taxRules, discounts, skip)}
}

// Lines deriva la colección de líneas de un servicio persistido: una
// línea base con el precio del paquete (convertido a la moneda del
// build si difiere), una línea de instalación cuando el cargo es mayor
// a cero y una línea por cada opción. El prorrateo del servicio se
// copia a la línea base tal cual.
func (a *ServiceItems) Lines(svc *entity.Service) *ItemCollection {
	s := a.inner.settings
	lines := NewItemCollection()
	if svc == nil {
		return lines
	}

	base := (LineFormatter{}).Format(Record{
		"id":          svc.Pricing.ID,
		"service_id":  svc.ID,
		"description": svc.Package.Name,
		"qty":         decimal.NewFromInt(1),
		"amount":      Normalize(svc.Pricing.Price, svc.Pricing.Currency, s),
		"tax":         svc.Package.TaxFlag,
		"prorated":    svc.Prorated,
	})
	if svc.ProrateStartDate != nil {
		base.ProrateStart = svc.ProrateStartDate.Format("2006-01-02")
	}
	if svc.ProrateEndDate != nil {
		base.ProrateEnd = svc.ProrateEndDate.Format("2006-01-02")
	}
	lines.Append(base)

	if svc.Pricing.SetupFee.IsPositive() {
		// Sin ID de precio el sufijo caería en un "-setup" huérfano que
		// colisiona entre servicios: se deriva del ID del servicio.
		setupID := svc.Pricing.ID
		if setupID == "" {
			setupID = svc.ID
		}
		lines.Append((LineFormatter{}).Format(Record{
			"id":          setupID + "-setup",
			"service_id":  svc.ID,
			"description": svc.Package.Name + " - Setup",
			"qty":         decimal.NewFromInt(1),
			"amount":      Normalize(svc.Pricing.SetupFee, svc.Pricing.Currency, s),
			"tax":         svc.Package.TaxFlag,
		}))
	}

	desc := NewDescriptor(s)
	for i := range svc.Options {
		opt := (OptionFormatter{}).FormatService(&svc.Options[i])
		line := (LineFormatter{}).Format(Record{
			"id":          opt.ID,
			"service_id":  svc.ID,
			"description": desc.Option(opt),
			"qty":         opt.Qty,
			"amount":      opt.Amount,
			"tax":         svc.Package.TaxFlag,
		})
		if opt.Meta != nil && opt.Meta["value"] != "" {
			line.Meta["option_value"] = opt.Meta["value"]
		}
		lines.Append(line)
	}
	return lines
}

// Assemble delega en el ensamblador de facturas: el tratamiento de
// impuestos y descuentos por línea es el mismo.
func (a *ServiceItems) Assemble(root *Item, lines *ItemCollection) *ItemCollection {
	return a.inner.Assemble(root, lines)
}
