// Package pricing (application) expone los builders de presentación:
// casos de uso que orquestan formatter → ensamblador → fábrica →
// presenter para una factura o un servicio, persistidos o ad hoc.
// Cada Build valida la configuración primero y construye estado fresco:
// nada se comparte entre builds concurrentes.
package pricing

import (
	"github.com/tu-usuario/billing-pro/internal/domain/entity"
	core "github.com/tu-usuario/billing-pro/internal/domain/pricing"
)

// builderBase concentra lo común de los cuatro builders: configuración,
// reglas de impuesto, cupones y el hook de reglas omitidas.
type builderBase struct {
	settings core.Settings
	taxRules []entity.TaxRule
	coupons  []entity.Coupon
	skip     core.RuleSkipFunc
}

func (b *builderBase) formatRules() []*core.Item {
	out := make([]*core.Item, 0, len(b.taxRules))
	for i := range b.taxRules {
		out = append(out, (core.TaxFormatter{}).FormatService(&b.taxRules[i]))
	}
	return out
}

func (b *builderBase) formatCoupons() []*core.Item {
	out := make([]*core.Item, 0, len(b.coupons))
	for i := range b.coupons {
		out = append(out, (core.DiscountFormatter{}).FormatService(&b.coupons[i]))
	}
	return out
}

// InvoicePresenterBuilder construye el presenter de una factura
// persistida.
type InvoicePresenterBuilder struct {
	builderBase
}

// NewInvoicePresenterBuilder construye el caso de uso con las reglas y
// cupones suministrados por el llamador (las consultas a persistencia o
// a proveedores de impuestos ocurren afuera).
func NewInvoicePresenterBuilder(settings core.Settings, taxRules []entity.TaxRule, coupons []entity.Coupon) *InvoicePresenterBuilder {
	return &InvoicePresenterBuilder{builderBase{settings: settings, taxRules: taxRules, coupons: coupons}}
}

// WithRuleSkip registra el hook que recibe cada regla omitida por dato
// malformado. Devuelve el builder para encadenar.
func (b *InvoicePresenterBuilder) WithRuleSkip(fn core.RuleSkipFunc) *InvoicePresenterBuilder {
	b.skip = fn
	return b
}

// Build produce el presenter de la factura. Ejecutarlo dos veces con la
// misma entrada produce salida bit a bit idéntica.
func (b *InvoicePresenterBuilder) Build(inv *entity.Invoice) (*core.Presenter, error) {
	if err := b.settings.Validate(); err != nil {
		return nil, err
	}
	root := (core.InvoiceFormatter{}).FormatService(inv)
	lines := core.NewItemCollection()
	if inv != nil {
		for i := range inv.Lines {
			lines.Append((core.LineFormatter{}).FormatService(&inv.Lines[i]))
		}
	}
	return b.present(root, lines), nil
}

func (b *builderBase) present(root *core.Item, lines *core.ItemCollection) *core.Presenter {
	assembler := core.NewInvoiceItems(b.settings, b.formatRules(), b.formatCoupons(), b.skip)
	assembled := assembler.Assemble(root, lines)
	priced := core.NewFactory(b.settings).Price(assembled)
	return core.NewPresenter(priced)
}

// InvoiceDataPresenterBuilder construye el presenter desde datos ad hoc
// (registros asociativos que todavía no existen como entidad).
type InvoiceDataPresenterBuilder struct {
	builderBase
}

// NewInvoiceDataPresenterBuilder construye la variante de datos ad hoc.
func NewInvoiceDataPresenterBuilder(settings core.Settings, taxRules []entity.TaxRule, coupons []entity.Coupon) *InvoiceDataPresenterBuilder {
	return &InvoiceDataPresenterBuilder{builderBase{settings: settings, taxRules: taxRules, coupons: coupons}}
}

// WithRuleSkip registra el hook de reglas omitidas.
func (b *InvoiceDataPresenterBuilder) WithRuleSkip(fn core.RuleSkipFunc) *InvoiceDataPresenterBuilder {
	b.skip = fn
	return b
}

// Build produce el presenter desde el registro de factura y sus líneas.
// Los campos ausentes se resuelven al valor cero (contrato de los
// formatters); la configuración inválida sí aborta.
func (b *InvoiceDataPresenterBuilder) Build(invoice core.Record, lineRecords []core.Record) (*core.Presenter, error) {
	if err := b.settings.Validate(); err != nil {
		return nil, err
	}
	root := (core.InvoiceFormatter{}).Format(invoice)
	lines := core.NewItemCollection()
	for _, rec := range lineRecords {
		lines.Append((core.LineFormatter{}).Format(rec))
	}
	return b.present(root, lines), nil
}

// ServicePresenterBuilder construye el presenter de un servicio
// persistido: deriva las líneas del paquete, instalación y opciones.
type ServicePresenterBuilder struct {
	builderBase
}

// NewServicePresenterBuilder construye el caso de uso de servicio.
func NewServicePresenterBuilder(settings core.Settings, taxRules []entity.TaxRule, coupons []entity.Coupon) *ServicePresenterBuilder {
	return &ServicePresenterBuilder{builderBase{settings: settings, taxRules: taxRules, coupons: coupons}}
}

// WithRuleSkip registra el hook de reglas omitidas.
func (b *ServicePresenterBuilder) WithRuleSkip(fn core.RuleSkipFunc) *ServicePresenterBuilder {
	b.skip = fn
	return b
}

// Build produce el presenter del servicio.
func (b *ServicePresenterBuilder) Build(svc *entity.Service) (*core.Presenter, error) {
	if err := b.settings.Validate(); err != nil {
		return nil, err
	}
	root := (core.ServiceFormatter{}).FormatService(svc)
	assembler := core.NewServiceItems(b.settings, b.formatRules(), b.formatCoupons(), b.skip)
	lines := assembler.Lines(svc)
	assembled := assembler.Assemble(root, lines)
	priced := core.NewFactory(b.settings).Price(assembled)
	return core.NewPresenter(priced), nil
}

// ServiceDataPresenterBuilder construye el presenter desde datos ad hoc
// de servicio (registro de servicio + registros de línea ya derivados).
type ServiceDataPresenterBuilder struct {
	builderBase
}

// NewServiceDataPresenterBuilder construye la variante de datos ad hoc.
func NewServiceDataPresenterBuilder(settings core.Settings, taxRules []entity.TaxRule, coupons []entity.Coupon) *ServiceDataPresenterBuilder {
	return &ServiceDataPresenterBuilder{builderBase{settings: settings, taxRules: taxRules, coupons: coupons}}
}

// WithRuleSkip registra el hook de reglas omitidas.
func (b *ServiceDataPresenterBuilder) WithRuleSkip(fn core.RuleSkipFunc) *ServiceDataPresenterBuilder {
	b.skip = fn
	return b
}

// Build produce el presenter desde el registro de servicio y sus líneas.
func (b *ServiceDataPresenterBuilder) Build(service core.Record, lineRecords []core.Record) (*core.Presenter, error) {
	if err := b.settings.Validate(); err != nil {
		return nil, err
	}
	root := (core.ServiceFormatter{}).Format(service)
	lines := core.NewItemCollection()
	for _, rec := range lineRecords {
		lines.Append((core.LineFormatter{}).Format(rec))
	}
	return b.present(root, lines), nil
}
