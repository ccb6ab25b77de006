package pricing

import "github.com/shopspring/decimal"

// ItemPrice asocia una línea ensamblada con su desglose calculado.
// Todos los montos ya vienen redondeados a la precisión de la moneda.
type ItemPrice struct {
	Line               *Item
	Subtotal           decimal.Decimal // qty × amount, antes de descuentos
	Taxes              []*Item         // impuestos aplicados con TaxAmount calculado
	Discounts          []*Item         // descuentos aplicados con DiscountAmount calculado
	TaxAmount          decimal.Decimal // suma reportada (inclusive incluido, deducciones en negativo)
	DiscountAmount     decimal.Decimal
	Total              decimal.Decimal // subtotal − descuentos + impuesto agregado al precio
	TotalAfterTax      decimal.Decimal // subtotal + impuesto agregado (sin descuentos)
	TotalAfterDiscount decimal.Decimal // subtotal − descuentos (sin impuestos)
}

// ItemPriceCollection es la secuencia ordenada de precios por item de
// un build, más los totales agregados. Se construye una vez por build y
// el presenter la consume en solo-lectura.
type ItemPriceCollection struct {
	prices   []*ItemPrice
	settings Settings
}

// Prices devuelve los precios en orden de presentación (copia del slice).
func (c *ItemPriceCollection) Prices() []*ItemPrice {
	out := make([]*ItemPrice, len(c.prices))
	copy(out, c.prices)
	return out
}

// Settings devuelve la configuración del build que produjo la colección.
func (c *ItemPriceCollection) Settings() Settings { return c.settings }

// Totals agrega los montos de todos los items. Como cada monto por item
// ya está redondeado, la agregación es una suma exacta: los totales
// reconcilian bit a bit contra la suma por item.
type Totals struct {
	Subtotal           decimal.Decimal `json:"subtotal"`
	TaxAmount          decimal.Decimal `json:"tax_amount"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	Total              decimal.Decimal `json:"total"`
	TotalAfterTax      decimal.Decimal `json:"total_after_tax"`
	TotalAfterDiscount decimal.Decimal `json:"total_after_discount"`
}

// Totals calcula los agregados de la colección.
func (c *ItemPriceCollection) Totals() Totals {
	var t Totals
	for _, p := range c.prices {
		t.Subtotal = t.Subtotal.Add(p.Subtotal)
		t.TaxAmount = t.TaxAmount.Add(p.TaxAmount)
		t.DiscountAmount = t.DiscountAmount.Add(p.DiscountAmount)
		t.Total = t.Total.Add(p.Total)
		t.TotalAfterTax = t.TotalAfterTax.Add(p.TotalAfterTax)
		t.TotalAfterDiscount = t.TotalAfterDiscount.Add(p.TotalAfterDiscount)
	}
	return t
}

// Factory calcula los montos finales por item y sintetiza las
// descripciones. Es una función pura de (línea, reglas adjuntas,
// configuración): mismas entradas, salida bit a bit idéntica.
type Factory struct {
	settings   Settings
	descriptor *Descriptor
}

// NewFactory construye la fábrica de precios para un build.
func NewFactory(settings Settings) *Factory {
	return &Factory{settings: settings, descriptor: NewDescriptor(settings)}
}

// Price recorre la colección ensamblada y produce la colección de
// precios. Orden determinista de aplicación por línea:
//
//  1. subtotal = round(qty × amount)
//  2. descuentos (si DiscountBeforeTax, reducen la base gravable)
//  3. impuesto exclusivo sobre la base resultante; inclusivo extraído
//     del precio declarado; nivel 2 en cascada sobre el nivel 1
//
// Una línea con qty=0 o amount=0 produce montos en cero pero queda en
// la colección para que totales y descripciones sean consistentes.
func (f *Factory) Price(assembled *ItemCollection) *ItemPriceCollection {
	out := &ItemPriceCollection{settings: f.settings}
	for _, line := range assembled.Items() {
		out.prices = append(out.prices, f.priceLine(line))
	}
	return out
}

func (f *Factory) priceLine(line *Item) *ItemPrice {
	s := f.settings
	subtotal := s.Round(line.Qty.Mul(line.Amount))

	discounts, discountTotal := ComputeDiscounts(subtotal, line.Discounts, s)

	taxBase := subtotal
	if s.DiscountBeforeTax {
		taxBase = subtotal.Sub(discountTotal)
	}
	taxes, taxReported, taxAdded := ComputeTaxes(taxBase, line.Taxes, s)

	for _, tx := range taxes {
		tx.Description = f.descriptor.Tax(tx)
	}
	for _, d := range discounts {
		d.Description = f.descriptor.Discount(d)
	}

	priced := line.Clone()
	priced.key = line.key // misma identidad que la línea ensamblada
	priced.Taxes = taxes
	priced.Discounts = discounts
	priced.TaxAmount = taxReported
	priced.DiscountAmount = discountTotal
	priced.Total = subtotal.Sub(discountTotal).Add(taxAdded)
	if priced.Prorated {
		priced.Description = f.descriptor.Prorated(priced)
	}

	return &ItemPrice{
		Line:               priced,
		Subtotal:           subtotal,
		Taxes:              taxes,
		Discounts:          discounts,
		TaxAmount:          taxReported,
		DiscountAmount:     discountTotal,
		Total:              priced.Total,
		TotalAfterTax:      subtotal.Add(taxAdded),
		TotalAfterDiscount: subtotal.Sub(discountTotal),
	}
}
