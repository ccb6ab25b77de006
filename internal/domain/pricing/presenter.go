package pricing

import "github.com/shopspring/decimal"

// PresenterItem es la vista de una línea calculada.
type PresenterItem struct {
	Key            string          `json:"key"`
	ServiceID      string          `json:"service_id,omitempty"`
	Description    string          `json:"description"`
	Qty            decimal.Decimal `json:"qty"`
	UnitAmount     decimal.Decimal `json:"unit_amount"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
	Prorated       bool            `json:"prorated,omitempty"`
}

// TaxSummary es una fila del resumen de impuestos: varias líneas
// gravadas por la misma regla colapsan en una sola fila con el total
// sumado.
type TaxSummary struct {
	Name        string          `json:"name"`
	Rate        decimal.Decimal `json:"rate"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Total       decimal.Decimal `json:"total"`
}

// DiscountSummary es una fila del resumen de descuentos, agrupada por
// código y tipo.
type DiscountSummary struct {
	Code        string          `json:"code,omitempty"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Total       decimal.Decimal `json:"total"`
}

// Presenter es la vista de solo-lectura sobre una colección de precios
// terminada. No guarda estado propio más allá de la referencia a la
// colección: cada accessor recalcula sobre ella y devuelve slices
// nuevos, así que llamadas repetidas son idempotentes y sin mutación.
type Presenter struct {
	collection *ItemPriceCollection
}

// NewPresenter construye el presenter. Construir dos presenters de la
// misma colección es idempotente y sin efectos.
func NewPresenter(c *ItemPriceCollection) *Presenter {
	return &Presenter{collection: c}
}

// Items devuelve las líneas calculadas en orden de presentación.
func (p *Presenter) Items() []PresenterItem {
	prices := p.collection.Prices()
	out := make([]PresenterItem, 0, len(prices))
	for _, pr := range prices {
		serviceID := ""
		if pr.Line.Meta != nil {
			serviceID = pr.Line.Meta["service_id"]
		}
		out = append(out, PresenterItem{
			Key:            pr.Line.Key(),
			ServiceID:      serviceID,
			Description:    pr.Line.Description,
			Qty:            pr.Line.Qty,
			UnitAmount:     pr.Line.Amount,
			Subtotal:       pr.Subtotal,
			TaxAmount:      pr.TaxAmount,
			DiscountAmount: pr.DiscountAmount,
			Total:          pr.Total,
			Prorated:       pr.Line.Prorated,
		})
	}
	return out
}

// Taxes devuelve el resumen de impuestos: agrupa por identidad de regla
// (nombre + porcentaje + tipo) y suma los aportes de cada línea. El
// orden es el de primera aparición.
func (p *Presenter) Taxes() []TaxSummary {
	type ruleKey struct {
		name string
		rate string
		typ  string
	}
	index := make(map[ruleKey]int)
	var out []TaxSummary

	for _, pr := range p.collection.Prices() {
		for _, tax := range pr.Taxes {
			k := ruleKey{name: tax.Name, rate: tax.Amount.String(), typ: tax.TaxType}
			if i, ok := index[k]; ok {
				out[i].Total = out[i].Total.Add(tax.TaxAmount)
				continue
			}
			index[k] = len(out)
			out = append(out, TaxSummary{
				Name:        tax.Name,
				Rate:        tax.Amount,
				Type:        tax.TaxType,
				Description: tax.Description,
				Total:       tax.TaxAmount,
			})
		}
	}
	return out
}

// Discounts devuelve el resumen de descuentos agrupado por código y
// tipo, con el total sumado, en orden de primera aparición.
func (p *Presenter) Discounts() []DiscountSummary {
	type discKey struct {
		code string
		typ  string
	}
	index := make(map[discKey]int)
	var out []DiscountSummary

	for _, pr := range p.collection.Prices() {
		for _, d := range pr.Discounts {
			k := discKey{code: d.Name, typ: d.DiscountType}
			if i, ok := index[k]; ok {
				out[i].Total = out[i].Total.Add(d.DiscountAmount)
				continue
			}
			index[k] = len(out)
			out = append(out, DiscountSummary{
				Code:        d.Name,
				Type:        d.DiscountType,
				Amount:      d.Amount,
				Description: d.Description,
				Total:       d.DiscountAmount,
			})
		}
	}
	return out
}

// Totals devuelve los agregados del build.
func (p *Presenter) Totals() Totals {
	return p.collection.Totals()
}
