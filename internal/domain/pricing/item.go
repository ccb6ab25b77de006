package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind discrimina el tipo de un Item normalizado.
type Kind string

// Tipos de item producidos por los formatters.
const (
	KindInvoice  Kind = "invoice"
	KindLine     Kind = "line"
	KindTax      Kind = "tax"
	KindDiscount Kind = "discount"
	KindOption   Kind = "option"
	KindPackage  Kind = "package"
	KindPricing  Kind = "pricing"
	KindService  Kind = "service"
	KindSettings Kind = "settings"
)

// Item es el registro normalizado de campos con nombre que fluye por el
// pipeline. El conjunto de campos es fijo y tipado; Meta transporta
// metadatos extra no tipados (ej: fechas de prorrateo de origen).
// Un Item pertenece a una sola colección a la vez; la clave se asigna
// al insertarlo y es estable y única dentro de esa colección.
type Item struct {
	key string

	Kind        Kind
	ID          string
	Name        string // nombre de regla, código de cupón o nombre de opción
	Description string
	Currency    string
	Qty         decimal.Decimal
	Amount      decimal.Decimal

	// Campos de impuesto
	Level    int
	TaxType  string // entity.TaxTypeExclusive | entity.TaxTypeInclusive
	Country  string
	State    string
	Status   string
	Cascade  bool
	Subtract bool

	// Campos de descuento
	DiscountType string // entity.DiscountTypePercent | entity.DiscountTypeAmount

	// Prorrateo (se transporta tal cual desde el origen)
	Prorated     bool
	ProrateStart string // YYYY-MM-DD, vacío si no aplica
	ProrateEnd   string

	TaxFlag bool

	// Sub-items calculados por el ensamblador / fábrica
	Taxes     []*Item
	Discounts []*Item

	// Montos calculados por la fábrica de precios
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal

	Meta map[string]string
}

// Key devuelve la identidad del item dentro de su colección; vacía si
// el item aún no fue insertado en ninguna.
func (it *Item) Key() string { return it.key }

// Clone devuelve una copia profunda del item sin clave (lista para
// insertarse en otra colección). Los items nunca se comparten entre
// colecciones ni entre builds.
func (it *Item) Clone() *Item {
	cp := *it
	cp.key = ""
	if it.Meta != nil {
		cp.Meta = make(map[string]string, len(it.Meta))
		for k, v := range it.Meta {
			cp.Meta[k] = v
		}
	}
	cp.Taxes = cloneItems(it.Taxes)
	cp.Discounts = cloneItems(it.Discounts)
	return &cp
}

func cloneItems(items []*Item) []*Item {
	if items == nil {
		return nil
	}
	out := make([]*Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// ItemCollection es una secuencia ordenada e iterable de Items. El
// orden de inserción es significativo: define el orden de presentación
// y el desempate en asignaciones proporcionales.
type ItemCollection struct {
	items []*Item
	seq   int
}

// NewItemCollection crea una colección vacía. Cada build construye las
// suyas; nunca se reutilizan entre builds concurrentes.
func NewItemCollection() *ItemCollection {
	return &ItemCollection{}
}

// Append inserta el item al final y le asigna su clave estable dentro
// de la colección. Devuelve el mismo item para encadenar.
func (c *ItemCollection) Append(it *Item) *Item {
	c.seq++
	it.key = fmt.Sprintf("item-%04d", c.seq)
	c.items = append(c.items, it)
	return it
}

// Items devuelve los items en orden de inserción. El slice es una copia
// superficial: reordenarlo no afecta a la colección.
func (c *ItemCollection) Items() []*Item {
	out := make([]*Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len devuelve la cantidad de items.
func (c *ItemCollection) Len() int { return len(c.items) }
