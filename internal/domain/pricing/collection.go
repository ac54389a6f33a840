package pricing

import "github.com/jhoicas/billing-core/internal/domain"

// ItemPriceCollection colección ordenada de ítems con clave única.
type ItemPriceCollection struct {
	items []*ItemPrice
	index map[string]int
}

// NewItemPriceCollection crea una colección vacía.
func NewItemPriceCollection() *ItemPriceCollection {
	return &ItemPriceCollection{index: make(map[string]int)}
}

// Append agrega un ítem. Una clave repetida es un error de validación.
func (c *ItemPriceCollection) Append(item *ItemPrice) error {
	if item.Key() == "" {
		return domain.NewValidationError("key", "clave de ítem vacía")
	}
	if _, ok := c.index[item.Key()]; ok {
		return domain.NewValidationError("key", "clave de ítem duplicada: "+item.Key())
	}
	c.index[item.Key()] = len(c.items)
	c.items = append(c.items, item)
	return nil
}

// Get busca un ítem por clave.
func (c *ItemPriceCollection) Get(key string) (*ItemPrice, bool) {
	n, ok := c.index[key]
	if !ok {
		return nil, false
	}
	return c.items[n], true
}

// Items devuelve los ítems en orden de inserción.
func (c *ItemPriceCollection) Items() []*ItemPrice {
	return append([]*ItemPrice(nil), c.items...)
}

// Len número de ítems.
func (c *ItemPriceCollection) Len() int { return len(c.items) }
