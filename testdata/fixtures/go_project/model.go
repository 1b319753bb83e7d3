package inventory

// Item is a stocked product.
type Item struct {
	SKU      string
	Name     string
	Quantity int
}

// Store is the interface for item storage.
type Store interface {
	Get(sku string) (*Item, error)
	Put(item *Item) error
}

const lowStockLimit = 5

func newItem(sku, name string) *Item {
	return &Item{SKU: sku, Name: name}
}
