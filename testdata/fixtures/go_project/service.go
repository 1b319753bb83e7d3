package inventory

import "fmt"

// Tracker watches stock levels across a store.
type Tracker struct {
	store Store
}

// NewTracker creates a Tracker over the given store.
func NewTracker(store Store) *Tracker {
	return &Tracker{store: store}
}

// Restock raises the quantity of an item, creating it if missing.
func (t *Tracker) Restock(sku, name string, amount int) (*Item, error) {
	item, err := t.store.Get(sku)
	if err != nil {
		item = newItem(sku, name)
	}
	item.Quantity += amount
	if err := t.store.Put(item); err != nil {
		return nil, fmt.Errorf("restock %s: %w", sku, err)
	}
	return item, nil
}

// IsLow reports whether an item has dropped below the low-stock limit.
func (t *Tracker) IsLow(sku string) (bool, error) {
	item, err := t.store.Get(sku)
	if err != nil {
		return false, fmt.Errorf("check %s: %w", sku, err)
	}
	return item.Quantity < lowStockLimit, nil
}
