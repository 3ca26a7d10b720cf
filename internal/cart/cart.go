// Package cart holds the per-visitor shopping cart: a transient mapping of
// product id to desired quantity that lives in the visitor's session, never
// in the database.
package cart

import (
	"strconv"
)

const (
	MinQty = 1
	MaxQty = 99
)

// Cart maps product-id-as-string to quantity. Keys are strings because the
// cart round-trips through the session codec.
type Cart map[string]int

func New() Cart {
	return Cart{}
}

func clampQty(qty int) int {
	if qty < MinQty {
		return MinQty
	}
	if qty > MaxQty {
		return MaxQty
	}
	return qty
}

// Add clamps qty to [1,99] and accumulates onto any existing quantity for
// the product. The accumulated total is intentionally not re-capped.
func (c Cart) Add(productID int, qty int) {
	key := strconv.Itoa(productID)
	c[key] += clampQty(qty)
}

// Update applies raw form quantities: an unparsable or non-positive value
// removes the line, anything else is clamped to [1,99] and replaces the
// previous quantity.
func (c Cart) Update(quantities map[string]string) {
	for pid, raw := range quantities {
		qty, err := strconv.Atoi(raw)
		if err != nil || qty <= 0 {
			delete(c, pid)
			continue
		}
		c[pid] = clampQty(qty)
	}
}

func (c Cart) Clear() {
	for key := range c {
		delete(c, key)
	}
}

// Count is the total quantity across all lines, for the header badge.
func (c Cart) Count() int {
	total := 0
	for _, qty := range c {
		total += qty
	}
	return total
}
