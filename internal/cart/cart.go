package cart

import (
	"sort"

	"tableserve/internal/domain"
)

// Line is one menu item and its selected quantity. The item is a
// snapshot taken at first add; later menu price edits do not reach an
// open cart.
type Line struct {
	Item     domain.MenuItem `json:"item"`
	Quantity int             `json:"quantity"`
}

type Totals struct {
	TotalItems int   `json:"totalItems"`
	TotalCents int64 `json:"totalCents"`
}

// Cart aggregates lines keyed by menu item id. A present line always
// has quantity >= 1; absence means zero. Cart does no I/O and keeps no
// derived state: totals are recomputed from the line map on every read.
type Cart struct {
	lines map[string]*Line
}

func New() *Cart {
	return &Cart{lines: make(map[string]*Line)}
}

// Add inserts the item with quantity 1, or increments the existing
// line. It never fails and enforces no upper bound.
func (c *Cart) Add(item domain.MenuItem) {
	if line, ok := c.lines[item.ID]; ok {
		line.Quantity++
		return
	}
	c.lines[item.ID] = &Line{Item: item, Quantity: 1}
}

// Remove decrements the line for itemID, deleting it when the quantity
// would drop below 1. Removing an absent id is a no-op.
func (c *Cart) Remove(itemID string) {
	line, ok := c.lines[itemID]
	if !ok {
		return
	}
	if line.Quantity > 1 {
		line.Quantity--
		return
	}
	delete(c.lines, itemID)
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.lines = make(map[string]*Line)
}

// Totals sums quantity and price*quantity over the current lines.
func (c *Cart) Totals() Totals {
	var t Totals
	for _, line := range c.lines {
		t.TotalItems += line.Quantity
		t.TotalCents += line.Item.PriceCents * int64(line.Quantity)
	}
	return t
}

// Lines returns a copy of the current lines, ordered by item name for
// stable output.
func (c *Cart) Lines() []Line {
	result := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		result = append(result, *line)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Item.Name == result[j].Item.Name {
			return result[i].Item.ID < result[j].Item.ID
		}
		return result[i].Item.Name < result[j].Item.Name
	})
	return result
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}
