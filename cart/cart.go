// Package cart accumulates line items for a new or edited order before it
// is submitted. A cart lives only between "start order" and "submit" or
// "cancel"; it is never persisted.
package cart

import (
	"edrina-resto/apperrors"
	"edrina-resto/lifecycle"
	"edrina-resto/models"
)

const DefaultTable = models.MinTableNumber

type Cart struct {
	table int
	lines []models.OrderItem
}

func New() *Cart {
	return &Cart{table: DefaultTable}
}

// Add merges a menu item into the cart: an existing line for the same item
// gains one unit, otherwise a new line starts at quantity 1 with the
// item's current name and price captured.
func (c *Cart) Add(item models.MenuItem) {
	for i := range c.lines {
		if c.lines[i].Menu_item_id == item.Menu_id {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, models.OrderItem{
		Menu_item_id:   item.Menu_id,
		Menu_item_name: item.Name,
		Quantity:       1,
		Price:          item.Price,
	})
}

// Remove deletes the line for the given menu item. Removing an absent item
// is a no-op.
func (c *Cart) Remove(menuItemID string) {
	for i := range c.lines {
		if c.lines[i].Menu_item_id == menuItemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity overwrites the quantity for a line. Zero removes the line;
// negative quantities are rejected.
func (c *Cart) SetQuantity(menuItemID string, quantity int) error {
	if quantity < 0 {
		return apperrors.Validationf("quantity cannot be negative")
	}
	if quantity == 0 {
		c.Remove(menuItemID)
		return nil
	}
	for i := range c.lines {
		if c.lines[i].Menu_item_id == menuItemID {
			c.lines[i].Quantity = quantity
			return nil
		}
	}
	return nil
}

func (c *Cart) Total() float64 {
	return lifecycle.Total(c.lines)
}

// Clear empties the cart and resets the target table.
func (c *Cart) Clear() {
	c.lines = nil
	c.table = DefaultTable
}

// Load seeds the cart from an existing order, for the edit flow.
func (c *Cart) Load(order models.Order) {
	c.table = order.Table_number
	c.lines = append([]models.OrderItem(nil), order.Items...)
}

// Lines returns a copy; callers cannot mutate the cart through it.
func (c *Cart) Lines() []models.OrderItem {
	return append([]models.OrderItem(nil), c.lines...)
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Table() int {
	return c.table
}

func (c *Cart) SetTable(n int) error {
	if n < models.MinTableNumber || n > models.MaxTableNumber {
		return apperrors.Validationf("table number must be between %d and %d",
			models.MinTableNumber, models.MaxTableNumber)
	}
	c.table = n
	return nil
}
