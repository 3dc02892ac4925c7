package service

import (
	"fmt"
	"strings"

	"byteme-canteen/canteen-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// Cart is one customer's unconfirmed selection. Lines point at catalog items.
type Cart struct {
	catalog *Catalog
	lines   []domain.CartItem
}

func NewCart(catalog *Catalog) *Cart {
	return &Cart{catalog: catalog}
}

// Add appends a new line for the first available catalog item whose name
// matches ignoring case. Adding the same item twice yields two lines.
func (c *Cart) Add(name string, quantity int) error {
	var known bool
	for _, item := range c.catalog.List() {
		if !strings.EqualFold(item.Name, name) {
			continue
		}
		known = true
		if item.Available {
			c.lines = append(c.lines, domain.CartItem{Item: item, Quantity: quantity})
			return nil
		}
	}
	if !known {
		return fmt.Errorf("%w: %w: %q", domain.ErrItemUnavailable, domain.ErrNotFound, name)
	}
	return fmt.Errorf("%w: %q", domain.ErrItemUnavailable, name)
}

// SetQuantity edits the first matching line. Zero and negative values are kept as given.
func (c *Cart) SetQuantity(name string, quantity int) error {
	i := c.indexOf(name)
	if i < 0 {
		return fmt.Errorf("cart line %q: %w", name, domain.ErrNotFound)
	}
	c.lines[i].Quantity = quantity
	return nil
}

func (c *Cart) Remove(name string) error {
	i := c.indexOf(name)
	if i < 0 {
		return fmt.Errorf("cart line %q: %w", name, domain.ErrNotFound)
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return nil
}

// List returns a copy of the lines in insertion order.
func (c *Cart) List() []domain.CartItem {
	out := make([]domain.CartItem, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) Total() decimal.Decimal {
	return domain.LinesTotal(c.lines)
}

func (c *Cart) restore(lines []domain.CartItem) {
	c.lines = append([]domain.CartItem(nil), lines...)
}

// byName converts lines for external cart stores.
func (c *Cart) byName() []domain.CartLine {
	out := make([]domain.CartLine, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, domain.CartLine{Name: line.Item.Name, Quantity: line.Quantity})
	}
	return out
}

func (c *Cart) indexOf(name string) int {
	for i, line := range c.lines {
		if strings.EqualFold(line.Item.Name, name) {
			return i
		}
	}
	return -1
}
