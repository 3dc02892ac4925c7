package service

import (
	"fmt"
	"sort"
	"strings"

	"byteme-canteen/canteen-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// Catalog owns the menu. Listings are always alphabetical by name.
type Catalog struct {
	items map[string]*domain.FoodItem
}

func NewCatalog() *Catalog {
	return &Catalog{items: make(map[string]*domain.FoodItem)}
}

// AddItem stores a fresh item under name, replacing any previous entry.
// Carts and orders that referenced the replaced item keep the old one.
func (c *Catalog) AddItem(name string, price decimal.Decimal, category string, available bool) *domain.FoodItem {
	item := domain.NewFoodItem(name, price, category, available)
	c.items[name] = item
	return item
}

func (c *Catalog) Put(item *domain.FoodItem) {
	c.items[item.Name] = item
}

// Get prefers an exact name match and falls back to the first
// case-insensitive match in alphabetical order.
func (c *Catalog) Get(name string) (*domain.FoodItem, bool) {
	if item, ok := c.items[name]; ok {
		return item, true
	}
	for _, item := range c.List() {
		if strings.EqualFold(item.Name, name) {
			return item, true
		}
	}
	return nil, false
}

func (c *Catalog) Remove(name string) bool {
	item, ok := c.Get(name)
	if !ok {
		return false
	}
	delete(c.items, item.Name)
	return true
}

// Update edits the live item, so every cart line and order pointing at it sees the change.
func (c *Catalog) Update(name string, price *decimal.Decimal, available *bool) (*domain.FoodItem, error) {
	item, ok := c.Get(name)
	if !ok {
		return nil, fmt.Errorf("menu item %q: %w", name, domain.ErrNotFound)
	}
	if price != nil {
		item.Price = *price
	}
	if available != nil {
		item.Available = *available
	}
	return item, nil
}

// Contains reports whether item itself (not just its name) is listed.
func (c *Catalog) Contains(item *domain.FoodItem) bool {
	listed, ok := c.items[item.Name]
	return ok && listed == item
}

func (c *Catalog) List() []*domain.FoodItem {
	names := make([]string, 0, len(c.items))
	for name := range c.items {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]*domain.FoodItem, 0, len(names))
	for _, name := range names {
		items = append(items, c.items[name])
	}
	return items
}

func (c *Catalog) Search(keyword string) []*domain.FoodItem {
	keyword = strings.ToLower(keyword)
	var found []*domain.FoodItem
	for _, item := range c.List() {
		if strings.Contains(strings.ToLower(item.Name), keyword) {
			found = append(found, item)
		}
	}
	return found
}

func (c *Catalog) FilterByCategory(category string) []*domain.FoodItem {
	var found []*domain.FoodItem
	for _, item := range c.List() {
		if strings.EqualFold(item.Category, category) {
			found = append(found, item)
		}
	}
	return found
}

// SortByPrice is stable, so equal prices keep alphabetical order in both directions.
func (c *Catalog) SortByPrice(ascending bool) []*domain.FoodItem {
	items := c.List()
	sort.SliceStable(items, func(i, j int) bool {
		if ascending {
			return items[i].Price.LessThan(items[j].Price)
		}
		return items[i].Price.GreaterThan(items[j].Price)
	})
	return items
}

// SeedCatalog is the menu a fresh engine starts with.
func SeedCatalog() *Catalog {
	c := NewCatalog()
	c.AddItem("Burger", decimal.RequireFromString("5.00"), "Snacks", true)
	c.AddItem("Fries", decimal.RequireFromString("2.50"), "Snacks", true)
	c.AddItem("Soda", decimal.RequireFromString("1.50"), "Beverages", true)
	c.AddItem("Pizza", decimal.RequireFromString("8.00"), "Meals", false)
	c.AddItem("Coffee", decimal.RequireFromString("3.00"), "Beverages", true)
	return c
}
