package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FoodItem is a catalog entry. Carts and orders hold pointers to it, so price
// and availability edits are visible to every line that references the item.
type FoodItem struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Available bool            `json:"available"`
	Reviews   []Review        `json:"reviews"`
}

func NewFoodItem(name string, price decimal.Decimal, category string, available bool) *FoodItem {
	return &FoodItem{
		Name:      name,
		Price:     price,
		Category:  category,
		Available: available,
		Reviews:   []Review{},
	}
}

func (f *FoodItem) String() string {
	availability := "Unavailable"
	if f.Available {
		availability = "Available"
	}
	return fmt.Sprintf("%s - $%s - %s - %s", f.Name, f.Price.StringFixed(2), f.Category, availability)
}

type CartItem struct {
	Item     *FoodItem `json:"item"`
	Quantity int       `json:"quantity"`
}

// TotalPrice is recomputed from the live item on every call.
func (c CartItem) TotalPrice() decimal.Decimal {
	return c.Item.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

func (c CartItem) String() string {
	return fmt.Sprintf("%s - Quantity: %d - Total: $%s", c.Item.Name, c.Quantity, c.TotalPrice().StringFixed(2))
}

// LinesTotal sums the live totals of lines.
func LinesTotal(lines []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.TotalPrice())
	}
	return total
}

type Review struct {
	CustomerName string    `json:"customer_name"`
	Text         string    `json:"text"`
	Rating       int       `json:"rating"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r Review) String() string {
	return fmt.Sprintf("Review by %s on %s: %s (Rating: %d/5)",
		r.CustomerName, r.CreatedAt.Format(time.RFC1123), r.Text, r.Rating)
}

type Refund struct {
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// ParsePaymentMethod accepts the method names and the menu choices 1 and 2.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash", "1":
		return PaymentCash, nil
	case "card", "2":
		return PaymentCard, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, s)
}

type Payment struct {
	Method     PaymentMethod   `json:"method"`
	Amount     decimal.Decimal `json:"amount"`
	CardNumber string          `json:"card_number,omitempty"`
}

// CartLine is the by-name form of a cart line used by external cart stores.
type CartLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type PopularItem struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}
