package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Views are detached copies handed to callers outside the engine lock.

type ItemView struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Available   bool            `json:"available"`
	ReviewCount int             `json:"review_count"`
	Display     string          `json:"display"`
}

type LineView struct {
	Item      string          `json:"item"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

type CartView struct {
	LoginID string          `json:"login_id"`
	Lines   []LineView      `json:"lines"`
	Total   decimal.Decimal `json:"total"`
}

type OrderView struct {
	ID             string          `json:"id"`
	LoginID        string          `json:"login_id"`
	Number         int             `json:"number"`
	Status         Status          `json:"status"`
	SpecialRequest string          `json:"special_request"`
	PaymentMethod  PaymentMethod   `json:"payment_method,omitempty"`
	Lines          []LineView      `json:"lines"`
	Total          decimal.Decimal `json:"total"`
	CreatedAt      time.Time       `json:"created_at"`
	Refunds        []Refund        `json:"refunds"`
}

func NewItemView(f *FoodItem) ItemView {
	return ItemView{
		Name:        f.Name,
		Price:       f.Price,
		Category:    f.Category,
		Available:   f.Available,
		ReviewCount: len(f.Reviews),
		Display:     f.String(),
	}
}

func NewItemViews(items []*FoodItem) []ItemView {
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, NewItemView(item))
	}
	return views
}

func NewLineViews(lines []CartItem) []LineView {
	views := make([]LineView, 0, len(lines))
	for _, line := range lines {
		views = append(views, LineView{
			Item:      line.Item.Name,
			UnitPrice: line.Item.Price,
			Quantity:  line.Quantity,
			Total:     line.TotalPrice(),
		})
	}
	return views
}

// NewOrderView copies o; number is its 1-based position in the owner's history.
func NewOrderView(o *Order, number int) OrderView {
	refunds := make([]Refund, len(o.Refunds))
	copy(refunds, o.Refunds)
	return OrderView{
		ID:             o.ID,
		LoginID:        o.LoginID,
		Number:         number,
		Status:         o.Status,
		SpecialRequest: o.SpecialRequest,
		PaymentMethod:  o.PaymentMethod,
		Lines:          NewLineViews(o.Items),
		Total:          o.Total(),
		CreatedAt:      o.CreatedAt,
		Refunds:        refunds,
	}
}
