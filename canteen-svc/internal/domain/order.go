package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending        Status = "Pending"
	StatusPreparing      Status = "Preparing"
	StatusOutForDelivery Status = "Out for Delivery"
	StatusCompleted      Status = "Completed"
	StatusCanceled       Status = "Canceled"
)

// Statuses lists every status in lifecycle order. Any status may follow any other.
var Statuses = []Status{StatusPending, StatusPreparing, StatusOutForDelivery, StatusCompleted, StatusCanceled}

// ParseStatus matches s against the known statuses ignoring case and surrounding space.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, status := range Statuses {
		if strings.EqualFold(string(status), s) {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

type Order struct {
	ID             string        `json:"id"`
	LoginID        string        `json:"login_id"`
	Items          []CartItem    `json:"items"`
	Status         Status        `json:"status"`
	SpecialRequest string        `json:"special_request"`
	PaymentMethod  PaymentMethod `json:"payment_method,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	Refunds        []Refund      `json:"refunds,omitempty"`
}

// Total follows the referenced items, so a later price edit changes it.
func (o *Order) Total() decimal.Decimal {
	return LinesTotal(o.Items)
}

// Cancellable reports whether the order may still be refunded.
func (o *Order) Cancellable() bool {
	return o.Status != StatusCompleted
}

func (o *Order) String() string {
	lines := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, item.String())
	}
	return fmt.Sprintf("Order{items=[%s], status='%s', specialRequest='%s'}",
		strings.Join(lines, ", "), o.Status, o.SpecialRequest)
}

// FormatHistory renders the numbered history listing written to transcripts.
func FormatHistory(orders []*Order) string {
	if len(orders) == 0 {
		return "No order history found."
	}
	var b strings.Builder
	b.WriteString("Your Order History:\n")
	for i, o := range orders {
		fmt.Fprintf(&b, "Order #%d: %s\n", i+1, o)
	}
	return b.String()
}

// State is the whole engine state exchanged with the persistence gateway.
type State struct {
	Catalog   []*FoodItem
	Accounts  map[string]string
	Histories map[string][]*Order
	Carts     map[string][]CartItem
}
