package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderPlaced        = "order_placed"
	EventOrderStatusChanged = "order_status_changed"
	EventOrderCanceled      = "order_canceled"
	EventOrderRefunded      = "order_refunded"
	EventReviewAdded        = "review_added"
)

type EventLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type OrderEvent struct {
	Type      string          `json:"type"`
	OrderID   string          `json:"order_id,omitempty"`
	LoginID   string          `json:"login_id,omitempty"`
	Status    Status          `json:"status,omitempty"`
	Items     []EventLine     `json:"items,omitempty"`
	Total     decimal.Decimal `json:"total"`
	Rating    int             `json:"rating,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

func NewOrderEvent(eventType string, o *Order, at time.Time) OrderEvent {
	lines := make([]EventLine, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, EventLine{Name: item.Item.Name, Quantity: item.Quantity})
	}
	return OrderEvent{
		Type:      eventType,
		OrderID:   o.ID,
		LoginID:   o.LoginID,
		Status:    o.Status,
		Items:     lines,
		Total:     o.Total(),
		Timestamp: at,
	}
}
