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

// OrderEvent mirrors the events published by canteen-svc.
type OrderEvent struct {
	Type      string          `json:"type"`
	OrderID   string          `json:"order_id,omitempty"`
	LoginID   string          `json:"login_id,omitempty"`
	Status    string          `json:"status,omitempty"`
	Items     []EventLine     `json:"items,omitempty"`
	Total     decimal.Decimal `json:"total"`
	Rating    int             `json:"rating,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}
