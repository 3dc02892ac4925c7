package service

import (
	"fmt"
	"sort"
	"time"

	"byteme-canteen/canteen-svc/internal/domain"

	"github.com/google/uuid"
)

// Ledger holds every customer's orders in placement order. An order's number
// is its 1-based position in the owner's history.
type Ledger struct {
	histories map[string][]*domain.Order
	now       func() time.Time
	newID     func() string
}

func NewLedger(now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{
		histories: make(map[string][]*domain.Order),
		now:       now,
		newID:     uuid.NewString,
	}
}

// PlaceOrder records a Pending order holding a copy of lines. Items stay
// shared with the catalog; the caller's cart is left alone.
func (l *Ledger) PlaceOrder(loginID string, lines []domain.CartItem, specialRequest string) *domain.Order {
	items := make([]domain.CartItem, len(lines))
	copy(items, lines)

	order := &domain.Order{
		ID:             l.newID(),
		LoginID:        loginID,
		Items:          items,
		Status:         domain.StatusPending,
		SpecialRequest: specialRequest,
		CreatedAt:      l.now(),
	}
	l.histories[loginID] = append(l.histories[loginID], order)
	return order
}

func (l *Ledger) History(loginID string) []*domain.Order {
	history := l.histories[loginID]
	out := make([]*domain.Order, len(history))
	copy(out, history)
	return out
}

func (l *Ledger) Order(loginID string, number int) (*domain.Order, error) {
	history := l.histories[loginID]
	if number < 1 || number > len(history) {
		return nil, fmt.Errorf("%w: %d (history has %d orders)", domain.ErrInvalidOrderNumber, number, len(history))
	}
	return history[number-1], nil
}

// Number returns the position of o in its owner's history, or 0.
func (l *Ledger) Number(o *domain.Order) int {
	for i, candidate := range l.histories[o.LoginID] {
		if candidate == o {
			return i + 1
		}
	}
	return 0
}

func (l *Ledger) FindByID(id string) (*domain.Order, error) {
	for _, o := range l.AllOrders() {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, fmt.Errorf("order %q: %w", id, domain.ErrNotFound)
}

// Cancel overwrites any status, Completed included.
func (l *Ledger) Cancel(o *domain.Order) {
	o.Status = domain.StatusCanceled
}

// SetStatus allows every transition; there is no terminal status.
func (l *Ledger) SetStatus(o *domain.Order, status domain.Status) {
	o.Status = status
}

// Customers returns login ids with at least one order, ascending.
func (l *Ledger) Customers() []string {
	ids := make([]string, 0, len(l.histories))
	for id, history := range l.histories {
		if len(history) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// AllOrders walks customers in ascending login id order, each chronologically.
func (l *Ledger) AllOrders() []*domain.Order {
	var out []*domain.Order
	for _, id := range l.Customers() {
		out = append(out, l.histories[id]...)
	}
	return out
}

func (l *Ledger) PendingOrders() []*domain.Order {
	var out []*domain.Order
	for _, o := range l.AllOrders() {
		if o.Status == domain.StatusPending {
			out = append(out, o)
		}
	}
	return out
}

// Reorder places a new order with the lines and special request of order
// number. The source order is not touched.
func (l *Ledger) Reorder(loginID string, number int) (*domain.Order, error) {
	source, err := l.Order(loginID, number)
	if err != nil {
		return nil, err
	}
	return l.PlaceOrder(loginID, source.Items, source.SpecialRequest), nil
}

// Refund records reason on a cancellable order. Status is left as is.
func (l *Ledger) Refund(o *domain.Order, reason string) (domain.Refund, error) {
	if !o.Cancellable() {
		return domain.Refund{}, fmt.Errorf("%w: order is %s", domain.ErrNotRefundable, o.Status)
	}
	refund := domain.Refund{Reason: reason, CreatedAt: l.now()}
	o.Refunds = append(o.Refunds, refund)
	return refund, nil
}

func (l *Ledger) Histories() map[string][]*domain.Order {
	out := make(map[string][]*domain.Order, len(l.histories))
	for id := range l.histories {
		out[id] = l.History(id)
	}
	return out
}

func (l *Ledger) restore(histories map[string][]*domain.Order) {
	l.histories = make(map[string][]*domain.Order, len(histories))
	for id, history := range histories {
		l.histories[id] = append([]*domain.Order(nil), history...)
	}
}
