package service

import (
	"context"
	"fmt"

	"byteme-canteen/canteen-svc/internal/domain"

	"go.uber.org/zap"
)

func (e *Engine) Cart(ctx context.Context, loginID string) domain.CartView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cartView(loginID, e.cartFor(ctx, loginID))
}

func (e *Engine) AddToCart(ctx context.Context, loginID, name string, quantity int) (domain.CartView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	cart := e.cartFor(ctx, loginID)
	if err := cart.Add(name, quantity); err != nil {
		return domain.CartView{}, err
	}
	e.saveCart(ctx, loginID, cart)
	return cartView(loginID, cart), nil
}

func (e *Engine) UpdateCartItem(ctx context.Context, loginID, name string, quantity int) (domain.CartView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	cart := e.cartFor(ctx, loginID)
	if err := cart.SetQuantity(name, quantity); err != nil {
		return domain.CartView{}, err
	}
	e.saveCart(ctx, loginID, cart)
	return cartView(loginID, cart), nil
}

func (e *Engine) RemoveFromCart(ctx context.Context, loginID, name string) (domain.CartView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	cart := e.cartFor(ctx, loginID)
	if err := cart.Remove(name); err != nil {
		return domain.CartView{}, err
	}
	e.saveCart(ctx, loginID, cart)
	return cartView(loginID, cart), nil
}

func (e *Engine) ClearCart(ctx context.Context, loginID string) domain.CartView {
	e.mu.Lock()
	defer e.mu.Unlock()
	cart := e.cartFor(ctx, loginID)
	cart.Clear()
	e.saveCart(ctx, loginID, cart)
	return cartView(loginID, cart)
}

// Checkout turns the cart into a Pending order when the tendered amount equals
// the live cart total exactly. On any rejection the cart is left untouched.
// A transcript failure is reported after the order has been recorded.
func (e *Engine) Checkout(ctx context.Context, loginID, address string, payment domain.Payment) (domain.OrderView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cart := e.cartFor(ctx, loginID)
	if cart.Len() == 0 {
		return domain.OrderView{}, domain.ErrEmptyCart
	}
	switch payment.Method {
	case domain.PaymentCash, domain.PaymentCard:
	default:
		return domain.OrderView{}, fmt.Errorf("%w: %q", domain.ErrInvalidPaymentMethod, payment.Method)
	}

	total := cart.Total()
	if !payment.Amount.Equal(total) {
		e.log.Info("payment rejected", zap.String("login_id", loginID),
			zap.String("tendered", payment.Amount.StringFixed(2)), zap.String("total", total.StringFixed(2)))
		return domain.OrderView{}, fmt.Errorf("%w: tendered $%s, total $%s",
			domain.ErrPaymentMismatch, payment.Amount.StringFixed(2), total.StringFixed(2))
	}

	order := e.ledger.PlaceOrder(loginID, cart.List(), address)
	order.PaymentMethod = payment.Method
	cart.Clear()
	e.saveCart(ctx, loginID, cart)

	return e.afterPlacement(ctx, order)
}

// cartFor returns the in-memory cart, loading it from the cart store the
// first time a customer is seen. Stored lines whose item left the catalog are dropped.
func (e *Engine) cartFor(ctx context.Context, loginID string) *Cart {
	if cart, ok := e.carts[loginID]; ok {
		return cart
	}
	cart := NewCart(e.catalog)
	e.carts[loginID] = cart
	if e.deps.Carts == nil {
		return cart
	}

	lines, err := e.deps.Carts.LoadCart(ctx, loginID)
	if err != nil {
		e.log.Warn("cart not loaded", zap.String("login_id", loginID), zap.Error(err))
		return cart
	}
	items := make([]domain.CartItem, 0, len(lines))
	for _, line := range lines {
		item, ok := e.catalog.Get(line.Name)
		if !ok {
			e.log.Info("dropping stored cart line", zap.String("login_id", loginID), zap.String("item", line.Name))
			continue
		}
		items = append(items, domain.CartItem{Item: item, Quantity: line.Quantity})
	}
	cart.restore(items)
	return cart
}

func (e *Engine) saveCart(ctx context.Context, loginID string, cart *Cart) {
	if e.deps.Carts == nil {
		return
	}
	if err := e.deps.Carts.SaveCart(ctx, loginID, cart.byName()); err != nil {
		e.log.Warn("cart not stored", zap.String("login_id", loginID), zap.Error(err))
	}
}

func cartView(loginID string, cart *Cart) domain.CartView {
	lines := cart.List()
	return domain.CartView{
		LoginID: loginID,
		Lines:   domain.NewLineViews(lines),
		Total:   domain.LinesTotal(lines),
	}
}
