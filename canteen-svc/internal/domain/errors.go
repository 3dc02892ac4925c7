package domain

import "errors"

var (
	ErrItemUnavailable      = errors.New("item not available")
	ErrNotFound             = errors.New("not found")
	ErrInvalidOrderNumber   = errors.New("invalid order number")
	ErrInvalidCredentials   = errors.New("invalid login credentials")
	ErrPaymentMismatch      = errors.New("payment amount does not match order total")
	ErrNotRefundable        = errors.New("order is not eligible for a refund")
	ErrPersistence          = errors.New("persistence failure")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrNoSnapshot           = errors.New("no snapshot found")
	ErrUnsupportedSnapshot  = errors.New("unsupported snapshot version")
)
