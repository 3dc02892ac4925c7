package service

import (
	"context"

	"byteme-canteen/canteen-svc/internal/domain"
	"byteme-canteen/canteen-svc/internal/storage"

	"github.com/shopspring/decimal"
)

type SnapshotRepository interface {
	SaveState(ctx context.Context, state domain.State) error
	LoadState(ctx context.Context) (domain.State, error)
}

type TranscriptWriter interface {
	WriteTranscript(ctx context.Context, loginID string, orders []*domain.Order) error
}

type CartStore interface {
	LoadCart(ctx context.Context, loginID string) ([]domain.CartLine, error)
	SaveCart(ctx context.Context, loginID string, lines []domain.CartLine) error
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type PopularityReader interface {
	TopItems(ctx context.Context, limit int) ([]domain.PopularItem, error)
}

type QRGenerator interface {
	Generate(loginID string, number int) ([]byte, error)
}

// CanteenService is the command surface offered to presentation layers.
type CanteenService interface {
	Menu() []domain.ItemView
	SearchMenu(keyword string) []domain.ItemView
	FilterMenu(category string) []domain.ItemView
	SortMenu(ascending bool) []domain.ItemView
	MenuItem(name string) (domain.ItemView, error)
	AddMenuItem(name string, price decimal.Decimal, category string, available bool) domain.ItemView
	UpdateMenuItem(name string, price *decimal.Decimal, available *bool) (domain.ItemView, error)
	RemoveMenuItem(name string) error
	PopularItems(ctx context.Context, limit int) ([]domain.PopularItem, error)

	Register(loginID, password string)
	Login(loginID, password string) error
	AdminLogin(adminID, password string) error

	Cart(ctx context.Context, loginID string) domain.CartView
	AddToCart(ctx context.Context, loginID, name string, quantity int) (domain.CartView, error)
	UpdateCartItem(ctx context.Context, loginID, name string, quantity int) (domain.CartView, error)
	RemoveFromCart(ctx context.Context, loginID, name string) (domain.CartView, error)
	ClearCart(ctx context.Context, loginID string) domain.CartView
	Checkout(ctx context.Context, loginID, address string, payment domain.Payment) (domain.OrderView, error)

	History(loginID string) []domain.OrderView
	HistoryTranscript(loginID string) string
	Order(loginID string, number int) (domain.OrderView, error)
	CancelOrder(ctx context.Context, loginID string, number int) (domain.OrderView, error)
	Reorder(ctx context.Context, loginID string, number int) (domain.OrderView, error)
	OrderReceipt(loginID string, number int) ([]byte, error)

	PendingOrders() []domain.OrderView
	AllOrders() []domain.OrderView
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.Status) (domain.OrderView, error)
	RefundOrder(ctx context.Context, orderID, reason string) (domain.OrderView, error)

	AddReview(ctx context.Context, itemName, customerName, text string, rating int) (domain.Review, error)
	Reviews(itemName string) ([]domain.Review, error)

	Save(ctx context.Context) error
}

var (
	_ CanteenService     = (*Engine)(nil)
	_ SnapshotRepository = (*storage.SnapshotGateway)(nil)
	_ TranscriptWriter   = (*storage.TranscriptFiles)(nil)
	_ CartStore          = (*storage.RedisCartStore)(nil)
	_ EventPublisher     = (*storage.KafkaPublisher)(nil)
	_ PopularityReader   = (*storage.RedisPopularity)(nil)
)
