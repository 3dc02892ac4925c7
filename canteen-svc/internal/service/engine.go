package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"byteme-canteen/canteen-svc/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Credentials struct {
	LoginID  string
	Password string
}

// Deps are the collaborators of an Engine. Every field is optional.
type Deps struct {
	Snapshots   SnapshotRepository
	Transcripts TranscriptWriter
	Carts       CartStore
	Publisher   EventPublisher
	Popularity  PopularityReader
	Receipts    QRGenerator
	Admin       Credentials
	Logger      *zap.Logger
	Now         func() time.Time
}

// Engine owns catalog, accounts, carts and the order ledger and runs one
// operation at a time. Results are returned as views.
type Engine struct {
	mu       sync.Mutex
	catalog  *Catalog
	accounts *AccountStore
	ledger   *Ledger
	reviews  *ReviewLedger
	carts    map[string]*Cart
	deps     Deps
	log      *zap.Logger
	now      func() time.Time
}

// SeedState is the state of an engine that has never been saved.
func SeedState() domain.State {
	return domain.State{
		Catalog:   SeedCatalog().List(),
		Accounts:  map[string]string{},
		Histories: map[string][]*domain.Order{},
		Carts:     map[string][]domain.CartItem{},
	}
}

func NewEngine(state domain.State, deps Deps) *Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Admin == (Credentials{}) {
		deps.Admin = Credentials{LoginID: "admin", Password: "admin123"}
	}
	if deps.Receipts == nil {
		deps.Receipts = ReceiptQR{}
	}

	e := &Engine{
		catalog:  NewCatalog(),
		accounts: NewAccountStore(),
		ledger:   NewLedger(deps.Now),
		reviews:  NewReviewLedger(deps.Now),
		carts:    make(map[string]*Cart),
		deps:     deps,
		log:      deps.Logger,
		now:      deps.Now,
	}
	for _, item := range state.Catalog {
		e.catalog.Put(item)
	}
	for loginID, password := range state.Accounts {
		e.accounts.Register(loginID, password)
	}
	e.ledger.restore(state.Histories)
	for loginID, lines := range state.Carts {
		cart := NewCart(e.catalog)
		cart.restore(lines)
		e.carts[loginID] = cart
	}
	return e
}

// Bootstrap restores the last snapshot, or starts from the seed catalog when
// there is none or it cannot be read.
func Bootstrap(ctx context.Context, deps Deps) *Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if deps.Snapshots == nil {
		log.Info("no snapshot repository configured, starting from seed catalog")
		return NewEngine(SeedState(), deps)
	}

	state, err := deps.Snapshots.LoadState(ctx)
	switch {
	case err == nil:
		log.Info("restored engine state from snapshot",
			zap.Int("items", len(state.Catalog)),
			zap.Int("accounts", len(state.Accounts)),
			zap.Int("customers", len(state.Histories)))
		return NewEngine(state, deps)
	case errors.Is(err, domain.ErrNoSnapshot):
		log.Info("no snapshot found, starting from seed catalog")
	default:
		log.Warn("snapshot unreadable, starting from seed catalog", zap.Error(err))
	}
	return NewEngine(SeedState(), deps)
}

func (e *Engine) Menu() []domain.ItemView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.NewItemViews(e.catalog.List())
}

func (e *Engine) SearchMenu(keyword string) []domain.ItemView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.NewItemViews(e.catalog.Search(keyword))
}

func (e *Engine) FilterMenu(category string) []domain.ItemView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.NewItemViews(e.catalog.FilterByCategory(category))
}

func (e *Engine) SortMenu(ascending bool) []domain.ItemView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.NewItemViews(e.catalog.SortByPrice(ascending))
}

func (e *Engine) MenuItem(name string) (domain.ItemView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	item, ok := e.catalog.Get(name)
	if !ok {
		return domain.ItemView{}, fmt.Errorf("menu item %q: %w", name, domain.ErrNotFound)
	}
	return domain.NewItemView(item), nil
}

func (e *Engine) AddMenuItem(name string, price decimal.Decimal, category string, available bool) domain.ItemView {
	e.mu.Lock()
	defer e.mu.Unlock()
	item := e.catalog.AddItem(name, price, category, available)
	e.log.Info("menu item added", zap.String("item", name), zap.String("price", price.StringFixed(2)))
	return domain.NewItemView(item)
}

func (e *Engine) UpdateMenuItem(name string, price *decimal.Decimal, available *bool) (domain.ItemView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	item, err := e.catalog.Update(name, price, available)
	if err != nil {
		return domain.ItemView{}, err
	}
	e.log.Info("menu item updated", zap.String("item", item.Name),
		zap.String("price", item.Price.StringFixed(2)), zap.Bool("available", item.Available))
	return domain.NewItemView(item), nil
}

func (e *Engine) RemoveMenuItem(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.catalog.Remove(name) {
		return fmt.Errorf("menu item %q: %w", name, domain.ErrNotFound)
	}
	e.log.Info("menu item removed", zap.String("item", name))
	return nil
}

// PopularItems prefers the aggregated ranking and falls back to counting the
// ledger when it is missing or empty.
func (e *Engine) PopularItems(ctx context.Context, limit int) ([]domain.PopularItem, error) {
	if e.deps.Popularity != nil {
		items, err := e.deps.Popularity.TopItems(ctx, limit)
		if err == nil && len(items) > 0 {
			return items, nil
		}
		if err != nil {
			e.log.Warn("popularity ranking unavailable, counting ledger", zap.Error(err))
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	counts := make(map[string]float64)
	for _, o := range e.ledger.AllOrders() {
		for _, line := range o.Items {
			counts[line.Item.Name] += float64(line.Quantity)
		}
	}
	items := make([]domain.PopularItem, 0, len(counts))
	for name, score := range counts {
		items = append(items, domain.PopularItem{Name: name, Score: score})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].Name < items[j].Name
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (e *Engine) Register(loginID, password string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.accounts.Register(loginID, password)
	e.log.Info("customer registered", zap.String("login_id", loginID))
}

func (e *Engine) Login(loginID, password string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.accounts.Authenticate(loginID, password) {
		return domain.ErrInvalidCredentials
	}
	return nil
}

func (e *Engine) AdminLogin(adminID, password string) error {
	if adminID != e.deps.Admin.LoginID || password != e.deps.Admin.Password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

func (e *Engine) History(loginID string) []domain.OrderView {
	e.mu.Lock()
	defer e.mu.Unlock()
	history := e.ledger.History(loginID)
	views := make([]domain.OrderView, 0, len(history))
	for i, o := range history {
		views = append(views, domain.NewOrderView(o, i+1))
	}
	return views
}

func (e *Engine) HistoryTranscript(loginID string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.FormatHistory(e.ledger.History(loginID))
}

func (e *Engine) Order(loginID string, number int) (domain.OrderView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	o, err := e.ledger.Order(loginID, number)
	if err != nil {
		return domain.OrderView{}, err
	}
	return domain.NewOrderView(o, number), nil
}

func (e *Engine) CancelOrder(ctx context.Context, loginID string, number int) (domain.OrderView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	o, err := e.ledger.Order(loginID, number)
	if err != nil {
		return domain.OrderView{}, err
	}
	e.ledger.Cancel(o)
	e.publish(ctx, domain.EventOrderCanceled, o)
	return domain.NewOrderView(o, number), nil
}

// Reorder places a copy of order number. The returned error may wrap
// ErrPersistence while the view still describes the new order.
func (e *Engine) Reorder(ctx context.Context, loginID string, number int) (domain.OrderView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	o, err := e.ledger.Reorder(loginID, number)
	if err != nil {
		return domain.OrderView{}, err
	}
	return e.afterPlacement(ctx, o)
}

func (e *Engine) OrderReceipt(loginID string, number int) ([]byte, error) {
	e.mu.Lock()
	if _, err := e.ledger.Order(loginID, number); err != nil {
		e.mu.Unlock()
		return nil, err
	}
	e.mu.Unlock()
	return e.deps.Receipts.Generate(loginID, number)
}

func (e *Engine) PendingOrders() []domain.OrderView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.views(e.ledger.PendingOrders())
}

func (e *Engine) AllOrders() []domain.OrderView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.views(e.ledger.AllOrders())
}

func (e *Engine) UpdateOrderStatus(ctx context.Context, orderID string, status domain.Status) (domain.OrderView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	o, err := e.ledger.FindByID(orderID)
	if err != nil {
		return domain.OrderView{}, err
	}
	previous := o.Status
	e.ledger.SetStatus(o, status)
	e.log.Info("order status updated", zap.String("order_id", o.ID),
		zap.String("from", string(previous)), zap.String("to", string(status)))
	e.publish(ctx, domain.EventOrderStatusChanged, o)
	return domain.NewOrderView(o, e.ledger.Number(o)), nil
}

func (e *Engine) RefundOrder(ctx context.Context, orderID, reason string) (domain.OrderView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	o, err := e.ledger.FindByID(orderID)
	if err != nil {
		return domain.OrderView{}, err
	}
	if _, err := e.ledger.Refund(o, reason); err != nil {
		return domain.OrderView{}, err
	}
	e.log.Info("refund processed", zap.String("order_id", o.ID), zap.String("reason", reason))
	e.publish(ctx, domain.EventOrderRefunded, o)
	return domain.NewOrderView(o, e.ledger.Number(o)), nil
}

func (e *Engine) AddReview(ctx context.Context, itemName, customerName, text string, rating int) (domain.Review, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	item, ok := e.catalog.Get(itemName)
	if !ok {
		return domain.Review{}, fmt.Errorf("menu item %q: %w", itemName, domain.ErrNotFound)
	}
	review := e.reviews.AddReview(item, customerName, text, rating)
	e.emit(ctx, domain.OrderEvent{
		Type:      domain.EventReviewAdded,
		Items:     []domain.EventLine{{Name: item.Name}},
		Rating:    rating,
		Total:     decimal.Zero,
		Timestamp: review.CreatedAt,
	})
	return review, nil
}

func (e *Engine) Reviews(itemName string) ([]domain.Review, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	item, ok := e.catalog.Get(itemName)
	if !ok {
		return nil, fmt.Errorf("menu item %q: %w", itemName, domain.ErrNotFound)
	}
	return e.reviews.List(item), nil
}

// Save writes the whole state through the snapshot repository.
func (e *Engine) Save(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deps.Snapshots == nil {
		return nil
	}
	if err := e.deps.Snapshots.SaveState(ctx, e.state()); err != nil {
		e.log.Error("snapshot save failed", zap.Error(err))
		return fmt.Errorf("%w: save snapshot: %v", domain.ErrPersistence, err)
	}
	e.log.Info("snapshot saved")
	return nil
}

// State returns the live state; callers must not use it concurrently with the engine.
func (e *Engine) State() domain.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state()
}

func (e *Engine) state() domain.State {
	carts := make(map[string][]domain.CartItem, len(e.carts))
	for loginID, cart := range e.carts {
		if cart.Len() > 0 {
			carts[loginID] = cart.List()
		}
	}
	return domain.State{
		Catalog:   e.catalog.List(),
		Accounts:  e.accounts.Snapshot(),
		Histories: e.ledger.Histories(),
		Carts:     carts,
	}
}

func (e *Engine) views(orders []*domain.Order) []domain.OrderView {
	views := make([]domain.OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, domain.NewOrderView(o, e.ledger.Number(o)))
	}
	return views
}

// afterPlacement publishes the new order and rewrites the owner's transcript.
func (e *Engine) afterPlacement(ctx context.Context, o *domain.Order) (domain.OrderView, error) {
	view := domain.NewOrderView(o, e.ledger.Number(o))
	e.log.Info("order placed", zap.String("order_id", o.ID), zap.String("login_id", o.LoginID),
		zap.Int("number", view.Number), zap.String("total", view.Total.StringFixed(2)))
	e.publish(ctx, domain.EventOrderPlaced, o)

	if e.deps.Transcripts == nil {
		return view, nil
	}
	if err := e.deps.Transcripts.WriteTranscript(ctx, o.LoginID, e.ledger.History(o.LoginID)); err != nil {
		e.log.Error("transcript write failed", zap.String("login_id", o.LoginID), zap.Error(err))
		return view, fmt.Errorf("%w: transcript for %q: %v", domain.ErrPersistence, o.LoginID, err)
	}
	return view, nil
}

func (e *Engine) publish(ctx context.Context, eventType string, o *domain.Order) {
	e.emit(ctx, domain.NewOrderEvent(eventType, o, e.now()))
}

func (e *Engine) emit(ctx context.Context, event domain.OrderEvent) {
	if e.deps.Publisher == nil {
		return
	}
	if err := e.deps.Publisher.PublishOrderEvent(ctx, event); err != nil {
		e.log.Warn("order event not published", zap.String("type", event.Type), zap.Error(err))
	}
}
