package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"byteme-canteen/canteen-svc/internal/domain"

	"github.com/shopspring/decimal"
)

const SnapshotVersion = 1

// snapshotDoc keeps every distinct item once. Cart and order lines point into
// Items by index so lines that shared an item still share it after loading.
type snapshotDoc struct {
	Version   int                      `json:"version"`
	SavedAt   time.Time                `json:"saved_at"`
	Items     []itemRecord             `json:"items"`
	Accounts  map[string]string        `json:"accounts"`
	Histories map[string][]orderRecord `json:"histories"`
	Carts     map[string][]lineRecord  `json:"carts"`
}

type itemRecord struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Available bool            `json:"available"`
	Listed    bool            `json:"listed"`
	Reviews   []domain.Review `json:"reviews"`
}

type lineRecord struct {
	Item     int `json:"item"`
	Quantity int `json:"quantity"`
}

type orderRecord struct {
	ID             string               `json:"id"`
	Lines          []lineRecord         `json:"lines"`
	Status         domain.Status        `json:"status"`
	SpecialRequest string               `json:"special_request"`
	PaymentMethod  domain.PaymentMethod `json:"payment_method,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	Refunds        []domain.Refund      `json:"refunds,omitempty"`
}

type itemTable struct {
	index   map[*domain.FoodItem]int
	records []itemRecord
}

func (t *itemTable) ref(item *domain.FoodItem, listed bool) int {
	if i, ok := t.index[item]; ok {
		if listed {
			t.records[i].Listed = true
		}
		return i
	}
	t.index[item] = len(t.records)
	t.records = append(t.records, itemRecord{
		Name:      item.Name,
		Price:     item.Price,
		Category:  item.Category,
		Available: item.Available,
		Listed:    listed,
		Reviews:   item.Reviews,
	})
	return len(t.records) - 1
}

func (t *itemTable) lines(items []domain.CartItem) []lineRecord {
	out := make([]lineRecord, 0, len(items))
	for _, line := range items {
		out = append(out, lineRecord{Item: t.ref(line.Item, false), Quantity: line.Quantity})
	}
	return out
}

// EncodeState serialises the whole engine state.
func EncodeState(state domain.State, savedAt time.Time) ([]byte, error) {
	table := &itemTable{index: make(map[*domain.FoodItem]int)}
	for _, item := range state.Catalog {
		table.ref(item, true)
	}

	doc := snapshotDoc{
		Version:   SnapshotVersion,
		SavedAt:   savedAt.UTC(),
		Accounts:  state.Accounts,
		Histories: make(map[string][]orderRecord, len(state.Histories)),
		Carts:     make(map[string][]lineRecord, len(state.Carts)),
	}
	if doc.Accounts == nil {
		doc.Accounts = map[string]string{}
	}

	for _, loginID := range sortedKeys(state.Carts) {
		doc.Carts[loginID] = table.lines(state.Carts[loginID])
	}
	for _, loginID := range sortedKeys(state.Histories) {
		orders := state.Histories[loginID]
		records := make([]orderRecord, 0, len(orders))
		for _, o := range orders {
			records = append(records, orderRecord{
				ID:             o.ID,
				Lines:          table.lines(o.Items),
				Status:         o.Status,
				SpecialRequest: o.SpecialRequest,
				PaymentMethod:  o.PaymentMethod,
				CreatedAt:      o.CreatedAt,
				Refunds:        o.Refunds,
			})
		}
		doc.Histories[loginID] = records
	}
	doc.Items = table.records
	if doc.Items == nil {
		doc.Items = []itemRecord{}
	}

	return json.MarshalIndent(doc, "", "  ")
}

// DecodeState rebuilds the state written by EncodeState.
func DecodeState(data []byte) (domain.State, error) {
	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.State{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if doc.Version < 1 || doc.Version > SnapshotVersion {
		return domain.State{}, fmt.Errorf("%w: %d", domain.ErrUnsupportedSnapshot, doc.Version)
	}

	items := make([]*domain.FoodItem, len(doc.Items))
	state := domain.State{
		Accounts:  map[string]string{},
		Histories: make(map[string][]*domain.Order, len(doc.Histories)),
		Carts:     make(map[string][]domain.CartItem, len(doc.Carts)),
	}
	for i, rec := range doc.Items {
		item := domain.NewFoodItem(rec.Name, rec.Price, rec.Category, rec.Available)
		if rec.Reviews != nil {
			item.Reviews = rec.Reviews
		}
		items[i] = item
		if rec.Listed {
			state.Catalog = append(state.Catalog, item)
		}
	}
	for loginID, password := range doc.Accounts {
		state.Accounts[loginID] = password
	}

	lines := func(records []lineRecord) ([]domain.CartItem, error) {
		out := make([]domain.CartItem, 0, len(records))
		for _, rec := range records {
			if rec.Item < 0 || rec.Item >= len(items) {
				return nil, fmt.Errorf("decode snapshot: line references item %d of %d", rec.Item, len(items))
			}
			out = append(out, domain.CartItem{Item: items[rec.Item], Quantity: rec.Quantity})
		}
		return out, nil
	}

	for loginID, records := range doc.Carts {
		cart, err := lines(records)
		if err != nil {
			return domain.State{}, err
		}
		state.Carts[loginID] = cart
	}
	for loginID, records := range doc.Histories {
		orders := make([]*domain.Order, 0, len(records))
		for _, rec := range records {
			orderLines, err := lines(rec.Lines)
			if err != nil {
				return domain.State{}, err
			}
			orders = append(orders, &domain.Order{
				ID:             rec.ID,
				LoginID:        loginID,
				Items:          orderLines,
				Status:         rec.Status,
				SpecialRequest: rec.SpecialRequest,
				PaymentMethod:  rec.PaymentMethod,
				CreatedAt:      rec.CreatedAt,
				Refunds:        rec.Refunds,
			})
		}
		state.Histories[loginID] = orders
	}
	return state, nil
}

// BlobStore keeps the latest encoded snapshot.
type BlobStore interface {
	Save(ctx context.Context, payload []byte, savedAt time.Time) error
	Load(ctx context.Context) ([]byte, error)
}

// SnapshotGateway turns a BlobStore into the engine's snapshot repository.
type SnapshotGateway struct {
	Store BlobStore
	Now   func() time.Time
}

func NewSnapshotGateway(store BlobStore) *SnapshotGateway {
	return &SnapshotGateway{Store: store, Now: time.Now}
}

func (g *SnapshotGateway) SaveState(ctx context.Context, state domain.State) error {
	savedAt := g.Now()
	payload, err := EncodeState(state, savedAt)
	if err != nil {
		return err
	}
	return g.Store.Save(ctx, payload, savedAt)
}

func (g *SnapshotGateway) LoadState(ctx context.Context) (domain.State, error) {
	payload, err := g.Store.Load(ctx)
	if err != nil {
		return domain.State{}, err
	}
	return DecodeState(payload)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
