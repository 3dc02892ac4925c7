package tests

import (
	"testing"
	"time"

	"byteme-canteen/canteen-svc/internal/domain"
	"byteme-canteen/canteen-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func burgerLines(t *testing.T, catalog *service.Catalog, quantity int) []domain.CartItem {
	t.Helper()
	cart := service.NewCart(catalog)
	require.NoError(t, cart.Add("Burger", quantity))
	return cart.List()
}

func TestLedger_PlaceOrder(t *testing.T) {
	catalog := service.SeedCatalog()
	ledger := service.NewLedger(fixedClock())
	lines := burgerLines(t, catalog, 2)

	order := ledger.PlaceOrder("alice", lines, "Room 101")

	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, "Room 101", order.SpecialRequest)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, 1, ledger.Number(order))
	assert.Len(t, ledger.History("alice"), 1)

	// The order holds its own copy of the lines but shares the catalog item.
	lines[0].Quantity = 9
	assert.Equal(t, 2, order.Items[0].Quantity)
	burger, _ := catalog.Get("Burger")
	assert.Same(t, burger, order.Items[0].Item)
}

func TestLedger_HistoryUnknownCustomer(t *testing.T) {
	ledger := service.NewLedger(nil)
	history := ledger.History("nobody")
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestLedger_PostOrderPriceEditChangesTotal(t *testing.T) {
	catalog := service.SeedCatalog()
	ledger := service.NewLedger(nil)
	order := ledger.PlaceOrder("alice", burgerLines(t, catalog, 2), "")
	require.True(t, order.Total().Equal(price("10.00")))

	newPrice := price("7.50")
	_, err := catalog.Update("Burger", &newPrice, nil)
	require.NoError(t, err)

	assert.True(t, order.Total().Equal(price("15.00")))
}

func TestLedger_Order(t *testing.T) {
	catalog := service.SeedCatalog()
	ledger := service.NewLedger(nil)
	first := ledger.PlaceOrder("alice", burgerLines(t, catalog, 1), "")
	second := ledger.PlaceOrder("alice", burgerLines(t, catalog, 2), "")

	got, err := ledger.Order("alice", 1)
	require.NoError(t, err)
	assert.Same(t, first, got)
	got, err = ledger.Order("alice", 2)
	require.NoError(t, err)
	assert.Same(t, second, got)

	for _, n := range []int{0, -1, 3} {
		_, err := ledger.Order("alice", n)
		assert.ErrorIs(t, err, domain.ErrInvalidOrderNumber)
	}
	_, err = ledger.Order("bob", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidOrderNumber)
}

func TestLedger_CancelOverridesAnyStatus(t *testing.T) {
	catalog := service.SeedCatalog()
	ledger := service.NewLedger(nil)

	for _, status := range domain.Statuses {
		t.Run(string(status), func(t *testing.T) {
			order := ledger.PlaceOrder("alice", burgerLines(t, catalog, 1), "")
			ledger.SetStatus(order, status)
			ledger.Cancel(order)
			assert.Equal(t, domain.StatusCanceled, order.Status)
			ledger.Cancel(order)
			assert.Equal(t, domain.StatusCanceled, order.Status)
		})
	}
}

func TestLedger_SetStatusAllowsAnyTransition(t *testing.T) {
	catalog := service.SeedCatalog()
	ledger := service.NewLedger(nil)
	order := ledger.PlaceOrder("alice", burgerLines(t, catalog, 1), "")

	for _, from := range domain.Statuses {
		for _, to := range domain.Statuses {
			ledger.SetStatus(order, from)
			ledger.SetStatus(order, to)
			assert.Equal(t, to, order.Status)
		}
	}
}

func TestLedger_PendingAndAllOrders(t *testing.T) {
	catalog := service.SeedCatalog()
	ledger := service.NewLedger(nil)
	bob1 := ledger.PlaceOrder("bob", burgerLines(t, catalog, 1), "")
	alice1 := ledger.PlaceOrder("alice", burgerLines(t, catalog, 1), "")
	alice2 := ledger.PlaceOrder("alice", burgerLines(t, catalog, 2), "")
	ledger.SetStatus(alice1, domain.StatusPreparing)

	all := ledger.AllOrders()
	require.Len(t, all, 3)
	assert.Same(t, alice1, all[0])
	assert.Same(t, alice2, all[1])
	assert.Same(t, bob1, all[2])

	pending := ledger.PendingOrders()
	require.Len(t, pending, 2)
	assert.Same(t, alice2, pending[0])
	assert.Same(t, bob1, pending[1])

	found, err := ledger.FindByID(bob1.ID)
	require.NoError(t, err)
	assert.Same(t, bob1, found)
	_, err = ledger.FindByID("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedger_Reorder(t *testing.T) {
	catalog := service.SeedCatalog()
	ledger := service.NewLedger(nil)
	source := ledger.PlaceOrder("alice", burgerLines(t, catalog, 2), "Gate B")
	ledger.SetStatus(source, domain.StatusCompleted)

	copyOrder, err := ledger.Reorder("alice", 1)
	require.NoError(t, err)

	assert.NotSame(t, source, copyOrder)
	assert.NotEqual(t, source.ID, copyOrder.ID)
	assert.Equal(t, domain.StatusPending, copyOrder.Status)
	assert.Equal(t, domain.StatusCompleted, source.Status)
	assert.Equal(t, "Gate B", copyOrder.SpecialRequest)
	require.Len(t, copyOrder.Items, 1)
	assert.Same(t, source.Items[0].Item, copyOrder.Items[0].Item)
	assert.Equal(t, source.Items[0].Quantity, copyOrder.Items[0].Quantity)
	assert.Equal(t, 2, ledger.Number(copyOrder))

	copyOrder.Items[0].Quantity = 7
	assert.Equal(t, 2, source.Items[0].Quantity)

	_, err = ledger.Reorder("alice", 5)
	assert.ErrorIs(t, err, domain.ErrInvalidOrderNumber)
	assert.Len(t, ledger.History("alice"), 2)
}

// Refund eligibility is "status is not Completed".
func TestLedger_Refund(t *testing.T) {
	catalog := service.SeedCatalog()
	ledger := service.NewLedger(fixedClock())

	for _, status := range domain.Statuses {
		t.Run(string(status), func(t *testing.T) {
			order := ledger.PlaceOrder("alice", burgerLines(t, catalog, 1), "")
			ledger.SetStatus(order, status)

			refund, err := ledger.Refund(order, "cold food")
			if status == domain.StatusCompleted {
				assert.ErrorIs(t, err, domain.ErrNotRefundable)
				assert.Empty(t, order.Refunds)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "cold food", refund.Reason)
			assert.Equal(t, status, order.Status)
			assert.Len(t, order.Refunds, 1)
		})
	}
}

func TestFormatHistory(t *testing.T) {
	assert.Equal(t, "No order history found.", domain.FormatHistory(nil))

	catalog := service.SeedCatalog()
	ledger := service.NewLedger(nil)
	ledger.PlaceOrder("alice", burgerLines(t, catalog, 2), "Room 101")

	expected := "Your Order History:\n" +
		"Order #1: Order{items=[Burger - Quantity: 2 - Total: $10.00], status='Pending', specialRequest='Room 101'}\n"
	assert.Equal(t, expected, domain.FormatHistory(ledger.History("alice")))
}

func TestParseStatus(t *testing.T) {
	status, err := domain.ParseStatus("  out for delivery ")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOutForDelivery, status)

	_, err = domain.ParseStatus("Shipped")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}
