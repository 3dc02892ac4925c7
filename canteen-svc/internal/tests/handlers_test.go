package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	httpapi "byteme-canteen/canteen-svc/internal/api/http"
	"byteme-canteen/canteen-svc/internal/domain"
	"byteme-canteen/canteen-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionKey = []byte("0123456789abcdef0123456789abcdef")

func newServer(t *testing.T) *httptest.Server {
	engine := service.NewEngine(service.SeedState(), service.Deps{})
	handler := httpapi.NewHandler(engine, httpapi.NewSessionStore(sessionKey, false), nil)
	srv := httptest.NewServer(httpapi.NewRouter(handler))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func call(t *testing.T, client *http.Client, method, url string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func loginCustomer(t *testing.T, srv *httptest.Server, client *http.Client, loginID string) {
	t.Helper()
	creds := map[string]string{"login_id": loginID, "password": "pw"}
	resp, _ := call(t, client, http.MethodPost, srv.URL+"/api/customers", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = call(t, client, http.MethodPost, srv.URL+"/api/login", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTP_Login(t *testing.T) {
	srv := newServer(t)
	client := newClient(t)

	resp, _ := call(t, client, http.MethodGet, srv.URL+"/api/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = call(t, client, http.MethodPost, srv.URL+"/api/customers", map[string]string{"password": "pw"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, client, http.MethodPost, srv.URL+"/api/customers", map[string]string{"login_id": "alice", "password": "pw"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = call(t, client, http.MethodPost, srv.URL+"/api/login", map[string]string{"login_id": "alice", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = call(t, client, http.MethodPost, srv.URL+"/api/login", map[string]string{"login_id": "alice", "password": "pw"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := call(t, client, http.MethodGet, srv.URL+"/api/cart", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cart domain.CartView
	require.NoError(t, json.Unmarshal(body, &cart))
	assert.Equal(t, "alice", cart.LoginID)
	assert.Empty(t, cart.Lines)

	resp, _ = call(t, client, http.MethodPost, srv.URL+"/api/logout", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = call(t, client, http.MethodGet, srv.URL+"/api/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHTTP_CheckoutFlow(t *testing.T) {
	srv := newServer(t)
	client := newClient(t)
	loginCustomer(t, srv, client, "alice")

	resp, body := call(t, client, http.MethodPost, srv.URL+"/api/cart/items", map[string]interface{}{"name": "burger", "quantity": 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var cart domain.CartView
	require.NoError(t, json.Unmarshal(body, &cart))
	assert.True(t, cart.Total.Equal(price("10.00")))

	for _, name := range []string{"Pizza", "Tea"} {
		resp, _ = call(t, client, http.MethodPost, srv.URL+"/api/cart/items", map[string]interface{}{"name": name, "quantity": 1})
		assert.Equal(t, http.StatusConflict, resp.StatusCode, name)
	}

	tests := []struct {
		name     string
		request  map[string]string
		expected int
	}{
		{name: "short payment", request: map[string]string{"payment_method": "cash", "amount": "9.99"}, expected: http.StatusPaymentRequired},
		{name: "overpayment", request: map[string]string{"payment_method": "cash", "amount": "10.01"}, expected: http.StatusPaymentRequired},
		{name: "unknown method", request: map[string]string{"payment_method": "cheque", "amount": "10"}, expected: http.StatusBadRequest},
		{name: "card without number", request: map[string]string{"payment_method": "card", "amount": "10"}, expected: http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, _ := call(t, client, http.MethodPost, srv.URL+"/api/checkout", tc.request)
			assert.Equal(t, tc.expected, resp.StatusCode)
		})
	}

	resp, body = call(t, client, http.MethodPost, srv.URL+"/api/checkout", map[string]string{
		"payment_method": "card",
		"card_number":    "4111111111111111",
		"amount":         "10.00",
		"address":        "Room 101",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order domain.OrderView
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, 1, order.Number)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, domain.PaymentCard, order.PaymentMethod)
	assert.Equal(t, "Room 101", order.SpecialRequest)

	resp, _ = call(t, client, http.MethodPost, srv.URL+"/api/checkout", map[string]string{"payment_method": "cash", "amount": "0"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = call(t, client, http.MethodGet, srv.URL+"/api/orders/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &order))
	assert.True(t, order.Total.Equal(price("10")))

	for _, n := range []string{"0", "2", "first"} {
		resp, _ = call(t, client, http.MethodGet, srv.URL+"/api/orders/"+n, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, n)
	}

	resp, body = call(t, client, http.MethodGet, srv.URL+"/api/orders/transcript", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain"))
	assert.Contains(t, string(body), "Order #1:")

	resp, body = call(t, client, http.MethodGet, srv.URL+"/api/orders/1/qrcode", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("\x89PNG")))

	resp, body = call(t, client, http.MethodPost, srv.URL+"/api/orders/1/reorder", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, 2, order.Number)

	resp, body = call(t, client, http.MethodPost, srv.URL+"/api/orders/2/cancel", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, domain.StatusCanceled, order.Status)

	var history []domain.OrderView
	resp, body = call(t, client, http.MethodGet, srv.URL+"/api/orders", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &history))
	assert.Len(t, history, 2)
}

func TestHTTP_Menu(t *testing.T) {
	srv := newServer(t)
	client := newClient(t)

	var items []domain.ItemView
	resp, body := call(t, client, http.MethodGet, srv.URL+"/api/menu", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &items))
	assert.Len(t, items, 5)

	tests := []struct {
		query    string
		expected []string
	}{
		{query: "?q=o", expected: []string{"Coffee", "Soda"}},
		{query: "?category=beverages", expected: []string{"Coffee", "Soda"}},
		{query: "?sort=desc", expected: []string{"Pizza", "Burger", "Coffee", "Fries", "Soda"}},
		{query: "?q=URG&sort=desc", expected: []string{"Burger"}},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			var items []domain.ItemView
			resp, body := call(t, client, http.MethodGet, srv.URL+"/api/menu"+tc.query, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			require.NoError(t, json.Unmarshal(body, &items))
			got := make([]string, 0, len(items))
			for _, item := range items {
				got = append(got, item.Name)
			}
			assert.Equal(t, tc.expected, got)
		})
	}

	resp, _ = call(t, client, http.MethodGet, srv.URL+"/api/menu?sort=sideways", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var item domain.ItemView
	resp, body = call(t, client, http.MethodGet, srv.URL+"/api/menu/pizza", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &item))
	assert.False(t, item.Available)

	resp, _ = call(t, client, http.MethodGet, srv.URL+"/api/menu/Tea", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = call(t, client, http.MethodGet, srv.URL+"/api/menu/popular?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = call(t, client, http.MethodGet, srv.URL+"/api/menu/popular", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTP_Reviews(t *testing.T) {
	srv := newServer(t)
	client := newClient(t)

	resp, _ := call(t, client, http.MethodPost, srv.URL+"/api/menu/Coffee/reviews", map[string]interface{}{"text": "Strong", "rating": 5})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	loginCustomer(t, srv, client, "alice")
	resp, _ = call(t, client, http.MethodPost, srv.URL+"/api/menu/Coffee/reviews", map[string]interface{}{"text": "Strong", "rating": 5})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var reviews []domain.Review
	resp, body := call(t, client, http.MethodGet, srv.URL+"/api/menu/coffee/reviews", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &reviews))
	require.Len(t, reviews, 1)
	assert.Equal(t, "alice", reviews[0].CustomerName)
}

func TestHTTP_Admin(t *testing.T) {
	srv := newServer(t)
	customer := newClient(t)
	loginCustomer(t, srv, customer, "alice")

	resp, _ := call(t, customer, http.MethodPost, srv.URL+"/api/cart/items", map[string]interface{}{"name": "Soda", "quantity": 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, body := call(t, customer, http.MethodPost, srv.URL+"/api/checkout", map[string]string{"payment_method": "1", "amount": "3.00"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order domain.OrderView
	require.NoError(t, json.Unmarshal(body, &order))

	resp, _ = call(t, customer, http.MethodGet, srv.URL+"/api/admin/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	admin := newClient(t)
	resp, _ = call(t, admin, http.MethodPost, srv.URL+"/api/admin/login", map[string]string{"admin_id": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = call(t, admin, http.MethodPost, srv.URL+"/api/admin/login", map[string]string{"admin_id": "admin", "password": "admin123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var pending []domain.OrderView
	resp, body = call(t, admin, http.MethodGet, srv.URL+"/api/admin/orders/pending", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, order.ID, pending[0].ID)

	statusURL := srv.URL + "/api/admin/orders/" + order.ID + "/status"
	resp, _ = call(t, admin, http.MethodPut, statusURL, map[string]string{"status": "Shipped"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = call(t, admin, http.MethodPut, srv.URL+"/api/admin/orders/missing/status", map[string]string{"status": "Completed"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, body = call(t, admin, http.MethodPut, statusURL, map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, domain.StatusCompleted, order.Status)

	resp, _ = call(t, admin, http.MethodPost, srv.URL+"/api/admin/orders/"+order.ID+"/refund", map[string]string{"reason": "late"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = call(t, customer, http.MethodGet, srv.URL+"/api/orders/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, domain.StatusCompleted, order.Status)

	resp, _ = call(t, admin, http.MethodPost, srv.URL+"/api/admin/menu", map[string]interface{}{
		"name": "Tea", "price": "1.25", "category": "Beverages", "available": true,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = call(t, admin, http.MethodPut, srv.URL+"/api/admin/menu/Pizza", map[string]interface{}{"available": true})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = call(t, admin, http.MethodDelete, srv.URL+"/api/admin/menu/Fries", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = call(t, admin, http.MethodDelete, srv.URL+"/api/admin/menu/Fries", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = call(t, customer, http.MethodPost, srv.URL+"/api/cart/items", map[string]interface{}{"name": "pizza", "quantity": 1})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var all []domain.OrderView
	resp, body = call(t, admin, http.MethodGet, srv.URL+"/api/admin/orders", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &all))
	assert.Len(t, all, 1)

	resp, _ = call(t, admin, http.MethodPost, srv.URL+"/api/admin/snapshot", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
