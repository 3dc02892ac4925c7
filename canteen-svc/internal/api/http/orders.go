package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"byteme-canteen/canteen-svc/internal/domain"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type cartItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type checkoutRequest struct {
	Address       string          `json:"address"`
	PaymentMethod string          `json:"payment_method"`
	Amount        decimal.Decimal `json:"amount"`
	CardNumber    string          `json:"card_number"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request, loginID string) {
	writeJSON(w, http.StatusOK, h.Canteen.Cart(r.Context(), loginID))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request, loginID string) {
	writeJSON(w, http.StatusOK, h.Canteen.ClearCart(r.Context(), loginID))
}

// addCartItem godoc
// @Summary Add an item to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Param line body cartItemRequest true "item and quantity"
// @Success 201 {object} domain.CartView
// @Failure 409 {string} string "item not available"
// @Router /api/cart/items [post]
func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request, loginID string) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cart, err := h.Canteen.AddToCart(r.Context(), loginID, req.Name, req.Quantity)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cart)
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request, loginID string) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cart, err := h.Canteen.UpdateCartItem(r.Context(), loginID, mux.Vars(r)["name"], req.Quantity)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request, loginID string) {
	cart, err := h.Canteen.RemoveFromCart(r.Context(), loginID, mux.Vars(r)["name"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// checkout godoc
// @Summary Pay for the cart
// @Description The amount must equal the cart total exactly. Rejected payments leave the cart as it was.
// @Tags cart
// @Accept json
// @Produce json
// @Param payment body checkoutRequest true "address and payment"
// @Success 201 {object} domain.OrderView
// @Failure 400 {string} string "empty cart or unknown payment method"
// @Failure 402 {string} string "payment amount does not match order total"
// @Router /api/checkout [post]
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request, loginID string) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	method, err := domain.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if method == domain.PaymentCard && req.CardNumber == "" {
		http.Error(w, "card_number is required for card payments", http.StatusBadRequest)
		return
	}

	order, err := h.Canteen.Checkout(r.Context(), loginID, req.Address, domain.Payment{
		Method:     method,
		Amount:     req.Amount,
		CardNumber: req.CardNumber,
	})
	h.writePlacedOrder(w, order, err)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request, loginID string) {
	writeJSON(w, http.StatusOK, h.Canteen.History(loginID))
}

func (h *Handler) getTranscript(w http.ResponseWriter, r *http.Request, loginID string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(h.Canteen.HistoryTranscript(loginID)))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request, loginID string) {
	number, err := orderNumber(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	order, err := h.Canteen.Order(loginID, number)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request, loginID string) {
	number, err := orderNumber(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	order, err := h.Canteen.CancelOrder(r.Context(), loginID, number)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) reorder(w http.ResponseWriter, r *http.Request, loginID string) {
	number, err := orderNumber(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	order, err := h.Canteen.Reorder(r.Context(), loginID, number)
	h.writePlacedOrder(w, order, err)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request, loginID string) {
	number, err := orderNumber(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	png, err := h.Canteen.OrderReceipt(loginID, number)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// writePlacedOrder answers 201 for a recorded order, even when only its
// transcript could not be written.
func (h *Handler) writePlacedOrder(w http.ResponseWriter, order domain.OrderView, err error) {
	if err != nil && !(errors.Is(err, domain.ErrPersistence) && order.ID != "") {
		h.writeError(w, err)
		return
	}
	if err != nil {
		h.Logger.Warn("order recorded without transcript", zap.String("order_id", order.ID), zap.Error(err))
		w.Header().Set("Warning", `199 canteen-svc "transcript not written"`)
	}
	writeJSON(w, http.StatusCreated, order)
}

func orderNumber(r *http.Request) (int, error) {
	raw := mux.Vars(r)["n"]
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidOrderNumber, raw)
	}
	return n, nil
}
