package httpapi

import (
	"encoding/json"
	"net/http"

	"byteme-canteen/canteen-svc/internal/domain"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func (h *Handler) registerAdminRoutes(r *mux.Router) {
	r.HandleFunc("/api/admin/login", h.adminLogin).Methods("POST")

	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(h.requireAdmin)
	admin.HandleFunc("/menu", h.createMenuItem).Methods("POST")
	admin.HandleFunc("/menu/{name}", h.updateMenuItem).Methods("PUT")
	admin.HandleFunc("/menu/{name}", h.deleteMenuItem).Methods("DELETE")
	admin.HandleFunc("/orders", h.getAllOrders).Methods("GET")
	admin.HandleFunc("/orders/pending", h.getPendingOrders).Methods("GET")
	admin.HandleFunc("/orders/{id}/status", h.updateOrderStatus).Methods("PUT")
	admin.HandleFunc("/orders/{id}/refund", h.refundOrder).Methods("POST")
	admin.HandleFunc("/snapshot", h.saveSnapshot).Methods("POST")
}

type adminLoginRequest struct {
	AdminID  string `json:"admin_id"`
	Password string `json:"password"`
}

type menuItemRequest struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Available bool            `json:"available"`
}

type menuItemPatch struct {
	Price     *decimal.Decimal `json:"price"`
	Available *bool            `json:"available"`
}

func (h *Handler) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Canteen.AdminLogin(req.AdminID, req.Password); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.startAdminSession(w, r); err != nil {
		h.Logger.Error("session save failed", zap.Error(err))
		http.Error(w, "failed to start session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"admin_id": req.AdminID})
}

// createMenuItem godoc
// @Summary Add or replace a menu item
// @Description Replacing an item detaches carts and orders that held the old one.
// @Tags admin
// @Accept json
// @Produce json
// @Param item body menuItemRequest true "item"
// @Success 201 {object} domain.ItemView
// @Router /api/admin/menu [post]
func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, h.Canteen.AddMenuItem(req.Name, req.Price, req.Category, req.Available))
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req menuItemPatch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item, err := h.Canteen.UpdateMenuItem(mux.Vars(r)["name"], req.Price, req.Available)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if err := h.Canteen.RemoveMenuItem(mux.Vars(r)["name"]); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getAllOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Canteen.AllOrders())
}

func (h *Handler) getPendingOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Canteen.PendingOrders())
}

// updateOrderStatus godoc
// @Summary Set an order's status
// @Description Any status may follow any other.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} domain.OrderView
// @Failure 400 {string} string "invalid order status"
// @Router /api/admin/orders/{id}/status [put]
func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		h.writeError(w, err)
		return
	}
	order, err := h.Canteen.UpdateOrderStatus(r.Context(), mux.Vars(r)["id"], status)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) refundOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	order, err := h.Canteen.RefundOrder(r.Context(), mux.Vars(r)["id"], req.Reason)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) saveSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := h.Canteen.Save(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
