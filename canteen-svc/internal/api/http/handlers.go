package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"byteme-canteen/canteen-svc/internal/domain"
	"byteme-canteen/canteen-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

type Handler struct {
	Canteen  service.CanteenService
	Sessions sessions.Store
	Logger   *zap.Logger
}

func NewHandler(canteen service.CanteenService, store sessions.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Canteen: canteen, Sessions: store, Logger: logger}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/menu/popular", h.getPopular).Methods("GET")
	r.HandleFunc("/api/menu/{name}", h.getMenuItem).Methods("GET")
	r.HandleFunc("/api/menu/{name}/reviews", h.getReviews).Methods("GET")
	r.HandleFunc("/api/menu/{name}/reviews", h.customerOnly(h.createReview)).Methods("POST")

	r.HandleFunc("/api/customers", h.register).Methods("POST")
	r.HandleFunc("/api/login", h.login).Methods("POST")
	r.HandleFunc("/api/logout", h.logout).Methods("POST")

	r.HandleFunc("/api/cart", h.customerOnly(h.getCart)).Methods("GET")
	r.HandleFunc("/api/cart", h.customerOnly(h.clearCart)).Methods("DELETE")
	r.HandleFunc("/api/cart/items", h.customerOnly(h.addCartItem)).Methods("POST")
	r.HandleFunc("/api/cart/items/{name}", h.customerOnly(h.updateCartItem)).Methods("PUT")
	r.HandleFunc("/api/cart/items/{name}", h.customerOnly(h.removeCartItem)).Methods("DELETE")
	r.HandleFunc("/api/checkout", h.customerOnly(h.checkout)).Methods("POST")

	r.HandleFunc("/api/orders", h.customerOnly(h.getOrders)).Methods("GET")
	r.HandleFunc("/api/orders/transcript", h.customerOnly(h.getTranscript)).Methods("GET")
	r.HandleFunc("/api/orders/{n}", h.customerOnly(h.getOrder)).Methods("GET")
	r.HandleFunc("/api/orders/{n}/cancel", h.customerOnly(h.cancelOrder)).Methods("POST")
	r.HandleFunc("/api/orders/{n}/reorder", h.customerOnly(h.reorder)).Methods("POST")
	r.HandleFunc("/api/orders/{n}/qrcode", h.customerOnly(h.getOrderQRCode)).Methods("GET")

	h.registerAdminRoutes(r)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "canteen-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// getMenu godoc
// @Summary List the menu
// @Description Alphabetical by default. q searches names, category filters, sort orders by price.
// @Tags menu
// @Produce json
// @Param q query string false "name keyword"
// @Param category query string false "category"
// @Param sort query string false "asc or desc"
// @Success 200 {array} domain.ItemView
// @Router /api/menu [get]
func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	switch {
	case query.Get("q") != "":
		writeJSON(w, http.StatusOK, h.Canteen.SearchMenu(query.Get("q")))
	case query.Get("category") != "":
		writeJSON(w, http.StatusOK, h.Canteen.FilterMenu(query.Get("category")))
	case query.Get("sort") != "":
		switch strings.ToLower(query.Get("sort")) {
		case "asc":
			writeJSON(w, http.StatusOK, h.Canteen.SortMenu(true))
		case "desc":
			writeJSON(w, http.StatusOK, h.Canteen.SortMenu(false))
		default:
			http.Error(w, "sort must be asc or desc", http.StatusBadRequest)
		}
	default:
		writeJSON(w, http.StatusOK, h.Canteen.Menu())
	}
}

func (h *Handler) getPopular(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}
	items, err := h.Canteen.PopularItems(r.Context(), limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Canteen.MenuItem(mux.Vars(r)["name"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) getReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Canteen.Reviews(mux.Vars(r)["name"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

type reviewRequest struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

// createReview godoc
// @Summary Review a menu item
// @Tags menu
// @Accept json
// @Produce json
// @Param name path string true "item name"
// @Param review body reviewRequest true "review"
// @Success 201 {object} domain.Review
// @Failure 404 {string} string "unknown item"
// @Router /api/menu/{name}/reviews [post]
func (h *Handler) createReview(w http.ResponseWriter, r *http.Request, loginID string) {
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	review, err := h.Canteen.AddReview(r.Context(), mux.Vars(r)["name"], loginID, req.Text, req.Rating)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

type credentialsRequest struct {
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.LoginID == "" {
		http.Error(w, "login_id is required", http.StatusBadRequest)
		return
	}
	h.Canteen.Register(req.LoginID, req.Password)
	writeJSON(w, http.StatusCreated, map[string]string{"login_id": req.LoginID})
}

// login godoc
// @Summary Customer login
// @Tags accounts
// @Accept json
// @Param credentials body credentialsRequest true "credentials"
// @Success 200 {object} map[string]string
// @Failure 401 {string} string "invalid login credentials"
// @Router /api/login [post]
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Canteen.Login(req.LoginID, req.Password); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.startCustomerSession(w, r, req.LoginID); err != nil {
		h.Logger.Error("session save failed", zap.Error(err))
		http.Error(w, "failed to start session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"login_id": req.LoginID})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.endSession(w, r)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error("request failed", zap.Error(err))
	}
	http.Error(w, err.Error(), status)
}

// statusFor maps engine errors to HTTP statuses. An absent item matches both
// ErrItemUnavailable and ErrNotFound and is reported as unavailable.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrItemUnavailable):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidOrderNumber):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrPaymentMismatch):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrNotRefundable):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidPaymentMethod),
		errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
