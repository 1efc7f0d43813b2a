package transport

import (
	"encoding/json"
	"net/http"

	"stylehub/internal/cart"
	"stylehub/internal/catalog"
	"stylehub/internal/client"
	"stylehub/internal/logger"
	"stylehub/internal/middleware"
	"stylehub/internal/store"
	"stylehub/internal/utils"
)

// Handler exposes the store's selectors and transition requests as a thin
// JSON surface. It holds no state of its own; every request reads a
// snapshot or dispatches exactly one transition.
type Handler struct {
	store *store.Store
	cart  *cart.Ledger
	api   *client.API
}

func NewHandler(s *store.Store, c *cart.Ledger, a *client.API) *Handler {
	return &Handler{store: s, cart: c, api: a}
}

// Routes builds the handler with the request-id, logging, and rate-limit
// middleware applied.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /products", h.listProducts)
	mux.HandleFunc("GET /products/visible", h.visibleProducts)
	mux.HandleFunc("GET /products/trending", h.trendingProducts)
	mux.HandleFunc("GET /products/new-arrivals", h.newArrivals)
	mux.HandleFunc("GET /categories", h.listCategories)
	mux.HandleFunc("GET /status", h.loadStatus)
	mux.HandleFunc("POST /catalog/load", h.loadCatalog)

	mux.HandleFunc("GET /filters", h.getFilters)
	mux.HandleFunc("POST /filters", h.setFilter)
	mux.HandleFunc("POST /filters/clear", h.clearFilters)
	mux.HandleFunc("POST /search", h.search)
	mux.HandleFunc("GET /search", h.remoteSearch)

	mux.HandleFunc("GET /cart", h.getCart)
	mux.HandleFunc("POST /cart/items", h.addToCart)
	mux.HandleFunc("PATCH /cart/items", h.setQuantity)
	mux.HandleFunc("DELETE /cart/items", h.removeFromCart)
	mux.HandleFunc("POST /cart/clear", h.clearCart)
	mux.HandleFunc("POST /cart/toggle", h.toggleCart)

	return logger.RequestIDMiddleware(
		logger.LoggingMiddleware(
			middleware.RateLimitMiddleware(mux),
		),
	)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.store.Products())
}

func (h *Handler) visibleProducts(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.store.Visible())
}

func (h *Handler) trendingProducts(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.store.Trending())
}

func (h *Handler) newArrivals(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.store.NewArrivals())
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.store.Categories())
}

type statusResponse struct {
	Status store.LoadStatus `json:"status"`
	Error  string           `json:"error,omitempty"`
}

func (h *Handler) loadStatus(w http.ResponseWriter, r *http.Request) {
	status, errMsg := h.store.Status()
	utils.WriteJSON(w, http.StatusOK, statusResponse{Status: status, Error: errMsg})
}

func (h *Handler) loadCatalog(w http.ResponseWriter, r *http.Request) {
	// The load outcome lands in the store either way; the response just
	// reports the resulting status.
	_ = h.store.Load(r.Context())

	status, errMsg := h.store.Status()
	utils.WriteJSON(w, http.StatusOK, statusResponse{Status: status, Error: errMsg})
}

func (h *Handler) getFilters(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.store.Filters())
}

type setFilterRequest struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

func (h *Handler) setFilter(w http.ResponseWriter, r *http.Request) {
	var req setFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// A null (or absent) value clears the one named field and nothing else.
	switch req.Field {
	case "category":
		v, err := decodeStringPtr(req.Value)
		if err != nil {
			utils.WriteJSONError(w, "invalid category value", http.StatusBadRequest)
			return
		}
		h.store.SetCategory(v)
	case "size":
		v, err := decodeStringPtr(req.Value)
		if err != nil {
			utils.WriteJSONError(w, "invalid size value", http.StatusBadRequest)
			return
		}
		h.store.SetSize(v)
	case "color":
		v, err := decodeStringPtr(req.Value)
		if err != nil {
			utils.WriteJSONError(w, "invalid color value", http.StatusBadRequest)
			return
		}
		h.store.SetColor(v)
	case "priceRange":
		var v *catalog.PriceRange
		if len(req.Value) > 0 {
			if err := json.Unmarshal(req.Value, &v); err != nil {
				utils.WriteJSONError(w, "invalid priceRange value", http.StatusBadRequest)
				return
			}
		}
		h.store.SetPriceRange(v)
	case "sort":
		v, err := decodeStringPtr(req.Value)
		if err != nil {
			utils.WriteJSONError(w, "invalid sort value", http.StatusBadRequest)
			return
		}
		h.store.SetSort(catalog.ParseSortOption(utils.PtrString(v)))
	default:
		utils.WriteJSONError(w, "unknown filter field", http.StatusBadRequest)
		return
	}

	utils.WriteJSON(w, http.StatusOK, h.store.Filters())
}

func decodeStringPtr(raw json.RawMessage) (*string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var v *string
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func (h *Handler) clearFilters(w http.ResponseWriter, r *http.Request) {
	h.store.ClearFilters()
	utils.WriteJSON(w, http.StatusOK, h.store.Filters())
}

type searchRequest struct {
	Query string `json:"query"`
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.store.Search(req.Query)
	utils.WriteJSON(w, http.StatusOK, h.store.Visible())
}

// remoteSearch queries the collaborator's search variant directly, outside
// the store's derived view.
func (h *Handler) remoteSearch(w http.ResponseWriter, r *http.Request) {
	products, err := h.api.SearchProducts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadGateway)
		return
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

type cartResponse struct {
	Items     []cart.LineItem `json:"items"`
	Total     float64         `json:"total"`
	ItemCount int             `json:"itemCount"`
	IsOpen    bool            `json:"isOpen"`
}

func (h *Handler) cartSnapshot() cartResponse {
	return cartResponse{
		Items:     h.cart.Items(),
		Total:     h.cart.Total(),
		ItemCount: h.cart.ItemCount(),
		IsOpen:    h.cart.IsOpen(),
	}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.cartSnapshot())
}

type addToCartRequest struct {
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, ok := h.store.ProductByID(req.ProductID)
	if !ok {
		utils.WriteJSONError(w, "product not found", http.StatusNotFound)
		return
	}

	h.cart.Add(p, req.Quantity, req.Size, req.Color)
	utils.WriteJSON(w, http.StatusOK, h.cartSnapshot())
}

type cartItemRequest struct {
	cart.ItemKey
	Quantity int `json:"quantity"`
}

func (h *Handler) setQuantity(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.cart.SetQuantity(req.ItemKey, req.Quantity)
	utils.WriteJSON(w, http.StatusOK, h.cartSnapshot())
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.cart.Remove(req.ItemKey)
	utils.WriteJSON(w, http.StatusOK, h.cartSnapshot())
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear()
	utils.WriteJSON(w, http.StatusOK, h.cartSnapshot())
}

func (h *Handler) toggleCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Toggle()
	utils.WriteJSON(w, http.StatusOK, h.cartSnapshot())
}
