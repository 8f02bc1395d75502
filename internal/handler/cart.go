package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"github.com/vellaperfumeria/cart-api/internal/currency"
	"github.com/vellaperfumeria/cart-api/internal/domain/cart"
	"github.com/vellaperfumeria/cart-api/internal/domain/product"
)

// GetCart returns the session's cart priced in the requested currency.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	cur, err := requestCurrency(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown currency")
		return
	}

	sessionID := h.session(w, r)
	st, _ := h.store(r, sessionID)
	h.respondCart(w, sessionID, st.Snapshot(), cur, false)
}

// ClearCart empties the session's cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cur, err := requestCurrency(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown currency")
		return
	}

	sessionID := h.session(w, r)
	st, _ := h.store(r, sessionID)
	h.respondCart(w, sessionID, st.Clear(r.Context()), cur, false)
}

type addItemRequest struct {
	ProductID       int64             `json:"productId"`
	SelectedVariant map[string]string `json:"selectedVariant,omitempty"`
}

// AddItem puts one unit of a product into the cart. A line already holding
// the same product and variant selection has its quantity bumped instead.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	cur, err := requestCurrency(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown currency")
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondError(w, http.StatusNotFound, "product not found")
			return
		}
		logError(r, "load product for add", err)
		respondError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	sessionID := h.session(w, r)
	st, showCart := h.store(r, sessionID)
	next := st.Add(r.Context(), *p, req.SelectedVariant)
	h.respondCart(w, sessionID, next, cur, *showCart)
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetQuantity pins a line's quantity. Zero or negative removes the line;
// an unknown line id leaves the cart unchanged.
func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	cur, err := requestCurrency(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown currency")
		return
	}

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID := h.session(w, r)
	st, _ := h.store(r, sessionID)
	next := st.SetQuantity(r.Context(), chi.URLParam(r, "lineID"), req.Quantity)
	h.respondCart(w, sessionID, next, cur, false)
}

// RemoveItem drops a line from the cart regardless of its quantity.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cur, err := requestCurrency(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown currency")
		return
	}

	sessionID := h.session(w, r)
	st, _ := h.store(r, sessionID)
	next := st.Remove(r.Context(), chi.URLParam(r, "lineID"))
	h.respondCart(w, sessionID, next, cur, false)
}

type quickAddRequest struct {
	Code int64 `json:"code"`
}

// QuickAdd resolves a numeric product code and adds one unit with no
// variant selection. Unknown codes are rejected without touching the cart.
func (h *Handler) QuickAdd(w http.ResponseWriter, r *http.Request) {
	cur, err := requestCurrency(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown currency")
		return
	}

	var req quickAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.quickAdd.Lookup(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondError(w, http.StatusNotFound, "unknown product code")
			return
		}
		logError(r, "quick-add lookup", err)
		respondError(w, http.StatusInternalServerError, "failed to resolve product code")
		return
	}

	sessionID := h.session(w, r)
	st, showCart := h.store(r, sessionID)
	next := st.Add(r.Context(), *p, nil)
	h.respondCart(w, sessionID, next, cur, *showCart)
}

func (h *Handler) respondCart(w http.ResponseWriter, sessionID string, c cart.Cart, cur currency.Currency, showCart bool) {
	view := toCartView(sessionID, c, h.rules.Price(c), cur)
	view.ShowCart = showCart
	respondJSON(w, http.StatusOK, view)
}
