package handler

import (
	"net/http"

	"github.com/vellaperfumeria/cart-api/internal/domain/order"
)

type handoffResponse struct {
	URL string `json:"url"`
}

// HandoffWhatsApp prices the cart, builds the pre-filled message URL,
// archives the order and clears the cart. The archive write is best-effort;
// a storage failure never blocks the hand-off.
func (h *Handler) HandoffWhatsApp(w http.ResponseWriter, r *http.Request) {
	cur, err := requestCurrency(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown currency")
		return
	}

	sessionID := h.session(w, r)
	st, _ := h.store(r, sessionID)
	c := st.Snapshot()
	if c.IsEmpty() {
		respondError(w, http.StatusConflict, "cart is empty")
		return
	}

	quote := h.rules.Price(c)
	url := h.message.Build(c, quote, cur)

	rec := order.FromHandoff(sessionID, order.ChannelMessage, c, quote, cur, url)
	if err := h.orders.Create(r.Context(), rec); err != nil {
		logError(r, "archive whatsapp order", err)
	}

	st.Clear(r.Context())
	respondJSON(w, http.StatusOK, handoffResponse{URL: url})
}

// HandoffCheckout prices the cart, builds the external checkout URL with
// one product id per unit, archives the order and clears the cart.
func (h *Handler) HandoffCheckout(w http.ResponseWriter, r *http.Request) {
	cur, err := requestCurrency(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown currency")
		return
	}

	sessionID := h.session(w, r)
	st, _ := h.store(r, sessionID)
	c := st.Snapshot()
	if c.IsEmpty() {
		respondError(w, http.StatusConflict, "cart is empty")
		return
	}

	quote := h.rules.Price(c)
	url := h.checkout.Build(c)

	rec := order.FromHandoff(sessionID, order.ChannelCheckout, c, quote, cur, url)
	if err := h.orders.Create(r.Context(), rec); err != nil {
		logError(r, "archive checkout order", err)
	}

	st.Clear(r.Context())
	respondJSON(w, http.StatusOK, handoffResponse{URL: url})
}
