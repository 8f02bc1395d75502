// Package handler exposes the cart engine over HTTP. It owns no business
// rules: pricing always comes from the pricing package, line identity from
// the cart package, hand-off URLs from the handoff package.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vellaperfumeria/cart-api/internal/currency"
	"github.com/vellaperfumeria/cart-api/internal/domain/cart"
	"github.com/vellaperfumeria/cart-api/internal/domain/catalog"
	"github.com/vellaperfumeria/cart-api/internal/domain/order"
	"github.com/vellaperfumeria/cart-api/internal/domain/pricing"
	"github.com/vellaperfumeria/cart-api/internal/domain/product"
	"github.com/vellaperfumeria/cart-api/internal/handoff"
)

const sessionCookie = "cart_session"

// SessionRepo returns the cart repository bound to one session's record.
type SessionRepo func(sessionID string) cart.Repository

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// CheckoutBaseURL is the external checkout service the redirect hand-off
	// points at.
	CheckoutBaseURL string
	// CheckoutParam is the query parameter carrying the product ids.
	CheckoutParam string
	// WhatsAppPhone is the recipient of the messaging hand-off.
	WhatsAppPhone string
}

// Handler implements the storefront API.
type Handler struct {
	products product.Repository
	quickAdd *catalog.QuickAdd
	orders   order.Repository
	sessions SessionRepo
	rules    pricing.Rules

	message  handoff.MessageBuilder
	checkout handoff.CheckoutRedirect
}

// New constructs a Handler with the required domain dependencies.
func New(
	cfg Config,
	products product.Repository,
	quickAdd *catalog.QuickAdd,
	orders order.Repository,
	sessions SessionRepo,
	rules pricing.Rules,
) *Handler {
	return &Handler{
		products: products,
		quickAdd: quickAdd,
		orders:   orders,
		sessions: sessions,
		rules:    rules,
		message:  handoff.NewMessageBuilder(cfg.WhatsAppPhone),
		checkout: handoff.NewCheckoutRedirect(cfg.CheckoutBaseURL, cfg.CheckoutParam),
	}
}

// Routes mounts the API under /api.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Get("/products/{id}", h.GetProduct)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddItem)
			r.Put("/items/{lineID}", h.SetQuantity)
			r.Delete("/items/{lineID}", h.RemoveItem)
			r.Post("/quick-add", h.QuickAdd)
			r.Post("/handoff/whatsapp", h.HandoffWhatsApp)
			r.Post("/handoff/checkout", h.HandoffCheckout)
		})
	})
	return r
}

// session extracts the cart session id from the request cookie, issuing a
// fresh one (and setting the cookie) when absent. The id is also echoed in
// the X-Cart-Session response header for non-browser clients.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) string {
	id := ""
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		id = c.Value
	}
	if id == "" {
		id = uuid.New().String()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	w.Header().Set("X-Cart-Session", id)
	return id
}

// store builds the session's cart store, hydrated from the persisted
// snapshot (best-effort). The returned flag pointer is flipped when an add
// lands, the signal for the UI to open the cart panel.
func (h *Handler) store(r *http.Request, sessionID string) (*cart.Store, *bool) {
	showCart := new(bool)
	st := cart.NewStore(
		h.sessions(sessionID),
		cart.WithLogger(zctx.From(r.Context())),
		cart.WithChangeListener(func(ev cart.Event) {
			if ev.Op == cart.OpAdd {
				*showCart = true
			}
		}),
	)
	st.Hydrate(r.Context())
	return st, showCart
}

// requestCurrency parses the ?currency query parameter, defaulting to EUR.
func requestCurrency(r *http.Request) (currency.Currency, error) {
	return currency.Parse(r.URL.Query().Get("currency"))
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Code: status, Message: message})
}

// logError records a degraded-path failure that was deliberately not
// surfaced to the client.
func logError(r *http.Request, msg string, err error) {
	zctx.From(r.Context()).Error(msg, zap.Error(err))
}
