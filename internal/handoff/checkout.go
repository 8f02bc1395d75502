package handoff

import (
	"strconv"
	"strings"

	"github.com/vellaperfumeria/cart-api/internal/domain/cart"
)

// DefaultCheckoutParam is the query parameter the external checkout service
// reads the product ids from.
const DefaultCheckoutParam = "add-to-cart"

// CheckoutRedirect renders a cart into the external checkout URL.
type CheckoutRedirect struct {
	baseURL string
	param   string
}

// NewCheckoutRedirect creates a redirector for the given checkout base URL.
// An empty param falls back to DefaultCheckoutParam.
func NewCheckoutRedirect(baseURL, param string) CheckoutRedirect {
	if param == "" {
		param = DefaultCheckoutParam
	}
	return CheckoutRedirect{baseURL: baseURL, param: param}
}

// Build expands each line into quantity repeated occurrences of its product
// id, joins them with commas in cart order, and appends them as the single
// query parameter. An empty cart returns the base URL unchanged.
func (r CheckoutRedirect) Build(c cart.Cart) string {
	if c.IsEmpty() {
		return r.baseURL
	}

	ids := make([]string, 0, c.Units())
	for _, line := range c.Lines {
		id := strconv.FormatInt(line.Product.ID, 10)
		for i := 0; i < line.Quantity; i++ {
			ids = append(ids, id)
		}
	}

	return r.baseURL + "?" + r.param + "=" + strings.Join(ids, ",")
}
