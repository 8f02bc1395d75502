package cart

import (
	"sort"
	"strconv"
	"strings"

	"github.com/vellaperfumeria/cart-api/internal/domain/product"
)

// Line is one entry in the cart: a product (plus optional variant choice)
// and a quantity. Quantity is always >= 1; a mutation that would push it to
// zero or below removes the line instead.
type Line struct {
	ID       string
	Product  product.Product
	Quantity int
	// SelectedVariant maps variant axis name to the chosen value,
	// e.g. {"size": "50ml"}. Nil for products without variants.
	SelectedVariant map[string]string
}

// LineID derives the stable identity of a cart line from a product id and an
// optional variant selection. Two additions of the same product+variant
// combination always produce the same id and therefore collapse into one
// line.
//
// Variant axes are sorted by name before joining so the id does not depend
// on the order in which the user picked the options. Only the values are
// embedded: two different axis sets that happen to yield the same sorted
// value sequence collide into one line. That is a known limitation of the
// id scheme, not something callers may rely on for disambiguation.
func LineID(productID int64, variant map[string]string) string {
	if len(variant) == 0 {
		return strconv.FormatInt(productID, 10)
	}

	axes := make([]string, 0, len(variant))
	for axis := range variant {
		axes = append(axes, axis)
	}
	sort.Strings(axes)

	var b strings.Builder
	b.WriteString(strconv.FormatInt(productID, 10))
	for _, axis := range axes {
		b.WriteByte('-')
		b.WriteString(variant[axis])
	}
	return b.String()
}

// clone returns a deep copy of the line so snapshots stay immutable when the
// caller mutates its own variant map afterwards.
func (l Line) clone() Line {
	cp := l
	if l.SelectedVariant != nil {
		cp.SelectedVariant = make(map[string]string, len(l.SelectedVariant))
		for k, v := range l.SelectedVariant {
			cp.SelectedVariant[k] = v
		}
	}
	return cp
}
