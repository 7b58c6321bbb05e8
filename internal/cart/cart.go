package cart

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Item is one cart line. Identity is the ID field: the product ID alone for
// plain products, or the product ID plus the sorted selected attributes when
// options were chosen, so the same product in two configurations occupies
// two lines.
type Item struct {
	ID             string            `json:"id"`
	ProductID      int               `json:"product_id"`
	VariationID    int               `json:"variation_id,omitempty"`
	Name           string            `json:"name"`
	Slug           string            `json:"slug,omitempty"`
	Image          string            `json:"image,omitempty"`
	Price          string            `json:"price"`
	VariationPrice string            `json:"variation_price,omitempty"`
	Quantity       int               `json:"quantity"`
	Attributes     map[string]string `json:"attributes,omitempty"`
}

// UnitPrice returns the effective price of one unit: the variation price
// when a variation was selected, the product price otherwise. Price strings
// that do not parse count as zero.
func (i Item) UnitPrice() decimal.Decimal {
	raw := i.Price
	if i.VariationID != 0 {
		raw = i.VariationPrice
	}
	return parsePrice(raw)
}

// Summary is a cart with its derived totals. Totals are recomputed from the
// lines on every read and never stored.
type Summary struct {
	Items      []Item          `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func summarize(items []Item) Summary {
	if items == nil {
		items = []Item{}
	}
	total := decimal.Zero
	count := 0
	for _, item := range items {
		count += item.Quantity
		total = total.Add(item.UnitPrice().Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return Summary{Items: items, TotalItems: count, TotalPrice: total}
}

// ItemID derives the line identity for a product and its selected
// attributes. Attribute pairs are sorted by name so selection order does not
// split lines.
func ItemID(productID int, attributes map[string]string) string {
	if len(attributes) == 0 {
		return strconv.Itoa(productID)
	}
	pairs := make([]string, 0, len(attributes))
	for name, option := range attributes {
		pairs = append(pairs, fmt.Sprintf("%s:%s", name, option))
	}
	sort.Strings(pairs)
	return fmt.Sprintf("%d-%s", productID, strings.Join(pairs, "|"))
}

func parsePrice(raw string) decimal.Decimal {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return value
}
