// Package cart implements the per-user shopping cart: one cart per user,
// created on first use, holding at most one line per product.
package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/user/onlinestore/catalog"
)

type Cart struct {
	ID     int64 `db:"id"`
	UserID int64 `db:"user_id"`
	Items  []Item
}

// Item is one cart line. Product is filled in by the service before rendering.
type Item struct {
	ID        int64 `db:"id"`
	CartID    int64 `db:"cart_id"`
	ProductID int64 `db:"product_id"`
	Quantity  int   `db:"quantity"`

	Product catalog.Product `db:"-"`
}

// MaxQuantity bounds a single cart line, including quantities accumulated by
// repeated adds.
const MaxQuantity = 1000

var (
	ErrItemNotFound    = errors.New("cart item not found")
	ErrProductNotFound = errors.New("product not found")
	ErrQuantityLimit   = errors.New("cart line quantity limit exceeded")
)

// LineTotal is price times quantity.
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// TotalPrice sums the line totals of items. An empty cart totals zero.
func TotalPrice(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(LineTotal(it.Product.Price, it.Quantity))
	}
	return total
}
